package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mlabib2/OrderBookEngine/internal/api/dto"
	"github.com/mlabib2/OrderBookEngine/internal/core"
	"github.com/mlabib2/OrderBookEngine/internal/domain"
	"github.com/mlabib2/OrderBookEngine/internal/middleware"
)

// recentTradeCap bounds the in-memory trade tape served by GET /trades.
const recentTradeCap = 100

// HTTPServer exposes one order book over a gin surface: order submission,
// depth snapshots, top of book, and the recent trade tape.
type HTTPServer struct {
	Book        *core.OrderBook
	submittedID sync.Map // deduplication by client-supplied order id

	mu     sync.Mutex
	recent []domain.Trade
}

func NewHTTPServer(book *core.OrderBook) *HTTPServer {
	return &HTTPServer{Book: book}
}

// Router builds the gin engine with all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.Default()

	rl := middleware.NewRateLimiter(time.Millisecond * 100)
	r.Use(rl.Middleware())

	r.POST("/orders", s.submitOrder)
	r.GET("/orderbook", s.getOrderbook)
	r.GET("/orderbook/top", s.getTopOfBook)
	r.GET("/trades", s.getTrades)

	return r
}

func (s *HTTPServer) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *HTTPServer) submitOrder(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ValidateOrder(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// deduplication
	if req.OrderID != "" {
		if _, exists := s.submittedID.LoadOrStore(req.OrderID, struct{}{}); exists {
			c.JSON(http.StatusOK, gin.H{"message": "duplicate order", "order_id": req.OrderID})
			return
		}
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	var trades []domain.Trade
	var err error
	qty := domain.Quantity(req.Quantity)
	if req.Type == dto.Market {
		trades, err = s.Book.AddMarketOrder(domain.Side(req.Side), qty)
	} else {
		trades, err = s.Book.AddOrder(domain.Side(req.Side), domain.ToTicks(req.Price), qty)
	}
	if err != nil {
		var invalid *core.InvalidOrderError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.retainTrades(trades)

	executed := int64(0)
	for _, t := range trades {
		executed += int64(t.Quantity)
	}

	c.JSON(http.StatusOK, dto.SubmitOrderResponse{
		OrderID:   orderID,
		Trades:    convertTrades(trades),
		Remaining: req.Quantity - executed,
	})
}

func (s *HTTPServer) getOrderbook(c *gin.Context) {
	depth := 10
	if raw := c.Query("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid depth"})
			return
		}
		depth = n
	}

	view := s.Book.Snapshot(depth)
	c.JSON(http.StatusOK, dto.OrderbookResponse{
		Symbol:    view.Symbol,
		Bids:      convertLevels(view.Bids),
		Asks:      convertLevels(view.Asks),
		Timestamp: view.Timestamp,
	})
}

func (s *HTTPServer) getTopOfBook(c *gin.Context) {
	resp := dto.TopOfBookResponse{Symbol: s.Book.Symbol()}
	if bid, ok := s.Book.BestBid(); ok {
		d := bid.Decimal()
		resp.BestBid = &d
	}
	if ask, ok := s.Book.BestAsk(); ok {
		d := ask.Decimal()
		resp.BestAsk = &d
	}
	if spread, ok := s.Book.Spread(); ok {
		d := spread.Decimal()
		resp.Spread = &d
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) getTrades(c *gin.Context) {
	s.mu.Lock()
	trades := make([]domain.Trade, len(s.recent))
	copy(trades, s.recent)
	s.mu.Unlock()
	c.JSON(http.StatusOK, dto.TradesResponse{Trades: convertTrades(trades)})
}

func (s *HTTPServer) retainTrades(trades []domain.Trade) {
	if len(trades) == 0 {
		return
	}
	s.mu.Lock()
	s.recent = append(s.recent, trades...)
	if n := len(s.recent); n > recentTradeCap {
		s.recent = s.recent[n-recentTradeCap:]
	}
	s.mu.Unlock()
}

func convertLevels(levels []core.LevelView) []dto.Level {
	res := make([]dto.Level, len(levels))
	for i, l := range levels {
		res[i] = dto.Level{
			Price:    l.Price.Decimal(),
			Quantity: int64(l.Quantity),
			Orders:   l.Orders,
		}
	}
	return res
}

func convertTrades(trades []domain.Trade) []dto.Trade {
	res := make([]dto.Trade, len(trades))
	for i, t := range trades {
		res[i] = dto.Trade{
			ID:        uint64(t.ID),
			Symbol:    t.Symbol,
			BuyOrder:  uint64(t.BuyOrder),
			SellOrder: uint64(t.SellOrder),
			Price:     t.Price.Decimal(),
			Quantity:  int64(t.Quantity),
			Aggressor: dto.Side(t.Aggressor),
			Timestamp: t.Timestamp,
		}
	}
	return res
}

func ValidateOrder(req *dto.SubmitOrderRequest) error {
	switch req.Side {
	case dto.Buy, dto.Sell:
	default:
		return fmt.Errorf("invalid side: %s", req.Side)
	}
	switch req.Type {
	case dto.Limit, dto.Market:
	default:
		return fmt.Errorf("invalid order type: %s", req.Type)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	if req.Type == dto.Limit && !req.Price.IsPositive() {
		return fmt.Errorf("price must be > 0 for LIMIT orders")
	}
	return nil
}
