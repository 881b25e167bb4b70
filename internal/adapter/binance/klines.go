package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// DefaultAPIURL is the Binance spot REST endpoint.
const DefaultAPIURL = "https://api.binance.com"

// KlineClient downloads historical daily bars for the backtester.
type KlineClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewKlineClient() *KlineClient {
	return &KlineClient{
		BaseURL:    DefaultAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// kline is one row of the /api/v3/klines response: a mixed array of
// numbers and decimal strings.
//
//	[openTime, "open", "high", "low", "close", "volume", closeTime, ...]
type kline []json.RawMessage

// DailyCandles fetches up to limit daily bars for symbol, oldest first.
func (c *KlineClient) DailyCandles(ctx context.Context, symbol string, limit int) ([]domain.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1d")
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.BaseURL + "/api/v3/klines?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("binance: build request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance: get klines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance: read klines: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: klines status %d: %s", resp.StatusCode, body)
	}

	var rows []kline
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("binance: parse klines: %w", err)
	}

	candles := make([]domain.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := parseKline(symbol, row)
		if err != nil {
			return nil, fmt.Errorf("binance: kline %d: %w", i, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseKline(symbol string, row kline) (domain.Candle, error) {
	if len(row) < 6 {
		return domain.Candle{}, fmt.Errorf("short row: %d fields", len(row))
	}

	var openMillis int64
	if err := json.Unmarshal(row[0], &openMillis); err != nil {
		return domain.Candle{}, fmt.Errorf("open time: %w", err)
	}

	fields, err := parseDecimalFields(row[1:6])
	if err != nil {
		return domain.Candle{}, err
	}

	return domain.Candle{
		Symbol: symbol,
		Day:    time.UnixMilli(openMillis).UTC().Truncate(24 * time.Hour),
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}

func parseDecimalFields(raw []json.RawMessage) ([]decimal.Decimal, error) {
	strs := make([]string, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &strs[i]); err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	var parseErr error
	fields := lo.Map(strs, func(s string, i int) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("field %d %q: %w", i+1, s, err)
		}
		return d
	})
	return fields, parseErr
}
