package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/mlabib2/OrderBookEngine/internal/adapter/binance"
	"github.com/mlabib2/OrderBookEngine/internal/adapter/pg"
	"github.com/mlabib2/OrderBookEngine/internal/adapter/pubsub"
	httpapi "github.com/mlabib2/OrderBookEngine/internal/api/http"
	"github.com/mlabib2/OrderBookEngine/internal/core"
	"github.com/mlabib2/OrderBookEngine/internal/port"
)

func main() {
	var (
		symbol    = flag.String("symbol", "BTCUSDT", "traded symbol")
		streamURL = flag.String("stream", binance.DefaultStreamURL, "websocket depth stream URL")
		lotScale  = flag.Int64("lot-scale", binance.DefaultLotScale, "units per base asset for feed quantities")
		redisAddr = flag.String("redis", "localhost:6379", "redis address for trade publication (empty to disable)")
		pgDSN     = flag.String("pg", "", "postgres DSN for the trade journal (empty to disable)")
		httpAddr  = flag.String("http", ":8080", "HTTP API listen address")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	book := core.NewOrderBook(*symbol)

	var publisher port.TradePublisher
	if *redisAddr != "" {
		p := pubsub.NewPublisher(*redisAddr, "", 0, pubsub.DefaultChannel)
		if err := p.Ping(ctx); err != nil {
			log.Fatalf("could not connect to Redis: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Printf("Connected to Redis at %s", *redisAddr)
	}

	var store port.TradeStore
	if *pgDSN != "" {
		s, err := pg.NewStore(ctx, *pgDSN)
		if err != nil {
			log.Fatalf("failed to connect to Postgres: %v", err)
		}
		defer s.Close()
		store = s
	}

	feed := binance.NewFeed(*streamURL, book, publisher, store)
	feed.LotScale = *lotScale
	go func() {
		if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("feed stopped: %v", err)
		}
	}()

	server := httpapi.NewHTTPServer(book)
	log.Printf("Starting HTTP server on %s...", *httpAddr)
	if err := server.Run(*httpAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
