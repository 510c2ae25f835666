// streamtest connects to a running dashboard's whale stream and prints each
// whale trade to the console.
// Usage: go run ./cmd/streamtest --url ws://localhost:8000/ws/whales
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/zora-dashboard/internal/stream"
)

func main() {
	url := flag.String("url", "ws://localhost:8000/ws/whales", "whale stream URL")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := stream.Dial(dialCtx, *url, stream.DefaultConfig(), logger)
	cancel()
	if err != nil {
		logger.Error("failed to connect", "url", *url, "err", err)
		os.Exit(1)
	}
	defer client.Close()

	logger.Info("streaming started - press Ctrl+C to stop", "url", *url)

	var received int
	stats := time.NewTicker(time.Minute)
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown complete", "received", received)
			return
		case err := <-client.Errors():
			logger.Error("stream failed", "err", err, "received", received)
			os.Exit(1)
		case <-stats.C:
			logger.Info("stats", "received", received)
		case msg, ok := <-client.Messages():
			if !ok {
				logger.Info("server closed the stream", "received", received)
				return
			}
			received++
			printMessage(msg, *verbose, logger)
		}
	}
}

func printMessage(msg stream.TimestampedMessage, verbose bool, logger *slog.Logger) {
	if verbose {
		data, _ := json.MarshalIndent(msg.Message, "", "  ")
		fmt.Printf("[%s] %s\n", msg.Type, data)
		return
	}

	tr, err := msg.Trade()
	if err != nil {
		logger.Warn("skipping message", "type", msg.Type, "err", err)
		return
	}
	fmt.Printf("[WHALE] %-4s $%10.2f %-12s trader=%s tx=%s at=%s latency=%s\n",
		tr.Side, tr.USD, tr.Symbol, tr.Trader, tr.TxHash,
		tr.Timestamp.Format(time.RFC3339), msg.ReceivedAt.Sub(tr.Timestamp).Round(time.Second))
}
