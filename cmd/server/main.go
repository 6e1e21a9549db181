package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pantrypal/pantrypal-backend/internal/app"
	"github.com/pantrypal/pantrypal-backend/internal/observability"
	"github.com/pantrypal/pantrypal-backend/internal/platform/shutdown"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := shutdown.NotifyContext(context.Background())
	defer cancel()

	otelShutdown := observability.InitOTel(ctx, a.Log, observability.OtelConfig{
		ServiceName: "pantrypal",
		Environment: a.Cfg.Environment,
		Version:     a.Cfg.Version,
	})
	if otelShutdown != nil {
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			if err := otelShutdown(sctx); err != nil {
				a.Log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("Server listening", "port", a.Cfg.Port)
		errCh <- a.Run(":" + a.Cfg.Port)
	}()

	select {
	case <-ctx.Done():
		a.Log.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			a.Log.Error("Server failed", "error", err)
		}
	}
}
