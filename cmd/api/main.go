// Package main is the entry point for the Shelfmark server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/shelfmark/shelfmark-server/internal/di"
	"github.com/shelfmark/shelfmark-server/internal/di/providers"
	"github.com/shelfmark/shelfmark-server/internal/logger"
)

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	// Services registered as do.Shutdownable stop in reverse
	// dependency order; the HTTP server drains here.
	if err := injector.Shutdown(); err != nil {
		log.Error("Container shutdown", "error", err)
	}

	// The store and search index sit behind wrapper handles the
	// container does not close itself. They go last, once no request
	// can touch them anymore.
	if h, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		closeResource(log, "database", h)
	}
	if h, err := do.Invoke[*providers.SearchIndexHandle](injector); err == nil {
		closeResource(log, "search index", h)
	}

	log.Info("Goodnight, reader.")
}

func closeResource(log *logger.Logger, name string, h interface{ Shutdown() error }) {
	log.Info("Closing " + name)
	if err := h.Shutdown(); err != nil {
		log.Error("Failed to close "+name, "error", err)
	}
}
