package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/claude/liftwise/internal/config"
	"github.com/claude/liftwise/internal/mcp"
	"github.com/claude/liftwise/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// liftwise-mcp exposes the training data over MCP on stdio. With -url
// it proxies a running LiftWise server's REST API (typically reached
// over Tailscale); with -config it connects straight to the database.
func main() {
	serverURL := flag.String("url", "", "base URL of a running LiftWise server (remote mode)")
	configPath := flag.String("config", "", "path to config file (direct database mode)")
	flag.Parse()

	// Logs go to stderr: stdout carries the MCP protocol stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
	default:
		log.Error("either -url or -config is required")
		os.Exit(1)
	}

	s := mcp.New(ds, catalog.Default(), Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
