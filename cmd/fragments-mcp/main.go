package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"fragments/internal/adapters/clipboard"
	"fragments/internal/adapters/jsonfile"
	mcpadapter "fragments/internal/adapters/mcp"
	"fragments/internal/config"
	"fragments/internal/logging"
)

func main() {
	dbFlag := flag.String("db", "", "path to the fragments file (default $FRAGMENTS_DB, config data_path, or the user config dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("fragments-mcp: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr or the log file
	logger := logging.NewOrNop(logging.Options{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: cfg.Development(),
	})
	defer func() { _ = logger.Sync() }()

	store, err := jsonfile.Open(cfg.DataFile(*dbFlag),
		jsonfile.WithLogger(logger),
		jsonfile.WithStrictUpdates(),
	)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}

	mcpServer := server.NewMCPServer(
		"fragments-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store, clipboard.NewSystem())

	logger.Info("serving MCP over stdio", zap.String("path", store.Path()))
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("fragments-mcp stopped", zap.Error(err))
	}
}
