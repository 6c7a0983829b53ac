package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"planvault/internal/adapters/filesystem"
	mcpadapter "planvault/internal/adapters/mcp"
	"planvault/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("planvault-mcp: %v", err)
	}

	vaultFlag := flag.String("vault", cfg.Vault, "path to the vault")
	canvasFlag := flag.String("canvas", cfg.Canvas, "vault-relative canvas file")
	flag.Parse()

	repo := filesystem.NewRepository(*vaultFlag)
	canvas := filesystem.NewCanvasStore(*vaultFlag)

	mcpServer := server.NewMCPServer(
		"planvault-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, canvas, *canvasFlag)
	mcpadapter.RegisterWriteTools(mcpServer, repo, canvas, *canvasFlag)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("planvault-mcp: %v", err)
	}
}
