// Package mcp exposes the workspace over the Model Context Protocol on
// stdio: definition lookup, diagnostics and symbol listings as tools.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/abl-cortex/internal/service"
)

// Server manages the MCP server lifecycle around one workspace service.
type Server struct {
	svc *service.Service
	mcp *server.MCPServer
}

// NewServer creates an MCP server with the ABL tools registered.
func NewServer(svc *service.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("workspace service is required")
	}

	mcpServer := server.NewMCPServer(
		"abl-cortex",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddDefinitionTool(mcpServer, svc)
	AddCheckTool(mcpServer, svc)
	AddSymbolsTool(mcpServer, svc)

	return &Server{svc: svc, mcp: mcpServer}, nil
}

// Serve starts the schema watcher and the stdio server and blocks until
// shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.svc.WatchSchema(ctx); err != nil {
		log.Printf("Warning: schema watcher not started: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
