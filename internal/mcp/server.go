package mcp

// Implementation Plan:
// 1. MCPServer struct with cached outliner and watcher
// 2. NewMCPServer - creates server, builds cache, starts watcher
// 3. Serve - starts MCP server on stdio with graceful shutdown
// 4. Graceful shutdown on SIGTERM/SIGINT
// 5. Clean error handling and logging

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rubyscope/rubyscope/internal/config"
	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/outliner"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config   *config.Config
	outlines *CachedOutliner
	watcher  *FileWatcher
	mcp      *server.MCPServer
}

// NewMCPServer creates a new MCP server rooted at rootDir.
func NewMCPServer(cfg *config.Config, rootDir string) (*MCPServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	service := outliner.New(
		outline.WithMaxNodes(cfg.Engine.MaxNodes),
		outline.WithVerify(cfg.Engine.SortVerify),
	)

	capacity := cfg.Cache.Capacity
	if !cfg.Cache.Enabled {
		capacity = 0
	}
	outlines, err := NewCachedOutliner(service, capacity, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to create outline cache: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"rubyscope-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddRubyOutlineTool(mcpServer, outlines)

	watcher, err := NewFileWatcher(outlines, rootDir)
	if err != nil {
		outlines.Close()
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &MCPServer{
		config:   cfg,
		outlines: outlines,
		watcher:  watcher,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	s.watcher.Start(ctx)
	defer s.watcher.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

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
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.outlines != nil {
		s.outlines.Close()
	}
	return nil
}
