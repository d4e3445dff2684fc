package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindlog/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
	// TransportSSE serves MCP over HTTP server-sent events.
	TransportSSE Transport = "sse"
)

// Runner coordinates MCP server startup.
type Runner struct {
	App     *app.Service
	Name    string
	Version string

	Transport     Transport
	SSEListenAddr string
	// SSEBaseURL is advertised to clients as the message endpoint base.
	SSEBaseURL     string
	OnSSEListening func(addr string)
}

// NewServer builds the MCP server with every tool and resource registered.
func (r Runner) NewServer() (*server.MCPServer, error) {
	if r.App == nil || r.App.Persistence == nil {
		return nil, errors.New("mcp runner requires persistence")
	}
	name := r.Name
	if name == "" {
		name = "mindlog"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Write journal entries, read reflections and summaries, and continue conversations about entries."),
		server.WithRecovery(),
	)

	svc := NewService(r.App)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv, nil
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.NewServer()
	if err != nil {
		return err
	}

	switch t := r.Transport; t {
	case "", TransportStdio:
		return server.ServeStdio(srv)
	case TransportSSE:
		return r.serveSSE(ctx, srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r Runner) serveSSE(ctx context.Context, srv *server.MCPServer) error {
	addr := r.SSEListenAddr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	baseURL := r.SSEBaseURL
	if baseURL == "" {
		baseURL = "http://" + addr
	}

	sse := server.NewSSEServer(srv, server.WithBaseURL(baseURL))

	if ctx != nil {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = sse.Shutdown(shutdownCtx)
		}()
	}

	if r.OnSSEListening != nil {
		r.OnSSEListening(baseURL)
	}

	err := sse.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
