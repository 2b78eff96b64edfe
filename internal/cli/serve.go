package cli

import (
	"context"
	"fmt"

	httpAdapter "github.com/aretw0/passage/pkg/adapters/http"
	"github.com/aretw0/passage/pkg/adapters/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServeHTTP runs the JSON API until ctx is cancelled.
func ServeHTTP(ctx context.Context, rt *Runtime, port int) error {
	handler := httpAdapter.NewHandler(rt.Service,
		httpAdapter.WithLogger(rt.Logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{})),
	)
	rt.Logger.Info("Serving Passage API", "port", port, "cache", rt.Config.Cache.Backend)
	return httpAdapter.Serve(ctx, port, handler)
}

// ServeMCP runs the MCP server over the given transport.
// The stdio transport returns when stdin closes; sse returns when ctx is cancelled.
func ServeMCP(ctx context.Context, rt *Runtime, transport string, port int) error {
	srv := mcp.NewServer(rt.Service)
	switch transport {
	case "stdio":
		rt.Logger.Info("Starting Passage MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		rt.Logger.Info("Starting Passage MCP Server (SSE)", "port", port)
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}
