package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/wricardo/gridtoys/api"
	"github.com/wricardo/gridtoys/game/service"
	"github.com/wricardo/gridtoys/transport/mcp"
	"github.com/wricardo/gridtoys/transport/websocket"
)

func stdioAction(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol
	logx.SetWriter(logx.NewWriter(os.Stderr))

	opts := optionsFrom(cmd)
	gameService, err := initializeServices(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "failed to initialize services")
	}

	logx.Infow("starting", logx.Field("app", AppName), logx.Field("version", Version), logx.Field("mode", "stdio-mcp"))
	return runStdioMCPWithInternalServer(ctx, "http://"+opts.addr(), gameService)
}

// apiAvailable reports whether a REST API answers at baseURL.
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// startInternalAPI serves the REST API on a random loopback port and returns
// its base URL.
func startInternalAPI(gameService service.GameService) (string, *http.Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to get available port")
	}

	hub := websocket.NewHub()
	go hub.Run()

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logx.Errorw("internal HTTP server error", logx.Field("error", err.Error()))
		}
	}()

	return "http://" + listener.Addr().String(), httpServer, nil
}

// runStdioMCPWithInternalServer runs an MCP stdio server. It reuses an API
// already running at externalURL, or starts an internal one.
func runStdioMCPWithInternalServer(ctx context.Context, externalURL string, gameService service.GameService) error {
	baseURL := externalURL
	if apiAvailable(ctx, externalURL) {
		logx.Infow("external API server found, using it for MCP", logx.Field("url", externalURL))
	} else {
		internalURL, httpServer, err := startInternalAPI(gameService)
		if err != nil {
			return err
		}
		defer httpServer.Close()
		baseURL = internalURL
		logx.Infow("started internal HTTP server for MCP stdio", logx.Field("url", internalURL))
	}

	mcpClient := mcp.NewClient(baseURL)
	logx.Infow("MCP stdio server ready", logx.Field("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return errors.Wrap(err, "MCP stdio server error")
	}
	return nil
}
