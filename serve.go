package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/gridtoys/api"
	"github.com/wricardo/gridtoys/game/service"
	"github.com/wricardo/gridtoys/transport/mcp"
	"github.com/wricardo/gridtoys/transport/websocket"
)

func serveAction(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService, err := initializeServices(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "failed to initialize services")
	}

	logx.Infow("starting", logx.Field("app", AppName), logx.Field("version", Version), logx.Field("mode", "serve"))
	return runHTTPServer(ctx, opts, gameService)
}

// mcpHandler answers single JSON-RPC MCP messages posted over HTTP.
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRootHandler mounts the API at the root and the MCP endpoint at /mcp.
func newRootHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient.GetMCPServer()))
	return mainRouter
}

// runHTTPServer serves the REST API, WebSocket hub and /mcp endpoint until
// ctx is cancelled. With ngrok enabled it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, opts options, gameService service.GameService) error {
	hub := websocket.NewHub()
	go hub.Run()

	addr := opts.addr()
	handler := newRootHandler(api.NewServer(gameService, hub), mcp.NewClient("http://"+addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logx.Infow("HTTP server listening",
			logx.Field("addr", addr),
			logx.Field("api", "http://"+addr+"/api"),
			logx.Field("websocket", "ws://"+addr+"/ws?session=<session_id>"),
			logx.Field("mcp", "http://"+addr+"/mcp"))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- errors.Wrap(err, "HTTP server failed")
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, handler)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logx.Infow("shutting down")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Errorw("HTTP server shutdown error", logx.Field("error", err.Error()))
	}

	wg.Wait()
	logx.Infow("server stopped")
	return runErr
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done.
func runNgrokTunnel(ctx context.Context, opts options, handler http.Handler) {
	if opts.ngrokAuth == "" {
		logx.Errorw("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		logx.Infow("using custom ngrok domain", logx.Field("domain", opts.ngrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.ngrokAuth))
	if err != nil {
		logx.Errorw("failed to start ngrok tunnel", logx.Field("error", err.Error()))
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logx.Errorw("failed to close ngrok tunnel", logx.Field("error", err.Error()))
		}
	}()

	ngrokURL := tun.URL()
	logx.Infow("ngrok tunnel established",
		logx.Field("url", ngrokURL),
		logx.Field("api", ngrokURL+"/api"),
		logx.Field("mcp", ngrokURL+"/mcp"))

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		logx.Errorw("ngrok server error", logx.Field("error", err.Error()))
	}
	logx.Infow("ngrok tunnel closed")
}
