// Command gridtoys serves the knight's tour and gravity chess games.
//
// Commands:
//  1. "serve" (default) runs the HTTP server exposing the REST API, WebSocket and an /mcp HTTP endpoint
//  2. "stdio-mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" plays a preset in the terminal
//  4. "validate" checks every preset in the config directory
//
// Flags control host/port, config and session directories, logging, and
// optional ngrok tunneling for easy external access during development. Each
// flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/wricardo/gridtoys/game/config"
	"github.com/wricardo/gridtoys/game/service"
	"github.com/wricardo/gridtoys/game/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Grid Toys Server"
)

const (
	sessionMaxAge       = 24 * time.Hour
	sessionCleanupEvery = time.Hour
	filesystemSyncEvery = 5 * time.Second
)

// options is the parsed form of the global flags.
type options struct {
	host        string
	port        int
	configDir   string
	sessionsDir string
	debug       bool
	logEncoding string
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func (o options) addr() string {
	return fmt.Sprintf("%s:%d", o.host, o.port)
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		host:        cmd.String("host"),
		port:        cmd.Int("port"),
		configDir:   cmd.String("config-dir"),
		sessionsDir: cmd.String("sessions-dir"),
		debug:       cmd.Bool("debug"),
		logEncoding: cmd.String("log-encoding"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "gridtoys",
		Usage:   "knight's tour and gravity chess over REST, WebSocket and MCP",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game presets", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "sessions-dir", Value: "sessions", Usage: "Directory for persisted sessions, empty to keep sessions in memory", Sources: cli.EnvVars("SESSIONS_DIR")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging", Sources: cli.EnvVars("DEBUG")},
			&cli.StringFlag{Name: "log-encoding", Value: "plain", Usage: "Log encoding: plain or json", Sources: cli.EnvVars("LOG_ENCODING")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(optionsFrom(cmd))
			return ctx, nil
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action: serveAction,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  stdioAction,
			},
			playCommand(),
			validateCommand(),
		},
	}
}

// main loads .env and runs the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		logx.Errorw("command failed", logx.Field("error", err.Error()))
		os.Exit(1)
	}
}

// setupLogging configures logx once for the whole process.
func setupLogging(opts options) {
	level := "info"
	if opts.debug {
		level = "debug"
	}
	encoding := opts.logEncoding
	if encoding != "json" {
		encoding = "plain"
	}
	logx.MustSetup(logx.LogConf{
		ServiceName: "gridtoys",
		Mode:        "console",
		Encoding:    encoding,
		Level:       level,
		Stat:        false,
	})
}

// initializeServices wires session/config managers and the game service.
// It also starts background routines that prune stale sessions until ctx is
// done.
func initializeServices(ctx context.Context, opts options) (service.GameService, error) {
	// Create config manager first (needed for persistence)
	configManager, err := config.NewManager(opts.configDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config manager")
	}

	sessionManager := session.NewManager()
	var persistence session.SessionPersistence
	if opts.sessionsDir != "" {
		fp, err := session.NewFilePersistence(opts.sessionsDir, configManager)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create session persistence")
		}
		persistence = fp
		sessionManager = session.NewManagerWithPersistence(fp)

		// Load persisted sessions on startup
		if err := sessionManager.LoadPersistedSessions(); err != nil {
			logx.Errorw("failed to load persisted sessions", logx.Field("error", err.Error()))
		}
	}

	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, sessionCleanupEvery)
	if persistence != nil {
		go filesystemSyncRoutine(ctx, sessionManager, persistence, filesystemSyncEvery)
	}

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				logx.Infow("cleaned up expired sessions", logx.Field("removed", removed))
			}
		}
	}
}

// filesystemSyncRoutine drops sessions from memory once their files are
// deleted.
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruneOrphans(manager, persistence)
		}
	}
}

func pruneOrphans(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			logx.Infow("pruned session from memory (file deleted)", logx.Field("session", sess.ID))
		}
	}
	return pruned
}
