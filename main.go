package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mdp/qrterminal/v3"
	"golang.org/x/term"

	"github.com/marbleseoul/server/chat"
	"github.com/marbleseoul/server/config"
	"github.com/marbleseoul/server/logger"
	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/mcp"
	"github.com/marbleseoul/server/middleware"
	"github.com/marbleseoul/server/session"
	"github.com/marbleseoul/server/transcript"
	"github.com/marbleseoul/server/web"
	"github.com/marbleseoul/server/ws"
)

const version = "1.0.0"

func newHandler(cfg config.Config, rpcHandler *ws.RPCHandler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /", web.Index())

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("GET /api/geo/districts", web.GeoDistricts())

	// WebSocket endpoint (handles its own auth via the first request)
	mux.Handle("GET /ws", rpcHandler)

	return middleware.Auth(cfg.AuthToken)(mux)
}

func newResponder(cfg config.Config) chat.Responder {
	if cfg.LLMEnabled() {
		slog.Info("chat responder: anthropic", "model", cfg.AnthropicModel)
		return chat.NewAnthropicResponder(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	slog.Info("chat responder: echo (set ANTHROPIC_API_KEY to enable the model)")
	return chat.Echo{}
}

// printAccessQR renders a QR code of the panel URL for phone access when
// stdout is an interactive terminal.
func printAccessQR(cfg config.Config) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	url := fmt.Sprintf("http://%s", cfg.Addr())
	fmt.Printf("\n마블서울 %s\n%s\n\n", version, url)
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    os.Stdout,
		BlackChar: qrterminal.BLACK,
		WhiteChar: qrterminal.WHITE,
		QuietZone: 1,
	})
}

func run() error {
	mcpMode := flag.Bool("mcp", false, "serve market data tools over stdio MCP instead of HTTP")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.Config{
		DataDir: cfg.DataDir,
		DevMode: cfg.DevMode,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Format:  cfg.LogFormat,
	})

	marketStore := market.NewStore(cfg.MarketDir)
	if err := marketStore.Load(); err != nil {
		// The panel still runs without data; the chat degrades gracefully.
		slog.Warn("market data not loaded", "dir", cfg.MarketDir, "error", err)
	}

	if *mcpMode {
		return mcp.NewServer(marketStore).Run(version)
	}

	transcripts, err := transcript.Open(filepath.Join(cfg.DataDir, "transcripts"))
	if err != nil {
		return fmt.Errorf("failed to open transcript store: %w", err)
	}
	defer transcripts.Close()

	sessions := session.NewStore()
	chatService := chat.NewService(sessions, marketStore, newResponder(cfg), transcripts, cfg.MaxMessageLen)

	rpcHandler := ws.NewRPCHandler(cfg.AuthToken, version, cfg.DevMode,
		sessions, marketStore, chatService, transcripts)
	defer rpcHandler.Stop()

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: newHandler(cfg, rpcHandler),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "devMode", cfg.DevMode)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	printAccessQR(cfg)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
