package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	flag "github.com/spf13/pflag"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/config"
	"github.com/alnah/go-md2text/internal/mcpserver"
	"github.com/alnah/go-md2text/internal/metrics"
)

// ErrUnknownTransport flags a transport other than stdio or http.
var ErrUnknownTransport = errors.New("unknown transport")

// Server defaults and timeouts.
const (
	defaultAddr       = ":8420"
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownGrace     = 5 * time.Second
)

// runServe starts the MCP server over the configured transport.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	switch {
	case flags.common.verbose:
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case flags.common.quiet:
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	transport := resolveSetting(flags.transport, cfg.Server.Transport, "stdio")
	addr := resolveSetting(flags.addr, cfg.Server.Addr, defaultAddr)

	switch transport {
	case "stdio":
		return serveStdio(ctx)
	case "http":
		return serveHTTP(ctx, addr)
	default:
		return fmt.Errorf("%w: %q (must be stdio or http)", ErrUnknownTransport, transport)
	}
}

// resolveSetting picks the first non-empty value: flag, config, default.
func resolveSetting(flagValue, cfgValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfgValue != "" {
		return cfgValue
	}
	return fallback
}

// serveStdio speaks MCP on stdin/stdout until the client disconnects or the
// signal context cancels. Logs go to stderr so the protocol stream stays clean.
func serveStdio(ctx context.Context) error {
	slog.Info("starting MCP server", "transport", "stdio", "version", md2text.Version())
	srv := mcpserver.New(metrics.NewNopRecorder())
	return srv.Run(ctx)
}

// serveHTTP serves the streamable MCP handler plus health and metrics
// endpoints, shutting down gracefully when ctx cancels.
func serveHTTP(ctx context.Context, addr string) error {
	recorder := metrics.NewPromRecorder()
	srv := mcpserver.New(recorder)

	mux := http.NewServeMux()
	mux.Handle("/mcp", srv.HTTPHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", recorder.HTTPHandler())

	server := &http.Server{
		Addr:              addr,
		Handler:           requestLogger(slog.Default(), mux),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	slog.Info("starting MCP server", "transport", "http", "addr", addr, "version", md2text.Version())

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// requestLogger logs method, path, status, and duration for every request.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr)
	})
}

// statusWriter captures the response status code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
