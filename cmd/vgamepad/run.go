package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/vgamepad/internal/app"
	"github.com/frudas24/vgamepad/internal/config"
	"github.com/frudas24/vgamepad/internal/layout"
)

// runServe wires the application and blocks until shutdown.
func runServe(parent context.Context, opts *serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.debug {
		cfg.Debug = true
	}
	if cfg.Debug {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	l, err := layout.Load(cfg.LayoutPath)
	if err != nil {
		return fmt.Errorf("layout %s: %w", cfg.LayoutPath, err)
	}

	appInstance, err := app.New(cfg, l, log.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, opts.staticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// runLayoutCheck builds the layout at path into a throwaway context.
func runLayoutCheck(out io.Writer, args []string) error {
	path, err := layoutPath(args)
	if err != nil {
		return err
	}
	if !fileExists(path) {
		return fmt.Errorf("layout %s: file not found", path)
	}
	l, err := layout.Load(path)
	if err != nil {
		return fmt.Errorf("layout %s: %w", path, err)
	}
	if err := layout.Validate(l); err != nil {
		return fmt.Errorf("layout %s: %w", path, err)
	}
	_, err = fmt.Fprintf(out, "layout ok: %s (%d control(s))\n", path, len(l.Controls))
	return err
}

// runLayoutInit writes the default layout to path.
func runLayoutInit(out io.Writer, args []string, force bool) error {
	path, err := layoutPath(args)
	if err != nil {
		return err
	}
	if fileExists(path) && !force {
		return fmt.Errorf("layout %s already exists (use --force)", path)
	}
	if err := layout.Save(path, layout.Default()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "layout written: %s\n", path)
	return err
}

// layoutPath returns the explicit path argument or the configured one.
func layoutPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.LayoutPath, nil
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("vgamepad starting")
	logEnvStatus(cfg)
	logLayoutStatus(cfg.LayoutPath)
	log.Printf("input mode: %s", cfg.InputMode)
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
}

// logLayoutStatus reports whether the layout file exists or the default is used.
func logLayoutStatus(path string) {
	if fileExists(path) {
		log.Printf("layout check: ok (%s)", path)
		return
	}
	log.Printf("layout check: missing (%s), using default stick", path)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
