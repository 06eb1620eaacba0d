package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/marmitaria/internal/client/api"
	"github.com/iudanet/marmitaria/internal/client/auth"
	"github.com/iudanet/marmitaria/internal/client/cli"
	"github.com/iudanet/marmitaria/internal/client/iocli"
	"github.com/iudanet/marmitaria/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], iocli.NewStdio(), os.Stderr)
	stop()
	os.Exit(code)
}

// run возвращает код выхода: 0 успех, 1 ошибка
func run(ctx context.Context, args []string, term iocli.IO, stderr io.Writer) int {
	opts, err := config.Parse(cli.AppName, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.ShowVersion {
		printVersion(term)
		return 0
	}

	cfg := opts.Config
	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Открываем локальное хранилище сессии
	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open session storage: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	sealer, err := newSealer(cfg.Storage)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	tokens := auth.NewTokenStore(store, sealer)
	client := api.NewClient(cfg.Server, tokens,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Timeout),
	)
	session := auth.NewSessionStore(client, tokens, logger)
	if err := session.Init(ctx); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}

	app := cli.New(term, client, session, cli.Options{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	client.SetNavigator(app)

	if err := app.Run(ctx, opts.Args); err != nil {
		logger.Debug("command failed", "error", err)
		return 1
	}
	return 0
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

func printVersion(term iocli.IO) {
	term.Printf("Marmitaria Client\n")
	term.Printf("Version:    %s\n", Version)
	term.Printf("Build Date: %s\n", BuildDate)
	term.Printf("Git Commit: %s\n", GitCommit)
}
