// Package main implements the entry point for the todo API server,
// a single-process HTTP service exposing CRUD operations over an
// in-memory collection of task records.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/inoUwU/todo-api/internal/config"
	"github.com/inoUwU/todo-api/internal/platform/logger"
	"github.com/jessevdk/go-flags"
)

// options holds the command line flags for the server binary. Struct tags
// are interpreted by github.com/jessevdk/go-flags.
type options struct {
	Config string `short:"f" long:"config" description:"Path to a todoapi.yaml configuration file"`
	Addr   string `long:"addr"             description:"Listen address override (host:port)"`
}

// main is the entry point for the todo-api server. The run function is
// separated from main to keep the startup path usable from tests.
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "todo-api: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration, sets up logging and starts the
// application. Returns an error for any startup failure.
func run(args []string) error {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.Addr != "" {
		if err := applyAddrOverride(cfg, opts.Addr); err != nil {
			return err
		}
	}

	// Set up structured logging using the configured log level
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"addr", cfg.Server.Addr(),
		"log_level", cfg.Server.LogLevel,
		"request_timeout_seconds", cfg.Server.RequestTimeoutSeconds)

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}

// applyAddrOverride replaces the configured listen address with the value
// from the --addr flag.
func applyAddrOverride(cfg *config.Config, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid --addr %q: %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port >= 65536 {
		return fmt.Errorf("invalid --addr port %q", portStr)
	}

	cfg.Server.Host = host
	cfg.Server.Port = port
	return nil
}
