package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"parley/internal/app"
	"parley/internal/client"
	"parley/internal/config"
	"parley/internal/logging"
)

func main() {
	fs := flag.NewFlagSet("parley", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	server := fs.String("server", "", "chat server address (host:port), overrides config")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error), overrides config")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parley: load config: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server.Address = *server
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, closeLog := openLogger(cfg)
	defer closeLog()

	c := client.New(cfg.ServerBaseURL())
	log.Info("starting",
		logging.F("server", cfg.ServerAddress()),
		logging.F("sid", c.SessionID()),
	)

	if err := app.Run(cfg, c, log); err != nil {
		log.Error("ui exited", logging.F("err", err.Error()))
		fmt.Fprintf(os.Stderr, "parley: %v\n", err)
		os.Exit(1)
	}
}

// openLogger writes to the data-dir log file; the terminal is owned by the
// UI. Falls back to a nop logger when the file cannot be opened.
func openLogger(cfg config.Config) (logging.Logger, func()) {
	path, err := config.LogPath()
	if err != nil {
		return logging.Nop(), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logging.Nop(), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logging.Nop(), func() {}
	}
	log := logging.New(file, logging.ParseLevel(cfg.LogLevel()))
	return log, func() { _ = file.Close() }
}
