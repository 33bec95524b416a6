package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
)

var log, chk = slog.New(os.Stderr)

const appName = "postr"

const version = "0.1.0"

func main() {
	// a missing .env is fine, the key can come from the flag or environment
	if err := godotenv.Load(".env"); err != nil {
		log.T.Ln("no .env file loaded:", err)
	}
	var cfg C
	arg.MustParse(&cfg)
	slog.SetLogLevelString(cfg.LogLevel)
	c, cancel := signal.NotifyContext(context.Bg(), os.Interrupt,
		syscall.SIGTERM)
	defer cancel()
	if err := Post(c, &cfg, os.Stdout); chk.E(err) {
		os.Exit(1)
	}
}
