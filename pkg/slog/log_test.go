package slog_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/stretchr/testify/assert"
)

var log, chk = slog.New(os.Stdout)

func TestGetLogger(t *testing.T) {
	defer slog.SetLogLevel(slog.Info)
	for i := 0; i < 10; i++ {
		slog.SetLogLevel(slog.Trace)
		log.T.Ln("testing log level", "trace")
		log.D.Ln("testing log level", "debug")
		log.I.Ln("testing log level", "info")
		log.W.Ln("testing log level", "warn")
		log.E.F("testing log level %s", "error")
		log.F.Ln("testing log level", "fatal")
		chk.F(errors.New("dummy error as fatal"))
		chk.E(errors.New("dummy error as error"))
		chk.W(errors.New("dummy error as warning"))
		chk.I(errors.New("dummy error as info"))
		chk.D(errors.New("dummy error as debug"))
		chk.T(errors.New("dummy error as trace"))
		log.I.Ln("log.I.Err",
			log.I.Err("format string %d '%s'", 5, "testing") != nil)
		log.I.Chk(errors.New("dummy information check"))
		log.I.Chk(nil)
		log.I.S("`backtick wrapped string`", t)
	}
}

func TestLevelFiltering(t *testing.T) {
	defer slog.SetLogLevel(slog.Info)
	var buf bytes.Buffer
	lg, ck := slog.New(&buf)
	slog.SetLogLevel(slog.Warn)
	lg.D.Ln("hidden debug")
	lg.I.Ln("hidden info")
	lg.W.Ln("shown", "warning")
	called := false
	lg.T.C(func() string { called = true; return "never" })
	assert.False(t, called, "closure must not run above the current level")
	// Chk still reports the error even when it is not printed
	assert.True(t, ck.D(errors.New("quiet")))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	// the location is the caller's, not the logger's
	assert.Contains(t, out, "log_test.go:")
}

func TestSetLogLevelString(t *testing.T) {
	defer slog.SetLogLevel(slog.Info)
	for in, want := range map[string]int{
		"trace":   slog.Trace,
		"DEBUG":   slog.Debug,
		"warn":    slog.Warn,
		"error":   slog.Error,
		"fatal":   slog.Fatal,
		"off":     slog.Off,
		"info":    slog.Info,
		"garbage": slog.Info,
	} {
		slog.SetLogLevelString(in)
		assert.Equal(t, want, slog.GetLogLevel(), in)
	}
}
