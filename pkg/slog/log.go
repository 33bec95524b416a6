// Package slog is a levelled logger. Each package keeps its own pair from
// New, and the level is shared process wide.
package slog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
	"go.uber.org/atomic"
)

func init() {
	SetLogLevelString(os.Getenv("GODEBUG"))
}

const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

var (
	currentLevel = atomic.NewInt32(Info)
	tags         = [...]string{
		Fatal: color.Bit24(128, 0, 0, false).Sprint("FTL"),
		Error: color.Bit24(255, 0, 0, false).Sprint("ERR"),
		Warn:  color.Bit24(0, 255, 0, false).Sprint("WRN"),
		Info:  color.Bit24(255, 255, 0, false).Sprint("INF"),
		Debug: color.Bit24(0, 125, 255, false).Sprint("DBG"),
		Trace: color.Bit24(125, 0, 255, false).Sprint("TRC"),
	}
	locColor = color.Bit24(0, 128, 255, false)
)

// LevelPrinter prints at one level. Ln joins its arguments with spaces, F
// formats, S dumps with spew, C only runs its closure when the level is
// printed, Chk prints a non-nil error and reports whether there was one, and
// Err builds an error, prints it and returns it.
type LevelPrinter struct {
	Ln  func(a ...any)
	F   func(format string, a ...any)
	S   func(a ...any)
	C   func(closure func() string)
	Chk func(e error) bool
	Err func(format string, a ...any) error
}

// Log is a set of log printers for the various Level items.
type Log struct {
	F, E, W, I, D, T LevelPrinter
}

type Check struct {
	F, E, W, I, D, T func(e error) bool
}

// enabled reports whether messages at level l are currently printed.
func enabled(l int32) bool { return l <= currentLevel.Load() }

func printer(l int32, writer io.Writer) LevelPrinter {
	print := func(text string) {
		_, file, line, _ := runtime.Caller(2)
		now := time.Now()
		fmt.Fprintf(writer, "%d.%09d %s %s %s\n", now.Unix(), now.Nanosecond(),
			tags[l], text, locColor.Sprint(file, ":", line))
	}
	return LevelPrinter{
		Ln: func(a ...any) {
			if enabled(l) {
				print(strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
			}
		},
		F: func(format string, a ...any) {
			if enabled(l) {
				print(fmt.Sprintf(format, a...))
			}
		},
		S: func(a ...any) {
			if enabled(l) {
				print(spew.Sdump(a...))
			}
		},
		C: func(closure func() string) {
			if enabled(l) {
				print(closure())
			}
		},
		Chk: func(e error) bool {
			if e == nil {
				return false
			}
			if enabled(l) {
				print(e.Error())
			}
			return true
		},
		Err: func(format string, a ...any) error {
			err := fmt.Errorf(format, a...)
			if enabled(l) {
				print(err.Error())
			}
			return err
		},
	}
}

func New(writer io.Writer) (l *Log, c *Check) {
	l = &Log{
		F: printer(Fatal, writer),
		E: printer(Error, writer),
		W: printer(Warn, writer),
		I: printer(Info, writer),
		D: printer(Debug, writer),
		T: printer(Trace, writer),
	}
	c = &Check{
		F: l.F.Chk,
		E: l.E.Chk,
		W: l.W.Chk,
		I: l.I.Chk,
		D: l.D.Chk,
		T: l.T.Chk,
	}
	return
}

// SetLogLevel sets the current log level, messages above it are dropped.
func SetLogLevel(l int) {
	if l < Off {
		l = Off
	}
	if l > Trace {
		l = Trace
	}
	currentLevel.Store(int32(l))
}

// SetLogLevelString sets the log level from a name such as "debug" or
// "trace". Unrecognised values set the default, Info.
func SetLogLevelString(s string) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "TRUE", "ON", "DEBUG", "DBG":
		SetLogLevel(Debug)
	case "TRACE", "TRC":
		SetLogLevel(Trace)
	case "WARN", "WRN":
		SetLogLevel(Warn)
	case "ERROR", "ERR":
		SetLogLevel(Error)
	case "FATAL", "FTL":
		SetLogLevel(Fatal)
	case "0", "OFF", "FALSE":
		SetLogLevel(Off)
	default:
		SetLogLevel(Info)
	}
}

func GetLogLevel() int { return int(currentLevel.Load()) }
