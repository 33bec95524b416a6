// Package interrupt runs registered shutdown handlers once, on SIGINT,
// SIGTERM or a programmatic Request.
package interrupt

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"go.uber.org/atomic"
)

var log, _ = slog.New(os.Stderr)

type HandlerWithSource struct {
	Source string
	Fn     func()
}

var (
	requested atomic.Bool

	// signals is the list of signals that cause the interrupt
	signals = []os.Signal{os.Interrupt, syscall.SIGTERM}

	mx       sync.Mutex
	handlers []HandlerWithSource
	started  bool

	shutdown     = make(chan struct{})
	shutdownOnce sync.Once

	// HandlersDone is closed after all handlers have run.
	HandlersDone = make(chan struct{})
)

func listener(ch chan os.Signal) {
	select {
	case sig := <-ch:
		log.D.Ln("received interrupt signal", sig)
		requested.Store(true)
	case <-shutdown:
		log.W.Ln("received shutdown request - shutting down...")
	}
	signal.Stop(ch)
	mx.Lock()
	hs := handlers
	mx.Unlock()
	log.D.Ln("running interrupt callbacks", len(hs))
	// run handlers in LIFO order.
	for i := len(hs) - 1; i >= 0; i-- {
		log.D.Ln("running callback", i, hs[i].Source)
		hs[i].Fn()
	}
	log.D.Ln("interrupt handlers finished")
	close(HandlersDone)
}

// AddHandler adds a handler to call when an interrupt arrives. The first
// call starts listening for signals.
func AddHandler(handler func()) {
	_, loc, line, _ := runtime.Caller(1)
	msg := fmt.Sprintf("%s:%d", loc, line)
	log.D.Ln("handler added by:", msg)
	mx.Lock()
	defer mx.Unlock()
	handlers = append(handlers, HandlerWithSource{msg, handler})
	if !started {
		started = true
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, signals...)
		go listener(ch)
	}
}

// Request programmatically requests a shutdown. Calls after the first do
// nothing.
func Request() {
	_, f, l, _ := runtime.Caller(1)
	log.D.Ln("interrupt requested", f, l, requested.Load())
	if !requested.CompareAndSwap(false, true) {
		log.D.Ln("requested again")
		return
	}
	shutdownOnce.Do(func() { close(shutdown) })
}

// Requested returns true if an interrupt has been requested
func Requested() bool { return requested.Load() }
