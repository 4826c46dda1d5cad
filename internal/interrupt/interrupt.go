// Package interrupt turns an operating-system interrupt into a polite
// disconnect request.  The request is a flag the viewer loop polls
// between disconnect checks plus a context that cuts an in-progress
// check short; the process itself is never terminated here.
package interrupt

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"tcpchat/internal/console"
)

// Signal is a one-shot disconnect request.
type Signal struct {
	requested atomic.Bool
	once      sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	con       *console.Console
}

// New returns an unset signal whose context is derived from parent.
// con receives the "Disconnecting..." notice; it may be nil.
func New(parent context.Context, con *console.Console) *Signal {
	ctx, cancel := context.WithCancel(parent)
	return &Signal{ctx: ctx, cancel: cancel, con: con}
}

// RequestDisconnect sets the flag and cancels the context.  Only the
// first call prints the notice.
func (s *Signal) RequestDisconnect() {
	s.once.Do(func() {
		if s.con != nil {
			s.con.Notice("Disconnecting...")
		}
		s.requested.Store(true)
		s.cancel()
	})
}

// Requested reports whether a disconnect has been requested.
func (s *Signal) Requested() bool { return s.requested.Load() }

// Context is cancelled once a disconnect is requested or the parent
// context ends.
func (s *Signal) Context() context.Context { return s.ctx }

// Notify routes the given signals (os.Interrupt and SIGTERM when none
// are named) to RequestDisconnect, suppressing their default action.
// The returned function restores default handling.
func (s *Signal) Notify(sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				s.RequestDisconnect()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
