package interrupt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tcpchat/internal/console"
)

func TestSignal_RequestOnce(t *testing.T) {
	var buf bytes.Buffer
	s := New(context.Background(), console.New(&buf, false))

	if s.Requested() {
		t.Fatal("new signal should be unset")
	}
	if s.Context().Err() != nil {
		t.Fatal("new signal context should be live")
	}

	s.RequestDisconnect()
	s.RequestDisconnect()

	if !s.Requested() {
		t.Error("signal should be set")
	}
	if s.Context().Err() == nil {
		t.Error("context should be cancelled")
	}
	if got := strings.Count(buf.String(), "Disconnecting..."); got != 1 {
		t.Errorf("notice printed %d times, want 1", got)
	}
}

func TestSignal_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := New(parent, nil)
	cancel()

	if s.Context().Err() == nil {
		t.Error("child context should follow the parent")
	}
	if s.Requested() {
		t.Error("parent cancellation is not a disconnect request")
	}
}
