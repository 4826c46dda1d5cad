// Package metrics provides lightweight, lock-free counters for tracking
// what happened during a chat session: traffic in both directions,
// disconnect checks, and how the session ended.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime statistics for one session.
type Collector struct {
	connectionsOpened atomic.Int64
	connectionsClosed atomic.Int64
	framesSent        atomic.Int64
	bytesIn           atomic.Int64
	bytesOut          atomic.Int64
	livenessChecks    atomic.Int64
	errorsTotal       atomic.Int64

	mu           sync.RWMutex
	sessionID    string
	startTime    time.Time
	lastCheck    time.Time
	endCause     string
	lastError    time.Time
	lastErrorMsg string
}

// New creates a collector for the session with the given id, with the
// start time set to now.
func New(sessionID string) *Collector {
	return &Collector{sessionID: sessionID, startTime: time.Now()}
}

// ── Connection ───────────────────────────────────────────────────────

// ConnectionOpened records a successful connect.
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connectionsOpened.Add(1)
}

// ConnectionClosed records the socket being released.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connectionsClosed.Add(1)
}

// ActiveConnections returns opened minus closed; 0 or 1 for a session.
func (c *Collector) ActiveConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsOpened.Load() - c.connectionsClosed.Load()
}

// ── Traffic ──────────────────────────────────────────────────────────

// FrameSent records one write call of n bytes.  The handshake frame
// counts as a frame.
func (c *Collector) FrameSent(n int) {
	if c == nil {
		return
	}
	c.framesSent.Add(1)
	c.bytesOut.Add(int64(n))
}

// BytesReceived records n bytes read from the server.
func (c *Collector) BytesReceived(n int) {
	if c == nil {
		return
	}
	c.bytesIn.Add(int64(n))
}

// FramesSent returns the number of write calls made.
func (c *Collector) FramesSent() int64 {
	if c == nil {
		return 0
	}
	return c.framesSent.Load()
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Liveness ─────────────────────────────────────────────────────────

// LivenessCheck records one disconnect check.
func (c *Collector) LivenessCheck() {
	if c == nil {
		return
	}
	c.livenessChecks.Add(1)
	c.mu.Lock()
	c.lastCheck = time.Now()
	c.mu.Unlock()
}

// LivenessChecks returns how many disconnect checks ran.
func (c *Collector) LivenessChecks() int64 {
	if c == nil {
		return 0
	}
	return c.livenessChecks.Load()
}

// ── Errors and outcome ───────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// RecordEnd stores why the session stopped.
func (c *Collector) RecordEnd(cause string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.endCause = cause
	c.mu.Unlock()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all statistics.
type Snapshot struct {
	SessionID         string `json:"session_id"`
	Uptime            string `json:"uptime"`
	ConnectionsActive int64  `json:"connections_active"`
	FramesSent        int64  `json:"frames_sent"`
	BytesIn           int64  `json:"bytes_in"`
	BytesOut          int64  `json:"bytes_out"`
	LivenessChecks    int64  `json:"liveness_checks"`
	ErrorsTotal       int64  `json:"errors_total"`
	EndCause          string `json:"end_cause,omitempty"`
	LastCheck         string `json:"last_liveness_check,omitempty"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current statistics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		SessionID:         c.sessionID,
		Uptime:            time.Since(c.startTime).Truncate(time.Millisecond).String(),
		ConnectionsActive: c.ActiveConnections(),
		FramesSent:        c.framesSent.Load(),
		BytesIn:           c.bytesIn.Load(),
		BytesOut:          c.bytesOut.Load(),
		LivenessChecks:    c.livenessChecks.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
		EndCause:          c.endCause,
	}
	if !c.lastCheck.IsZero() {
		s.LastCheck = c.lastCheck.Format(time.RFC3339)
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
