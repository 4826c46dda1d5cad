package session

import ncerr "tcpchat/internal/errors"

// Cause is the reason a session stopped.
type Cause int

const (
	CauseNone Cause = iota
	CauseConnectFailed
	CauseHandshakeRejected
	CauseRemoteDisconnect
	CauseLocalQuit
	CauseCancelled
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseConnectFailed:
		return "connect failed"
	case CauseHandshakeRejected:
		return "handshake rejected"
	case CauseRemoteDisconnect:
		return "remote disconnect"
	case CauseLocalQuit:
		return "local quit"
	case CauseCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Err returns the sentinel matching a failure cause, or nil for causes
// that are a normal end of session.
func (c Cause) Err() error {
	switch c {
	case CauseConnectFailed:
		return ncerr.ErrNotConnected
	case CauseHandshakeRejected:
		return ncerr.ErrHandshakeRejected
	case CauseRemoteDisconnect:
		return ncerr.ErrRemoteClosed
	}
	return nil
}
