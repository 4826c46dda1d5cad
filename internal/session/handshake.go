package session

import "context"

// Negotiate sends the identity frame and runs one disconnect check.
// There is no acknowledgement in the protocol: a server that accepts
// the frame keeps the connection open, one that rejects it (a taken
// name, an unknown role) closes it.  On rejection the session is
// stopped with CauseHandshakeRejected and cleaned up.
func (s *Session) Negotiate(ctx context.Context, frame []byte) bool {
	if s.sock == nil || s.cause != CauseNone {
		return false
	}

	if err := s.Send(frame); err != nil {
		s.logger.Verbose("handshake write failed: %v", err)
		s.reject()
		return false
	}

	if s.Disconnected(ctx) {
		s.reject()
		return false
	}

	s.running = true
	s.started = true
	s.logger.Verbose("handshake accepted")
	return true
}

func (s *Session) reject() {
	s.Stop(CauseHandshakeRejected)
	s.Cleanup()
}
