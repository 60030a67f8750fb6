package session

import (
	"time"

	"github.com/sensei2412/eksamen/protocol"
	uerrors "github.com/sensei2412/eksamen/util/errors"
)

// Close releases the conn. An established client first runs the two-way
// teardown: it sends FIN and waits up to the timeout for an acknowledgment.
// Teardown is best effort; if no FIN-ACK arrives the session is closed
// anyway. Close is idempotent.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.role == roleClient && s.state == StateEstablished {
		s.teardown()
	}
	s.setState(StateClosed)
	s.log.Info("Connection closes")
	return s.conn.Close()
}

func (s *Session) teardown() {
	s.log.Info("Connection Teardown:")
	if err := s.writeFrame(protocol.Frame{Kind: protocol.Fin}); err != nil {
		s.log.WithError(err).Warn("Failed to send FIN")
		return
	}
	s.log.Info("FIN packet is sent")
	s.setState(StateFinSent)

	f, err := s.readFrame(time.Now().Add(s.cfg.Timeout))
	switch {
	case err == nil:
		if f.Kind == protocol.FinAck || f.Kind == protocol.Ack {
			s.log.Info("FIN-ACK packet is received")
		}
	case uerrors.IsDeadlineError(err):
		s.log.Warn("Timeout waiting for FIN-ACK")
	default:
		s.log.WithError(err).Warn("Teardown receive failed")
	}
}
