package session

import (
	"fmt"
	"io"
	"time"

	"github.com/sensei2412/eksamen/protocol"

	"github.com/sirupsen/logrus"
)

// Receive delivers payload bytes to sink in strict sequence order until the
// peer's FIN arrives, then replies FIN-ACK and returns. Only the exact next
// expected sequence number is accepted; anything else, duplicate or future,
// is discarded without acknowledgment so the sender's Go-Back-N timer does
// the repair. The server blocks without a deadline; it has no independent
// notion of giving up.
func (s *Session) Receive(sink io.Writer) (Stats, error) {
	if s.state != StateEstablished {
		return Stats{}, ErrNotEstablished
	}

	s.log.Info("Data Transfer:")
	start := time.Now()
	var received int64
	expected := uint16(1)
	for {
		f, err := s.readFrame(time.Time{})
		if err != nil {
			return Stats{Bytes: received, Elapsed: time.Since(start)}, err
		}

		if f.Kind == protocol.Fin {
			// Terminates the data phase unconditionally, even mid-window.
			s.log.Info("FIN packet is received")
			s.setState(StateFinRcvd)
			if err := s.writeFrame(protocol.Frame{Kind: protocol.FinAck}); err != nil {
				return Stats{Bytes: received, Elapsed: time.Since(start)}, err
			}
			s.log.Info("FIN-ACK packet is sent")
			s.setState(StateClosed)
			return Stats{Bytes: received, Elapsed: time.Since(start)}, nil
		}
		if f.Kind != protocol.Data {
			// Stray control frame, eg. a retransmitted handshake ACK.
			continue
		}

		if s.cfg.Drop != nil && s.cfg.Drop(f.Seq) {
			s.log.WithField("seq", f.Seq).Warn("Packet is dropped (fault injection)")
			continue
		}

		if f.Seq != expected {
			s.log.WithFields(logrus.Fields{
				"seq":      f.Seq,
				"expected": expected,
			}).Warn("Out-of-order packet is discarded")
			continue
		}

		if _, err := sink.Write(f.Payload); err != nil {
			return Stats{Bytes: received, Elapsed: time.Since(start)},
				fmt.Errorf("deliver payload: %w", err)
		}
		received += int64(len(f.Payload))
		s.log.WithField("seq", f.Seq).Info("Packet is received")

		ack := protocol.Frame{
			Kind:   protocol.Ack,
			Ack:    expected,
			Window: s.window,
		}
		if err := s.writeFrame(ack); err != nil {
			return Stats{Bytes: received, Elapsed: time.Since(start)}, err
		}
		s.log.WithField("ack", expected).Info("ACK is sent")
		expected++
	}
}
