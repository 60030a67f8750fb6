package session

import (
	"fmt"
	"net"
	"time"

	"github.com/sensei2412/eksamen/protocol"
	uerrors "github.com/sensei2412/eksamen/util/errors"
)

// Open runs the client side of the three-way handshake and returns the
// negotiated window: the smaller of the configured sender window and the
// capacity advertised by the server. A single attempt is made; if no SYN-ACK
// arrives within the timeout the connection attempt is abandoned.
func (s *Session) Open() (uint16, error) {
	if err := s.writeFrame(protocol.Frame{Kind: protocol.Syn}); err != nil {
		return 0, err
	}
	s.log.Info("SYN packet is sent")
	s.setState(StateSynSent)

	f, err := s.readFrame(time.Now().Add(s.cfg.Timeout))
	if err != nil {
		if uerrors.IsDeadlineError(err) {
			return 0, ErrHandshakeTimeout
		}
		return 0, err
	}
	if f.Kind != protocol.SynAck {
		return 0, fmt.Errorf("%w: got %s", ErrHandshake, f.Kind)
	}
	s.log.Info("SYN-ACK packet is received")

	if err := s.writeFrame(protocol.Frame{Kind: protocol.Ack, Ack: f.Seq + 1}); err != nil {
		return 0, err
	}
	s.log.Info("ACK packet is sent")

	window := uint16(s.cfg.Window)
	if f.Window > 0 && f.Window < window {
		window = f.Window
	}
	s.window = window
	s.setState(StateEstablished)
	s.log.Info("Connection established")
	return window, nil
}

// Accept runs the server side of the three-way handshake, blocking without a
// deadline until a client shows up, and returns the client's address.
func (s *Session) Accept() (net.Addr, error) {
	f, err := s.readFrame(time.Time{})
	if err != nil {
		return nil, err
	}
	if f.Kind != protocol.Syn {
		return nil, fmt.Errorf("%w: expected SYN, got %s", ErrHandshake, f.Kind)
	}
	s.log.Info("SYN packet is received")
	s.setState(StateSynRcvd)

	synAck := protocol.Frame{
		Kind:   protocol.SynAck,
		Ack:    f.Seq + 1,
		Window: uint16(s.cfg.ReceiverWindow),
	}
	if err := s.writeFrame(synAck); err != nil {
		return nil, err
	}
	s.log.Info("SYN-ACK packet is sent")

	f, err = s.readFrame(time.Time{})
	if err != nil {
		return nil, err
	}
	if f.Kind != protocol.Ack {
		return nil, fmt.Errorf("%w: expected ACK, got %s", ErrHandshake, f.Kind)
	}
	s.log.Info("ACK packet is received")

	s.window = uint16(s.cfg.ReceiverWindow)
	s.setState(StateEstablished)
	s.log.Info("Connection established")
	return s.conn.RemoteAddr(), nil
}
