// Package session implements the DRTP connection lifecycle and transfer
// engines: a three-way handshake, a Go-Back-N sender, a strictly in-order
// receiver, and a two-way teardown, all over a single datagram conn.
//
// Each Session runs one strictly sequential send/receive loop and owns its
// conn and receive buffer exclusively; a caller wishing to abort closes the
// underlying conn, which fails any pending receive.
package session

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/sensei2412/eksamen/protocol"

	"github.com/sirupsen/logrus"
)

type role uint8

const (
	roleClient role = iota
	roleServer
)

func (r role) String() string {
	if r == roleServer {
		return "server"
	}
	return "client"
}

// Session carries one connection's worth of protocol state. It is not safe
// for concurrent use; the protocol needs no internal parallelism.
type Session struct {
	conn net.Conn
	cfg  Config
	log  *logrus.Logger
	role role

	state  State
	window uint16

	// Receive buffer, owned exclusively for the Session's lifetime.
	buf []byte

	closed atomic.Bool
}

// Client wraps a conn already bound towards the server.
func Client(conn net.Conn, cfg Config) *Session {
	return newSession(conn, cfg, roleClient)
}

// Server wraps a bound conn awaiting a single client.
func Server(conn net.Conn, cfg Config) *Session {
	return newSession(conn, cfg, roleServer)
}

func newSession(conn net.Conn, cfg Config, r role) *Session {
	cfg = sanitizeConfig(cfg)
	return &Session{
		conn: conn,
		cfg:  cfg,
		log:  cfg.Logger,
		role: r,
		buf:  make([]byte, protocol.MaxPacketSize),
	}
}

func (s *Session) State() State {
	return s.state
}

// Window returns the window fixed at handshake time: the negotiated sender
// window for the client, the advertised receive capacity for the server.
func (s *Session) Window() uint16 {
	return s.window
}

func (s *Session) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

func (s *Session) setState(st State) {
	s.log.WithFields(logrus.Fields{
		"role": s.role,
		"from": s.state,
		"to":   st,
	}).Debug("State transition")
	s.state = st
}

// readFrame blocks for one datagram and decodes it. A zero deadline blocks
// indefinitely. The frame's payload aliases the session buffer and is valid
// until the next readFrame call.
func (s *Session) readFrame(deadline time.Time) (protocol.Frame, error) {
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return protocol.Frame{}, err
	}
	n, err := s.conn.Read(s.buf)
	if err != nil {
		return protocol.Frame{}, err
	}
	f, err := protocol.Decode(s.buf[:n])
	if err != nil {
		return protocol.Frame{}, err
	}
	s.log.WithField("role", s.role).Debugf("Receiving frame: %s", f)
	return f, nil
}

func (s *Session) writeFrame(f protocol.Frame) error {
	b, err := protocol.Encode(f)
	if err != nil {
		return err
	}
	s.log.WithField("role", s.role).Debugf("Sending frame: %s", f)
	_, err = s.conn.Write(b)
	return err
}
