// Package mocks provides an in-memory datagram conn pair for tests. Unlike a
// stream pipe it preserves message boundaries: every Write is delivered as
// one packet and every Read returns at most one packet, mirroring UDP.
package mocks

import (
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sensei2412/eksamen/util"
)

const backlog = 64

type conn struct {
	in  <-chan []byte
	out chan<- []byte

	readDeadline atomic.Value
	readNotify   chan struct{}

	writeDeadline atomic.Value
	writeNotify   chan struct{}

	die       chan struct{}
	closeOnce sync.Once
}

// Conn returns two connected datagram endpoints.
func Conn() (net.Conn, net.Conn) {
	ab := make(chan []byte, backlog)
	ba := make(chan []byte, backlog)
	return newConn(ba, ab), newConn(ab, ba)
}

func newConn(in <-chan []byte, out chan<- []byte) *conn {
	return &conn{
		in:          in,
		out:         out,
		readNotify:  make(chan struct{}),
		writeNotify: make(chan struct{}),
		die:         make(chan struct{}),
	}
}

func (c *conn) Read(b []byte) (int, error) {
	if len(b) <= 0 {
		return 0, io.ErrShortBuffer
	}
	var deadline <-chan time.Time
	for {
		if t, ok := c.readDeadline.Load().(time.Time); ok && !t.IsZero() {
			timer := time.NewTimer(time.Until(t))
			defer timer.Stop()
			deadline = timer.C
		} else {
			deadline = nil
		}
		select {
		case p := <-c.in:
			return copy(b, p), nil
		case <-c.readNotify:
		case <-deadline:
			return 0, os.ErrDeadlineExceeded
		case <-c.die:
			return 0, io.ErrClosedPipe
		}
	}
}

func (c *conn) Write(b []byte) (int, error) {
	p := make([]byte, len(b))
	copy(p, b)
	var deadline <-chan time.Time
	for {
		if t, ok := c.writeDeadline.Load().(time.Time); ok && !t.IsZero() {
			timer := time.NewTimer(time.Until(t))
			defer timer.Stop()
			deadline = timer.C
		} else {
			deadline = nil
		}
		select {
		case c.out <- p:
			return len(b), nil
		case <-c.writeNotify:
		case <-deadline:
			return 0, os.ErrDeadlineExceeded
		case <-c.die:
			return 0, io.ErrClosedPipe
		}
	}
}

func (c *conn) LocalAddr() net.Addr {
	return nil
}

func (c *conn) RemoteAddr() net.Addr {
	return nil
}

func (c *conn) SetReadDeadline(t time.Time) error {
	c.readDeadline.Store(t)
	util.AsyncNotify(c.readNotify)
	return nil
}

func (c *conn) SetWriteDeadline(t time.Time) error {
	c.writeDeadline.Store(t)
	util.AsyncNotify(c.writeNotify)
	return nil
}

func (c *conn) SetDeadline(t time.Time) error {
	if err := c.SetReadDeadline(t); err != nil {
		return err
	}
	return c.SetWriteDeadline(t)
}

func (c *conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.die)
	})
	return nil
}
