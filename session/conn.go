package session

import (
	"net"
	"time"
)

// PeerConn adapts an unconnected UDP socket into a net.Conn locked to a
// single peer: the source of the first datagram. Datagrams from any other
// address are dropped. One socket serves exactly one peer for the Session's
// lifetime; there is no multiplexing.
type PeerConn struct {
	conn  *net.UDPConn
	raddr *net.UDPAddr
}

var _ net.Conn = (*PeerConn)(nil)

// ListenPeer binds laddr and waits for the first peer to show up on Read.
func ListenPeer(network, laddr string) (*PeerConn, error) {
	addr, err := net.ResolveUDPAddr(network, laddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP(network, addr)
	if err != nil {
		return nil, err
	}
	return &PeerConn{conn: conn}, nil
}

func (c *PeerConn) Read(b []byte) (int, error) {
	for {
		n, raddr, err := c.conn.ReadFromUDP(b)
		if err != nil {
			return 0, err
		}
		if c.raddr == nil {
			c.raddr = raddr
		} else if raddr.String() != c.raddr.String() {
			continue
		}
		return n, nil
	}
}

func (c *PeerConn) Write(b []byte) (int, error) {
	if c.raddr == nil {
		return 0, ErrNoPeer
	}
	return c.conn.WriteToUDP(b, c.raddr)
}

func (c *PeerConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *PeerConn) RemoteAddr() net.Addr {
	if c.raddr == nil {
		return nil
	}
	return c.raddr
}

func (c *PeerConn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

func (c *PeerConn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *PeerConn) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}

func (c *PeerConn) Close() error {
	return c.conn.Close()
}
