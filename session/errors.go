package session

import "errors"

var (
	// No SYN-ACK arrived within the handshake deadline. Single attempt, no
	// retry.
	ErrHandshakeTimeout = errors.New("connection failed: no SYN-ACK received")
	// The peer answered the handshake with the wrong frame kind.
	ErrHandshake = errors.New("unexpected handshake response")
	// Data-phase operation attempted before the handshake completed.
	ErrNotEstablished = errors.New("session not established")
	// The transfer needs more chunks than the 16-bit sequence space holds.
	ErrTooManyChunks = errors.New("transfer exceeds sequence number space")
	// Write attempted before any datagram revealed the peer's address.
	ErrNoPeer = errors.New("no peer address recorded")
)
