package session

import (
	"math"
	"time"

	"github.com/sensei2412/eksamen/protocol"

	"github.com/sirupsen/logrus"
)

const (
	// Sender window size used when the caller does not pick one.
	DefaultWindow = 3
	// Receive capacity advertised by the server in its SYN-ACK.
	DefaultReceiverWindow = 25
	// Retransmission and handshake deadline.
	DefaultTimeout = 400 * time.Millisecond
	// Payload bytes per DATA frame.
	DefaultChunkSize = protocol.MaxPayloadSize
)

// DropFunc decides whether an inbound DATA frame should be discarded before
// the delivery logic sees it. It is a fault-injection seam for tests and the
// server's --discard flag, not part of the protocol.
type DropFunc func(seq uint16) bool

// DropOnce returns a DropFunc that discards the frame with the given
// sequence number exactly once.
func DropOnce(seq uint16) DropFunc {
	fired := false
	return func(s uint16) bool {
		if fired || s != seq {
			return false
		}
		fired = true
		return true
	}
}

type Config struct {
	// Sender window size (client role).
	Window int
	// Advertised receive capacity (server role).
	ReceiverWindow int
	// Deadline for retransmission rounds, handshake and teardown waits.
	Timeout time.Duration
	// Payload bytes per chunk, capped at protocol.MaxPayloadSize.
	ChunkSize int

	// Optional logger for protocol trace events
	Logger *logrus.Logger

	// Optional fault-injection hook, nil in production.
	Drop DropFunc
}

func DefaultConfig() Config {
	return Config{
		Window:         DefaultWindow,
		ReceiverWindow: DefaultReceiverWindow,
		Timeout:        DefaultTimeout,
		ChunkSize:      DefaultChunkSize,
	}
}

func sanitizeConfig(cfg Config) Config {
	if cfg.Window < 1 {
		cfg.Window = DefaultWindow
	}
	if cfg.Window > math.MaxUint16 {
		cfg.Window = math.MaxUint16
	}
	if cfg.ReceiverWindow < 1 {
		cfg.ReceiverWindow = DefaultReceiverWindow
	}
	if cfg.ReceiverWindow > math.MaxUint16 {
		cfg.ReceiverWindow = math.MaxUint16
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ChunkSize < 1 || cfg.ChunkSize > protocol.MaxPayloadSize {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Logger == nil {
		cfg.Logger = defaultLogger
	}
	return cfg
}
