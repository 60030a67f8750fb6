package session

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sensei2412/eksamen/protocol"
	uerrors "github.com/sensei2412/eksamen/util/errors"

	"github.com/sirupsen/logrus"
)

// Send transmits the chunks with Go-Back-N ARQ and blocks until every chunk
// has been acknowledged. A single retransmission timer covers the whole
// window: each wait for an ACK starts a fresh deadline, and on expiry every
// unacknowledged frame is retransmitted in order. Loss, duplication and
// reordering are absorbed here and never surface as errors; only socket
// failures do, with the progress made so far in Stats.
func (s *Session) Send(chunks [][]byte) (Stats, error) {
	if s.state != StateEstablished {
		return Stats{}, ErrNotEstablished
	}
	// Sequence numbers are not reused within a transfer; the 16-bit space is
	// a hard capacity limit, not a wrap point.
	if len(chunks) > math.MaxUint16 {
		return Stats{}, ErrTooManyChunks
	}

	// Encode every DATA frame once up front; retransmissions reuse the
	// buffers.
	packets := make([][]byte, len(chunks))
	var total int64
	for i, chunk := range chunks {
		b, err := protocol.Encode(protocol.Frame{
			Kind:    protocol.Data,
			Seq:     uint16(i + 1),
			Window:  s.window,
			Payload: chunk,
		})
		if err != nil {
			return Stats{}, err
		}
		packets[i] = b
		total += int64(len(chunk))
	}

	s.log.Info("Data Transfer:")
	start := time.Now()
	base, next := 1, 1
	for base <= len(packets) {
		// Fill the window.
		for next < base+int(s.window) && next <= len(packets) {
			if _, err := s.conn.Write(packets[next-1]); err != nil {
				return s.stats(base, chunks, start), err
			}
			s.log.WithFields(logrus.Fields{
				"seq":    next,
				"window": windowExtent(base, next+1),
			}).Info("Packet is sent")
			next++
		}

		// Await one ACK; the deadline is measured from here, not from the
		// last packet sent.
		f, err := s.readFrame(time.Now().Add(s.cfg.Timeout))
		switch {
		case err == nil:
			if f.Kind != protocol.Ack {
				continue
			}
			s.log.WithField("ack", f.Ack).Info("ACK is received")
			// Cumulative; stale ACKs below base have no effect.
			if a := int(f.Ack) + 1; a > base {
				base = a
			}
		case uerrors.IsDeadlineError(err):
			s.log.Warn("RTO occurred")
			for i := base; i < next; i++ {
				if _, err := s.conn.Write(packets[i-1]); err != nil {
					return s.stats(base, chunks, start), err
				}
				s.log.WithFields(logrus.Fields{
					"seq":    i,
					"window": windowExtent(base, next),
				}).Info("Packet is retransmitted")
			}
		default:
			return s.stats(base, chunks, start), err
		}
	}

	s.log.Info("DATA Finished")
	return Stats{Bytes: total, Elapsed: time.Since(start)}, nil
}

// stats reports the bytes acknowledged so far, for partial progress on a
// fatal socket error.
func (s *Session) stats(base int, chunks [][]byte, start time.Time) Stats {
	var acked int64
	for i := 0; i < base-1 && i < len(chunks); i++ {
		acked += int64(len(chunks[i]))
	}
	return Stats{Bytes: acked, Elapsed: time.Since(start)}
}

// windowExtent renders the outstanding sequence numbers [base, next) the way
// the trace log presents the sliding window.
func windowExtent(base, next int) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := base; i < next; i++ {
		if i > base {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(i))
	}
	sb.WriteByte('}')
	return sb.String()
}
