// Package netem wraps a net.Conn and disturbs inbound datagrams to emulate
// an unreliable link: fixed delay, loss every Nth packet, duplication every
// Nth packet, and reordering every Nth packet. Packets are never split or
// merged; the unit of emulation is the whole datagram. To disturb the other
// direction, wrap the opposite endpoint too.
package netem

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sensei2412/eksamen/util"
	uerrors "github.com/sensei2412/eksamen/util/errors"

	"github.com/sirupsen/logrus"
)

const (
	minBufferSize = 512
	minBacklog    = 1
)

var ErrNetemClosed = errors.New("netem closed")

type packet struct {
	buf []byte
	n   int
}

type Config struct {
	// The size of the internal per-datagram buffers
	BufferSize int
	// Number of packets that can be kept in queue
	Backlog int

	// Fixed delay applied to every inbound datagram.
	// Zero value means no added latency.
	Delay time.Duration
	// Packet at every nth is discarded to emulate packet loss.
	// Zero value means no emulation of packet loss.
	LossNth int
	// Packet at every nth is delivered twice to emulate packet duplication.
	// Zero value means no emulation of packet duplication.
	DuplicateNth int
	// Packet at every nth is held back and delivered after its successor
	// to emulate packet reordering. Zero value means no reordering.
	ReorderNth int
}

func DefaultConfig() Config {
	return Config{
		BufferSize: 4096,
		Backlog:    16,
	}
}

type Netem struct {
	net.Conn

	delay        int64
	lossNth      uint32
	duplicateNth uint32
	reorderNth   uint32
	counter      uint32

	pool *util.BufferPool

	readQueue    chan packet
	readNotify   chan struct{}
	readDeadline atomic.Value
	readError    atomic.Value

	die chan struct{}

	wg sync.WaitGroup
	mu sync.Mutex

	closed atomic.Bool
}

func New(conn net.Conn, cfg Config) *Netem {
	if cfg.BufferSize < minBufferSize {
		cfg.BufferSize = minBufferSize
	}
	if cfg.Backlog < minBacklog {
		cfg.Backlog = minBacklog
	}
	ne := &Netem{
		Conn:       conn,
		pool:       util.NewBufferPool(cfg.BufferSize, cfg.Backlog),
		readQueue:  make(chan packet, cfg.Backlog),
		readNotify: make(chan struct{}),
		die:        make(chan struct{}),
	}
	ne.Update(cfg)
	ne.wg.Add(1)
	go ne.readRoutine()
	return ne
}

func (ne *Netem) Read(b []byte) (int, error) {
	if ne.closed.Load() {
		return 0, ErrNetemClosed
	}
	if len(b) <= 0 {
		return 0, io.ErrShortBuffer
	}
	var deadline <-chan time.Time
	for {
		if err, ok := ne.readError.Load().(error); ok {
			return 0, err
		}
		if t, ok := ne.readDeadline.Load().(time.Time); ok && !t.IsZero() {
			timer := time.NewTimer(time.Until(t))
			defer timer.Stop()
			deadline = timer.C
		} else {
			deadline = nil
		}
		select {
		case p := <-ne.readQueue:
			n := copy(b, p.buf[:p.n])
			ne.pool.Put(p.buf)
			return n, nil
		case <-ne.readNotify:
		case <-deadline:
			return 0, uerrors.ErrTimeout
		case <-ne.die:
			return 0, io.EOF
		}
	}
}

func (ne *Netem) SetReadDeadline(t time.Time) error {
	ne.readDeadline.Store(t)
	util.AsyncNotify(ne.readNotify)
	return nil
}

func (ne *Netem) SetDeadline(t time.Time) error {
	if err := ne.SetReadDeadline(t); err != nil {
		return err
	}
	return ne.Conn.SetWriteDeadline(t)
}

// Update the config for network emulation.
// May take effect on the next read operations.
func (ne *Netem) Update(cfg Config) {
	atomic.StoreInt64(&ne.delay, int64(cfg.Delay))
	atomic.StoreUint32(&ne.lossNth, uint32(cfg.LossNth))
	atomic.StoreUint32(&ne.duplicateNth, uint32(cfg.DuplicateNth))
	atomic.StoreUint32(&ne.reorderNth, uint32(cfg.ReorderNth))
	atomic.StoreUint32(&ne.counter, 0)
}

func (ne *Netem) Reset() {
	ne.Update(Config{})
}

func (ne *Netem) Close() error {
	ne.mu.Lock()
	defer ne.mu.Unlock()
	if ne.closed.Load() {
		return ErrNetemClosed
	}
	close(ne.die)
	if err := ne.Conn.Close(); err != nil {
		return err
	}
	ne.closed.Store(true)
	ne.wg.Wait()
	return nil
}

func (ne *Netem) readRoutine() {
	defer func() {
		log.Debug("Read routine done")
		ne.wg.Done()
	}()
	var held *packet
	for {
		buf := ne.pool.Get()
		n, err := ne.Conn.Read(buf)
		if err != nil {
			ne.pool.Put(buf)
			ne.readError.Store(err)
			util.AsyncNotify(ne.readNotify)
			return
		}
		p := packet{buf, n}

		c := atomic.AddUint32(&ne.counter, 1)
		loss := atomic.LoadUint32(&ne.lossNth)
		dupe := atomic.LoadUint32(&ne.duplicateNth)
		reorder := atomic.LoadUint32(&ne.reorderNth)

		logFields := logrus.Fields{"counter": c, "size": n}

		if d := atomic.LoadInt64(&ne.delay); d > 0 {
			time.Sleep(time.Duration(d))
		}

		if loss > 0 && c%loss == 0 {
			log.WithFields(logFields).Debug("Simulating packet loss")
			ne.pool.Put(buf)
			continue
		}

		if reorder > 0 && c%reorder == 0 && held == nil {
			log.WithFields(logFields).Debug("Simulating packet reordering")
			held = &p
			continue
		}

		// Copy before delivery; the consumer returns p.buf to the pool.
		var dup *packet
		if dupe > 0 && c%dupe == 0 {
			log.WithFields(logFields).Debug("Simulating packet duplication")
			q := packet{ne.pool.Get(), n}
			copy(q.buf, p.buf[:n])
			dup = &q
		}

		if !ne.deliver(p) {
			return
		}
		log.WithFields(logFields).Debugf("Delivered %d bytes", n)

		if dup != nil {
			if !ne.deliver(*dup) {
				return
			}
		}

		if held != nil {
			if !ne.deliver(*held) {
				return
			}
			held = nil
		}
	}
}

func (ne *Netem) deliver(p packet) bool {
	select {
	case ne.readQueue <- p:
		return true
	case <-ne.die:
		return false
	}
}
