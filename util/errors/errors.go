// Package errors carries shared error values and the deadline classification
// used by the retransmission logic.
package errors

import (
	"errors"
	"net"
	"os"
)

var ErrTimeout = errors.New("timeout")

// IsDeadlineError reports whether err is the expiry of a read deadline, as
// opposed to a real socket failure. Covers real UDP sockets, in-memory test
// conns, and our own ErrTimeout.
func IsDeadlineError(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
