package session

import "fmt"

// State tracks where a Session is in its connection lifecycle.
type State uint8

const (
	StateIdle State = iota
	StateSynSent
	StateSynRcvd
	StateEstablished
	StateFinSent
	StateFinRcvd
	StateClosed
)

func (st State) String() string {
	switch st {
	case StateIdle:
		return "IDLE"
	case StateSynSent:
		return "SYN_SENT"
	case StateSynRcvd:
		return "SYN_RCVD"
	case StateEstablished:
		return "ESTABLISHED"
	case StateFinSent:
		return "FIN_SENT"
	case StateFinRcvd:
		return "FIN_RCVD"
	case StateClosed:
		return "CLOSED"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(st))
}
