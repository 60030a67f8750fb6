package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrShortHeader     = errors.New("drtp: packet shorter than header")
	ErrPayloadTooLarge = errors.New("drtp: payload exceeds maximum size")
)

// Kind is the role of a frame, derived once from the header flag bits so
// downstream logic can switch on a closed set instead of re-testing bitmasks.
type Kind uint8

const (
	Data Kind = iota
	Syn
	SynAck
	Ack
	Fin
	FinAck
)

func (k Kind) String() string {
	switch k {
	case Data:
		return "DATA"
	case Syn:
		return "SYN"
	case SynAck:
		return "SYN-ACK"
	case Ack:
		return "ACK"
	case Fin:
		return "FIN"
	case FinAck:
		return "FIN-ACK"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
}

type Frame struct {
	Kind    Kind
	Seq     uint16
	Ack     uint16
	Window  uint16
	Payload []byte
}

func (f Frame) String() string {
	return fmt.Sprintf("%s(Seq: %d, Ack: %d, Window: %d, Payload: %d)",
		f.Kind, f.Seq, f.Ack, f.Window, len(f.Payload))
}

// Flags returns the flag bits corresponding to the frame's kind.
func (f Frame) Flags() uint16 {
	switch f.Kind {
	case Syn:
		return FlagSYN
	case SynAck:
		return FlagSYN | FlagACK
	case Ack:
		return FlagACK
	case Fin:
		return FlagFIN
	case FinAck:
		return FlagFIN | FlagACK
	}
	return 0
}

func kindOf(flags uint16) Kind {
	switch {
	case flags&FlagSYN != 0 && flags&FlagACK != 0:
		return SynAck
	case flags&FlagSYN != 0:
		return Syn
	case flags&FlagFIN != 0 && flags&FlagACK != 0:
		return FinAck
	case flags&FlagFIN != 0:
		return Fin
	case flags&FlagACK != 0:
		return Ack
	}
	return Data
}

// Encode serializes the frame into a fresh buffer of exactly
// HeaderSize+len(Payload) bytes.
func Encode(f Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}
	hdr := NewHeader(f.Seq, f.Ack, f.Flags(), f.Window)
	buf := make([]byte, HeaderSize+len(f.Payload))
	n := copy(buf, hdr[:])
	copy(buf[n:], f.Payload)
	return buf, nil
}

// Decode parses a received datagram. The returned payload aliases b; the
// caller must copy it if b is reused.
func Decode(b []byte) (Frame, error) {
	if len(b) < HeaderSize {
		return Frame{}, ErrShortHeader
	}
	var hdr Header
	n := copy(hdr[:], b)
	return Frame{
		Kind:    kindOf(hdr.Flags()),
		Seq:     hdr.Seq(),
		Ack:     hdr.Ack(),
		Window:  hdr.Window(),
		Payload: b[n:],
	}, nil
}
