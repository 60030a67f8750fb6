package protocol

import "encoding/binary"

type Header [HeaderSize]byte

func NewHeader(seq, ack, flags, window uint16) Header {
	var hdr Header
	binary.BigEndian.PutUint16(hdr[:], seq)
	binary.BigEndian.PutUint16(hdr[2:], ack)
	binary.BigEndian.PutUint16(hdr[4:], flags)
	binary.BigEndian.PutUint16(hdr[6:], window)
	return hdr
}

func (hdr Header) Seq() uint16 {
	return binary.BigEndian.Uint16(hdr[:])
}

func (hdr Header) Ack() uint16 {
	return binary.BigEndian.Uint16(hdr[2:])
}

func (hdr Header) Flags() uint16 {
	return binary.BigEndian.Uint16(hdr[4:])
}

func (hdr Header) Window() uint16 {
	return binary.BigEndian.Uint16(hdr[6:])
}
