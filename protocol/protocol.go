// Package protocol implements the DRTP wire format: a fixed 8-byte header
// followed by up to MaxPayloadSize bytes of payload, all fields in network
// byte order.
package protocol

const (
	// u16 Sequence + u16 Acknowledgment + u16 Flags + u16 Window
	HeaderSize = 8
	// Payload size limit keeps the whole datagram within 1000 bytes.
	MaxPayloadSize = 992
	MaxPacketSize  = HeaderSize + MaxPayloadSize
)

const (
	FlagFIN uint16 = 1 << iota
	FlagSYN
	// Reserved, never set on the wire.
	FlagRST
	FlagACK
)
