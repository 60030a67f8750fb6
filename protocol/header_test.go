package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	require := require.New(t)
	seq := uint16(42)
	ack := uint16(41)
	flags := FlagSYN | FlagACK
	window := uint16(25)
	hdr := NewHeader(seq, ack, flags, window)
	require.Equal(seq, hdr.Seq())
	require.Equal(ack, hdr.Ack())
	require.Equal(flags, hdr.Flags())
	require.Equal(window, hdr.Window())
}

func TestHeaderByteOrder(t *testing.T) {
	require := require.New(t)
	hdr := NewHeader(0x0102, 0x0304, 0x0506, 0x0708)
	require.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, hdr[:])
}
