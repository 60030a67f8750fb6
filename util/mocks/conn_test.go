package mocks

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnBoundaries(t *testing.T) {
	require := require.New(t)
	c1, c2 := Conn()

	_, err := c1.Write([]byte("first"))
	require.Nil(err)
	_, err = c1.Write([]byte("second"))
	require.Nil(err)

	buf := make([]byte, 64)
	n, err := c2.Read(buf)
	require.Nil(err)
	require.Equal("first", string(buf[:n]))

	n, err = c2.Read(buf)
	require.Nil(err)
	require.Equal("second", string(buf[:n]))
}

func TestConnReadDeadline(t *testing.T) {
	require := require.New(t)
	_, c2 := Conn()

	require.Nil(c2.SetReadDeadline(time.Now().Add(50 * time.Millisecond)))
	_, err := c2.Read(make([]byte, 64))
	require.Equal(os.ErrDeadlineExceeded, err)
}

func TestConnClose(t *testing.T) {
	require := require.New(t)
	c1, _ := Conn()

	done := make(chan error, 1)
	go func() {
		_, err := c1.Read(make([]byte, 64))
		done <- err
	}()
	require.Nil(c1.Close())
	require.Equal(io.ErrClosedPipe, <-done)
}
