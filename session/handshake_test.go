package session

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/sensei2412/eksamen/protocol"
	"github.com/sensei2412/eksamen/util/mocks"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var testLogger = &logrus.Logger{
	Out:       os.Stderr,
	Level:     logrus.WarnLevel,
	Formatter: &logrus.TextFormatter{},
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Timeout = 100 * time.Millisecond
	cfg.Logger = testLogger
	return cfg
}

func testPair(ccfg, scfg Config) (*Session, *Session, net.Conn, net.Conn) {
	c1, c2 := mocks.Conn()
	return Client(c1, ccfg), Server(c2, scfg), c1, c2
}

func TestHandshake(t *testing.T) {
	require := require.New(t)
	client, server, _, _ := testPair(testConfig(), testConfig())

	accepted := make(chan error, 1)
	go func() {
		_, err := server.Accept()
		accepted <- err
	}()

	window, err := client.Open()
	require.Nil(err)
	require.Equal(uint16(DefaultWindow), window)
	require.Nil(<-accepted)

	require.Equal(StateEstablished, client.State())
	require.Equal(StateEstablished, server.State())
	require.Equal(uint16(DefaultReceiverWindow), server.Window())
}

func TestHandshakeNegotiatedWindow(t *testing.T) {
	require := require.New(t)
	ccfg := testConfig()
	ccfg.Window = 40
	scfg := testConfig()
	scfg.ReceiverWindow = 25
	client, server, _, _ := testPair(ccfg, scfg)

	go server.Accept() //nolint:errcheck

	window, err := client.Open()
	require.Nil(err)
	require.Equal(uint16(25), window)
}

func TestHandshakeTimeout(t *testing.T) {
	require := require.New(t)
	client, _, _, _ := testPair(testConfig(), testConfig())

	// Nobody answers the SYN.
	_, err := client.Open()
	require.Equal(ErrHandshakeTimeout, err)
}

func TestHandshakeClientProtocolError(t *testing.T) {
	require := require.New(t)
	client, _, _, c2 := testPair(testConfig(), testConfig())

	// A peer that answers the SYN with a bare ACK instead of SYN-ACK.
	go func() {
		buf := make([]byte, protocol.MaxPacketSize)
		if _, err := c2.Read(buf); err != nil {
			return
		}
		b, _ := protocol.Encode(protocol.Frame{Kind: protocol.Ack})
		c2.Write(b) //nolint:errcheck
	}()

	_, err := client.Open()
	require.ErrorIs(err, ErrHandshake)
}

func TestHandshakeServerProtocolError(t *testing.T) {
	require := require.New(t)
	_, server, c1, _ := testPair(testConfig(), testConfig())

	b, err := protocol.Encode(protocol.Frame{Kind: protocol.Data, Seq: 1})
	require.Nil(err)
	_, err = c1.Write(b)
	require.Nil(err)

	_, err = server.Accept()
	require.ErrorIs(err, ErrHandshake)
}
