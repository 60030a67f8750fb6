package session

import (
	"testing"
	"time"

	"github.com/sensei2412/eksamen/protocol"
	"github.com/sensei2412/eksamen/util/mocks"

	"github.com/stretchr/testify/require"
)

// handshakeAsClient completes the three-way handshake from the fake peer's
// side.
func handshakeAsClient(t *testing.T, peer *fakePeer) {
	t.Helper()
	peer.write(protocol.Frame{Kind: protocol.Syn})
	f := peer.read()
	require.Equal(t, protocol.SynAck, f.Kind)
	peer.write(protocol.Frame{Kind: protocol.Ack, Ack: f.Seq + 1})
}

func TestReceiverInOrderDelivery(t *testing.T) {
	require := require.New(t)
	c1, c2 := mocks.Conn()
	server := Server(c2, testConfig())
	peer := newFakePeer(t, c1)

	result := runServer(server)
	handshakeAsClient(t, peer)

	for seq := uint16(1); seq <= 3; seq++ {
		peer.write(protocol.Frame{Kind: protocol.Data, Seq: seq, Payload: []byte{byte(seq)}})
		f := peer.read()
		require.Equal(protocol.Ack, f.Kind)
		require.Equal(seq, f.Ack)
		require.Equal(uint16(DefaultReceiverWindow), f.Window)
	}

	peer.write(protocol.Frame{Kind: protocol.Fin})
	require.Equal(protocol.FinAck, peer.read().Kind)

	res := <-result
	require.Nil(res.err)
	require.Equal([]byte{1, 2, 3}, res.data)
}

func TestReceiverDiscardsOutOfOrder(t *testing.T) {
	require := require.New(t)
	c1, c2 := mocks.Conn()
	server := Server(c2, testConfig())
	peer := newFakePeer(t, c1)

	result := runServer(server)
	handshakeAsClient(t, peer)

	// A future frame gets no acknowledgment at all.
	peer.write(protocol.Frame{Kind: protocol.Data, Seq: 2, Payload: []byte{2}})
	peer.expectSilence(100 * time.Millisecond)

	// The expected frame is accepted as usual.
	peer.write(protocol.Frame{Kind: protocol.Data, Seq: 1, Payload: []byte{1}})
	require.Equal(uint16(1), peer.read().Ack)

	// A duplicate of a delivered frame is discarded silently too.
	peer.write(protocol.Frame{Kind: protocol.Data, Seq: 1, Payload: []byte{1}})
	peer.expectSilence(100 * time.Millisecond)

	// The discarded future frame must be retransmitted to be delivered.
	peer.write(protocol.Frame{Kind: protocol.Data, Seq: 2, Payload: []byte{2}})
	require.Equal(uint16(2), peer.read().Ack)

	peer.write(protocol.Frame{Kind: protocol.Fin})
	require.Equal(protocol.FinAck, peer.read().Kind)

	res := <-result
	require.Nil(res.err)
	require.Equal([]byte{1, 2}, res.data)
}

func TestReceiverFinMidTransfer(t *testing.T) {
	require := require.New(t)
	c1, c2 := mocks.Conn()
	server := Server(c2, testConfig())
	peer := newFakePeer(t, c1)

	result := runServer(server)
	handshakeAsClient(t, peer)

	// Three of five chunks arrive, then the peer gives up.
	for seq := uint16(1); seq <= 3; seq++ {
		peer.write(protocol.Frame{Kind: protocol.Data, Seq: seq, Payload: []byte{byte(seq)}})
		require.Equal(seq, peer.read().Ack)
	}
	peer.write(protocol.Frame{Kind: protocol.Fin})
	require.Equal(protocol.FinAck, peer.read().Kind)

	res := <-result
	require.Nil(res.err)
	require.Equal([]byte{1, 2, 3}, res.data)
	require.Equal(int64(3), res.stats.Bytes)
	require.Equal(StateClosed, server.State())
}

func TestReceiverDropOnceFiresOnce(t *testing.T) {
	require := require.New(t)
	cfg := testConfig()
	cfg.Drop = DropOnce(1)
	c1, c2 := mocks.Conn()
	server := Server(c2, cfg)
	peer := newFakePeer(t, c1)

	result := runServer(server)
	handshakeAsClient(t, peer)

	// First delivery of seq 1 is swallowed by the hook.
	peer.write(protocol.Frame{Kind: protocol.Data, Seq: 1, Payload: []byte{1}})
	peer.expectSilence(100 * time.Millisecond)

	// The retransmission passes; the hook is single-shot.
	peer.write(protocol.Frame{Kind: protocol.Data, Seq: 1, Payload: []byte{1}})
	require.Equal(uint16(1), peer.read().Ack)

	peer.write(protocol.Frame{Kind: protocol.Fin})
	require.Equal(protocol.FinAck, peer.read().Kind)
	require.Nil((<-result).err)
}
