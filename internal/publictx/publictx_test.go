package publictx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/internal/wire"
)

func TestSourceNextDecodesFramedPair(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	var digest [32]byte
	digest[0] = 0xAB

	events, err := json.Marshal([]eventMessage{
		{Type: "0x1::pool::Swap", Sender: "0x01", Bytes: base64.StdEncoding.EncodeToString([]byte{1, 2, 3})},
	})
	if err != nil {
		t.Fatalf("marshal events: %v", err)
	}

	go func() {
		_ = wire.WritePublicTxFrame(server, wire.PublicTxFrame{EffectsBytes: digest[:], EventsJSON: events})
	}()

	s := &Source{network: "unix", address: "unused", log: chainlog.Setup(chainlog.LevelError)}
	s.conn = client

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	gotDigest, gotEvents, err := s.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if gotDigest != digest {
		t.Errorf("digest = %x, want %x", gotDigest, digest)
	}
	if len(gotEvents) != 1 || gotEvents[0].Type != "0x1::pool::Swap" {
		t.Errorf("events = %+v", gotEvents)
	}
}

func TestDecodeDigestRejectsShortEffects(t *testing.T) {
	if _, err := decodeDigest([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short effects bytes")
	}
}
