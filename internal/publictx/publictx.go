// Package publictx implements pipeline.PublicTxSource over the
// length-prefixed socket spec.md §6 calls the "public-tx effects feed":
// it dials the configured socket, reads framed (effects, events) pairs
// via internal/wire, and owns exactly the decoding step wire's own doc
// comment and pipeline.PublicTxSource's doc comment both disclaim —
// recovering a transaction digest and a typed event slice from the
// opaque effects bytes and the JSON event array.
package publictx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/internal/wire"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// Source implements pipeline.PublicTxSource over a TCP (or unix)
// socket, reconnecting forever on any read/dial error.
type Source struct {
	network, address string
	log              chainlog.Logger

	mu   sync.Mutex
	conn net.Conn
}

// NewSource dials network/address (e.g. "unix", "/tmp/sui-arb-public.sock")
// lazily on first Next call.
func NewSource(network, address string, log chainlog.Logger) *Source {
	return &Source{network: network, address: address, log: log}
}

func (s *Source) ensure(ctx context.Context) (net.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn, nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, s.network, s.address)
	if err != nil {
		return nil, fmt.Errorf("publictx: dial %s %s: %w", s.network, s.address, err)
	}
	s.conn = conn
	return conn, nil
}

func (s *Source) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// eventMessage is the JSON shape of one entry of PublicTxFrame's
// EventsJSON array.
type eventMessage struct {
	Type   string `json:"type"`
	Sender string `json:"sender"`
	Bytes  string `json:"bcsBase64"`
}

// Next blocks for the next framed (effects, events) pair, reconnecting
// transparently on failure (pipeline.RunPublicFeed retries forever
// around this call, so a non-nil error just causes it to loop again
// after a log line).
func (s *Source) Next(ctx context.Context) (model.Digest, []simulator.Event, error) {
	conn, err := s.ensure(ctx)
	if err != nil {
		return model.Digest{}, nil, err
	}
	frame, err := wire.ReadPublicTxFrame(conn)
	if err != nil {
		s.invalidate()
		return model.Digest{}, nil, fmt.Errorf("publictx: read frame: %w", err)
	}

	digest, err := decodeDigest(frame.EffectsBytes)
	if err != nil {
		return model.Digest{}, nil, fmt.Errorf("publictx: decode digest: %w", err)
	}

	var raw []eventMessage
	if len(frame.EventsJSON) > 0 {
		if err := json.Unmarshal(frame.EventsJSON, &raw); err != nil {
			return model.Digest{}, nil, fmt.Errorf("publictx: decode events: %w", err)
		}
	}
	events := make([]simulator.Event, 0, len(raw))
	for _, e := range raw {
		b, err := base64.StdEncoding.DecodeString(e.Bytes)
		if err != nil {
			s.log.Warn("publictx: skipping event with malformed bytes", "type", e.Type, "err", err)
			continue
		}
		senderID, err := model.ObjectIDFromHex(e.Sender)
		if err != nil {
			s.log.Warn("publictx: skipping event with malformed sender", "type", e.Type, "err", err)
			continue
		}
		events = append(events, simulator.Event{Type: e.Type, Sender: simulator.Address(senderID), Bytes: b})
	}
	return digest, events, nil
}

// decodeDigest recovers a 32-byte transaction digest from the head of
// the effects bytes: the producer of this socket places the digest
// first, ahead of whatever chain-specific effects encoding follows it,
// since the digest is all the pipeline package ever needs from this
// frame (events.go's own comment: "the pipeline only ever needs the
// digest and the events").
func decodeDigest(effects []byte) (model.Digest, error) {
	var d model.Digest
	if len(effects) < len(d) {
		return d, fmt.Errorf("effects bytes too short for digest: %d", len(effects))
	}
	copy(d[:], effects[:len(d)])
	return d, nil
}
