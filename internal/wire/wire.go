// Package wire implements the length-prefixed framed socket codecs
// spec.md §6 "Local sockets" describes: the public-tx effects feed
// (big-endian u32 length prefixes) and the simulator's cache-update
// socket (little-endian u32 length prefix). Framing only — decoding the
// chain's own TransactionEffects BCS bytes is an external collaborator
// concern (spec.md §1); callers receive the raw bytes alongside the
// JSON-decoded event/object payloads this package does own.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/luxfi/sui-arb/model"
)

const maxFrameBytes = 64 << 20 // 64 MiB: a defensive ceiling against a corrupt length prefix wedging the reader on a giant allocation

// readFrame reads one order-prefixed length frame from r.
func readFrame(r io.Reader, order binary.ByteOrder) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := order.Uint32(lenBuf[:])
	if n > maxFrameBytes {
		return nil, fmt.Errorf("wire: frame length %d exceeds max %d", n, maxFrameBytes)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("wire: read frame body: %w", err)
	}
	return buf, nil
}

// writeFrame writes one order-prefixed length frame to w.
func writeFrame(w io.Writer, order binary.ByteOrder, b []byte) error {
	var lenBuf [4]byte
	order.PutUint32(lenBuf[:], uint32(len(b)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// PublicTxFrame is one (tx_effects, events) pair off the public-tx
// socket (spec.md §6): "u32 BE length | bytes of serialized
// TransactionEffects | u32 BE length | bytes of JSON-encoded events[]".
type PublicTxFrame struct {
	EffectsBytes []byte // opaque BCS bytes; decoded by the chain client, not this package
	EventsJSON   []byte // JSON array, decoded by ReadPublicTxFrame's caller via json.Unmarshal
}

// ReadPublicTxFrame reads one frame pair in big-endian length-prefix
// form off r.
func ReadPublicTxFrame(r io.Reader) (PublicTxFrame, error) {
	effects, err := readFrame(r, binary.BigEndian)
	if err != nil {
		return PublicTxFrame{}, fmt.Errorf("wire: read effects frame: %w", err)
	}
	events, err := readFrame(r, binary.BigEndian)
	if err != nil {
		return PublicTxFrame{}, fmt.Errorf("wire: read events frame: %w", err)
	}
	return PublicTxFrame{EffectsBytes: effects, EventsJSON: events}, nil
}

// WritePublicTxFrame writes f to w, for test fixtures and the
// companion tooling that feeds the public-tx socket in development.
func WritePublicTxFrame(w io.Writer, f PublicTxFrame) error {
	if err := writeFrame(w, binary.BigEndian, f.EffectsBytes); err != nil {
		return fmt.Errorf("wire: write effects frame: %w", err)
	}
	return writeFrame(w, binary.BigEndian, f.EventsJSON)
}

// ObjectUpdate is one entry of the simulator update socket's
// (ObjectID, Object)[] payload.
type ObjectUpdate struct {
	ID     model.ObjectID `json:"id"`
	Object model.Object   `json:"object"`
}

// ReadUpdateFrame reads one little-endian length-prefixed frame off r
// and JSON-decodes it into a slice of ObjectUpdate (spec.md §6: "u32 LE
// length | bytes of serialized (ObjectID, Object)[]").
func ReadUpdateFrame(r io.Reader) ([]ObjectUpdate, error) {
	buf, err := readFrame(r, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("wire: read update frame: %w", err)
	}
	var updates []ObjectUpdate
	if err := json.Unmarshal(buf, &updates); err != nil {
		return nil, fmt.Errorf("wire: decode update frame: %w", err)
	}
	return updates, nil
}

// WriteUpdateFrame JSON-encodes updates and writes it to w as one
// little-endian length-prefixed frame.
func WriteUpdateFrame(w io.Writer, updates []ObjectUpdate) error {
	buf, err := json.Marshal(updates)
	if err != nil {
		return fmt.Errorf("wire: encode update frame: %w", err)
	}
	return writeFrame(w, binary.LittleEndian, buf)
}
