// Package movedecode decodes the primitive-field subset of a BCS-
// encoded Move struct value that the protocol adapters need: the
// on-chain liquidity/reserve counters used to keep a Pool's
// quoted liquidity figure current (spec.md §4.C invariant 3).
//
// It is intentionally narrow: full recursive BCS decoding (nested
// structs, vectors of structs, generics) is not needed anywhere in
// this codebase, only a handful of top-level primitive fields per
// pool object.
package movedecode

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/sui-arb/simulator"
)

// FieldValue is a decoded primitive Move value.
type FieldValue struct {
	Bool    bool
	Uint    uint64       // valid for u8/u16/u32/u64
	BigUint *uint256.Int // valid for u128/u256
	Address [32]byte     // valid for address
}

// Fields walks layout.Fields in declaration order against contents,
// decoding each field's raw bytes according to its BCS width, and
// returns every field keyed by name. Decoding stops, without an error,
// at the first field whose type has no fixed primitive width (nested
// struct, vector, generic): that field and every field after it are
// absent from the result.
func Fields(layout *simulator.StructLayout, contents []byte) (map[string]FieldValue, error) {
	out := make(map[string]FieldValue, len(layout.Fields))
	offset := 0
	for _, f := range layout.Fields {
		width, ok := primitiveWidth(f.Type)
		if !ok {
			// A field we can't size (nested struct, vector, generic) ends
			// this pass: everything after it is unreachable without a
			// full recursive decoder, which this package does not
			// implement (spec.md §9 "Non-goals").
			break
		}
		if offset+width > len(contents) {
			return out, fmt.Errorf("movedecode: field %q: short buffer", f.Name)
		}
		raw := contents[offset : offset+width]
		offset += width

		switch f.Type {
		case "bool":
			out[f.Name] = FieldValue{Bool: raw[0] != 0}
		case "u8":
			out[f.Name] = FieldValue{Uint: uint64(raw[0])}
		case "u16":
			out[f.Name] = FieldValue{Uint: uint64(binary.LittleEndian.Uint16(raw))}
		case "u32":
			out[f.Name] = FieldValue{Uint: uint64(binary.LittleEndian.Uint32(raw))}
		case "u64":
			out[f.Name] = FieldValue{Uint: binary.LittleEndian.Uint64(raw)}
		case "u128", "u256":
			out[f.Name] = FieldValue{BigUint: leBytesToUint256(raw)}
		case "address":
			var addr [32]byte
			copy(addr[:], raw)
			out[f.Name] = FieldValue{Address: addr}
		}
	}
	return out, nil
}

func primitiveWidth(t string) (int, bool) {
	switch t {
	case "bool", "u8":
		return 1, true
	case "u16":
		return 2, true
	case "u32":
		return 4, true
	case "u64":
		return 8, true
	case "u128":
		return 16, true
	case "u256":
		return 32, true
	case "address":
		return 32, true
	default:
		return 0, false
	}
}

func leBytesToUint256(b []byte) *uint256.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(uint256.Int).SetBytes(be)
}

// U64Field returns field's value as a uint64, clamping a u128/u256 at
// math.MaxUint64 rather than overflowing, since liquidity/reserve
// figures are only ever used for relative comparison across pools.
func U64Field(fields map[string]FieldValue, name string) (uint64, bool) {
	v, ok := fields[name]
	if !ok {
		return 0, false
	}
	if v.BigUint != nil {
		if !v.BigUint.IsUint64() {
			return ^uint64(0), true
		}
		return v.BigUint.Uint64(), true
	}
	return v.Uint, true
}
