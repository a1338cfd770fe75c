package model

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// ObjectID is an on-chain object identifier (32 bytes, hex-encoded for
// display).
type ObjectID [32]byte

// ObjectIDFromHex parses a "0x"-prefixed hex string into an ObjectID.
func ObjectIDFromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("object id %q: %w", s, err)
	}
	if len(b) > len(id) {
		return id, fmt.Errorf("object id %q: too long", s)
	}
	copy(id[len(id)-len(b):], b)
	return id, nil
}

// String renders the id as a 0x-prefixed hex string.
func (id ObjectID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Digest is a transaction digest: a 32-byte hash with a total,
// lexicographic order (used by the sealed-auction digest-ordering
// invariant, spec.md §4.G / §8 invariant 7).
type Digest [32]byte

// Compare returns -1, 0 or +1 as d is lexicographically less than,
// equal to, or greater than other.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

// GreaterThan reports whether d sorts strictly after other.
func (d Digest) GreaterThan(other Digest) bool {
	return d.Compare(other) > 0
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Owner is a tagged variant describing who may mutate an object.
type Owner struct {
	Kind                  OwnerKind
	Address               [32]byte // valid when Kind == OwnerAddress or OwnerObject
	InitialSharedVersion  uint64   // valid when Kind == OwnerShared
}

// OwnerKind enumerates the possible Owner variants.
type OwnerKind uint8

const (
	OwnerAddress OwnerKind = iota
	OwnerShared
	OwnerImmutable
	OwnerObject
)

// Object is an on-chain entity as read by the simulator.
type Object struct {
	ID      ObjectID
	Version uint64
	Digest  Digest
	Owner   Owner
	// BCS (or BCS-equivalent) bytes of the object's Move value. Opaque
	// to every package except the simulator's layout decoder.
	Contents []byte
}

// ObjectRef is the triple used to reference an object inside a
// transaction (id, version, digest) — what a transaction builder needs
// to name an input object, independent of its current full contents.
type ObjectRef struct {
	ID      ObjectID
	Version uint64
	Digest  Digest
}

func (o Object) Ref() ObjectRef {
	return ObjectRef{ID: o.ID, Version: o.Version, Digest: o.Digest}
}
