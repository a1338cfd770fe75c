package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"
)

func TestDecodeBareSeed(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	encoded := base64.StdEncoding.EncodeToString(seed)

	kp, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(kp.Address) != 32 {
		t.Fatalf("address length = %d, want 32", len(kp.Address))
	}

	kp2, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode (again): %v", err)
	}
	if kp.Address != kp2.Address {
		t.Fatalf("Decode is not deterministic: %x != %x", kp.Address, kp2.Address)
	}
}

func TestDecodeFlaggedSeed(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	flagged := append([]byte{ed25519Flag}, seed...)
	encoded := base64.StdEncoding.EncodeToString(flagged)

	if _, err := Decode(encoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecodeRejectsUnknownFlag(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	flagged := append([]byte{0x01}, seed...)
	encoded := base64.StdEncoding.EncodeToString(flagged)

	if _, err := Decode(encoded); err == nil {
		t.Fatal("expected error for unsupported scheme flag")
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	if _, err := Decode(encoded); err == nil {
		t.Fatal("expected error for malformed private key")
	}
}
