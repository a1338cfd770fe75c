// Package wallet decodes the bot's signing key and derives its wallet
// address, grounded on the original implementation's start_bot.rs
// (SuiKeyPair::decode, SuiAddress::from(&pubkey)): an ed25519 key pair
// whose address is the first 32 bytes of blake2b-256(flag_byte ||
// pubkey), flag_byte 0x00 for the ed25519 scheme.
package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/luxfi/sui-arb/simulator"
)

// ed25519Flag is the signature-scheme flag byte prefixed before the
// public key when deriving an address (the chain supports ed25519,
// secp256k1 and secp256r1 keys; only ed25519 is implemented here).
const ed25519Flag = 0x00

// KeyPair is the decoded signing identity for a configured private key.
type KeyPair struct {
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
	Address simulator.Address
}

// Decode parses a base64-encoded ed25519 key, either the bare 32-byte
// seed or the 33-byte flag-prefixed seed, and derives its wallet
// address; any other length is rejected. This mirrors SuiKeyPair::decode's
// ed25519 branch; other schemes are out of scope (spec.md never asks
// the bot to hold anything but the native coin as gas, so a single key
// scheme is sufficient).
func Decode(privateKeyBase64 string) (*KeyPair, error) {
	raw, err := base64.StdEncoding.DecodeString(privateKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("wallet: decode private key: %w", err)
	}

	var seed []byte
	switch len(raw) {
	case ed25519.SeedSize:
		seed = raw
	case ed25519.SeedSize + 1:
		// Sui's own encoding prefixes the flag byte before the seed.
		if raw[0] != ed25519Flag {
			return nil, fmt.Errorf("wallet: unsupported signature scheme flag 0x%02x", raw[0])
		}
		seed = raw[1:]
	default:
		return nil, fmt.Errorf("wallet: private key has unexpected length %d", len(raw))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	addr, err := addressFromPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: pub, Address: addr}, nil
}

func addressFromPublicKey(pub ed25519.PublicKey) (simulator.Address, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return simulator.Address{}, fmt.Errorf("wallet: init blake2b: %w", err)
	}
	h.Write([]byte{ed25519Flag})
	h.Write(pub)
	sum := h.Sum(nil)

	var addr simulator.Address
	copy(addr[:], sum)
	return addr, nil
}
