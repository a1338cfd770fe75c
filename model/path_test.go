package model

import "testing"

func legs() []DexLeg {
	return []DexLeg{
		{Protocol: ProtocolCetus, PoolID: ObjectID{1}, CoinIn: "A", CoinOut: "B", Liquidity: 10_000, A2B: true},
		{Protocol: ProtocolTurbos, PoolID: ObjectID{2}, CoinIn: "B", CoinOut: NativeCoin, Liquidity: 20_000, A2B: false},
	}
}

func TestPathComposition(t *testing.T) {
	p, err := NewPath(legs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CoinIn() != "A" {
		t.Errorf("coin in = %s, want A", p.CoinIn())
	}
	if p.CoinOut() != NativeCoin {
		t.Errorf("coin out = %s, want native", p.CoinOut())
	}
	for i := 0; i+1 < len(p.Legs); i++ {
		if p.Legs[i].CoinOut != p.Legs[i+1].CoinIn {
			t.Errorf("legs %d/%d do not chain", i, i+1)
		}
	}
}

func TestPathNotChainedRejected(t *testing.T) {
	bad := legs()
	bad[1].CoinIn = "Z"
	if _, err := NewPath(bad); err == nil {
		t.Fatal("expected chaining error")
	}
}

func TestPathReverseFlipsLegsAndOrder(t *testing.T) {
	p, _ := NewPath(legs())
	rev := p.Reverse()
	if rev.CoinIn() != NativeCoin || rev.CoinOut() != "A" {
		t.Fatalf("reverse endpoints wrong: in=%s out=%s", rev.CoinIn(), rev.CoinOut())
	}
	// reversing twice returns the original path (full leg equality).
	if !rev.Reverse().Equal(p) {
		t.Fatal("double reverse did not return original path")
	}
}

func TestPathDisjointness(t *testing.T) {
	p1, _ := NewPath(legs())
	p2, _ := NewPath([]DexLeg{{PoolID: ObjectID{3}, CoinIn: "A", CoinOut: NativeCoin}})
	if !p1.DisjointFrom(p2) {
		t.Fatal("expected disjoint paths")
	}
	p3, _ := NewPath([]DexLeg{{PoolID: ObjectID{1}, CoinIn: "X", CoinOut: "Y"}})
	if p1.DisjointFrom(p3) {
		t.Fatal("expected shared-pool paths to not be disjoint")
	}
}

func TestUnorderedPairKeyCanonical(t *testing.T) {
	if UnorderedPairKey("A", "B") != UnorderedPairKey("B", "A") {
		t.Fatal("pair key must be order independent")
	}
}

func TestDigestCompare(t *testing.T) {
	lo := Digest{1}
	hi := Digest{2}
	if !hi.GreaterThan(lo) {
		t.Fatal("expected hi > lo")
	}
	if lo.GreaterThan(hi) {
		t.Fatal("expected lo not > hi")
	}
}
