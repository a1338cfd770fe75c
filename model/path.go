package model

// DexLeg is a single swap through one pool in a specified direction.
type DexLeg struct {
	Protocol Protocol
	PoolID   ObjectID
	CoinIn   Coin
	CoinOut  Coin
	// Liquidity is reported on a common numeric scale across all
	// adapters of a family, so that router comparisons between legs of
	// different protocols are meaningful (spec.md §4.C invariant 3).
	Liquidity uint64
	// A2B is true when the underlying pool's natural "token A to token
	// B" direction matches CoinIn -> CoinOut.
	A2B bool
}

// Flip returns a copy of the leg with coin in/out swapped and the A2B
// flag inverted.
func (l DexLeg) Flip() DexLeg {
	l.CoinIn, l.CoinOut = l.CoinOut, l.CoinIn
	l.A2B = !l.A2B
	return l
}

// Path is an ordered sequence of legs. Adjacent legs must chain:
// leg[i].CoinOut == leg[i+1].CoinIn (spec.md §3 Path invariant).
type Path struct {
	Legs []DexLeg
}

// NewPath validates leg chaining before constructing a Path.
func NewPath(legs []DexLeg) (Path, error) {
	for i := 1; i < len(legs); i++ {
		if legs[i-1].CoinOut != legs[i].CoinIn {
			return Path{}, errPathNotChained
		}
	}
	return Path{Legs: legs}, nil
}

// Empty reports whether the path has no legs (the trivial
// native-coin-to-native-coin path).
func (p Path) Empty() bool {
	return len(p.Legs) == 0
}

// CoinIn returns the coin the path consumes, or "" for an empty path.
func (p Path) CoinIn() Coin {
	if p.Empty() {
		return ""
	}
	return p.Legs[0].CoinIn
}

// CoinOut returns the coin the path produces, or "" for an empty path.
func (p Path) CoinOut() Coin {
	if p.Empty() {
		return ""
	}
	return p.Legs[len(p.Legs)-1].CoinOut
}

// Reverse returns a new path that walks the same pools in the opposite
// direction, with every leg flipped. Used to derive buy paths from sell
// paths (spec.md §4.D, invariant 2 in §8).
func (p Path) Reverse() Path {
	out := make([]DexLeg, len(p.Legs))
	for i, leg := range p.Legs {
		out[len(p.Legs)-1-i] = leg.Flip()
	}
	return Path{Legs: out}
}

// ContainsPool reports whether id appears in any leg of the path.
func (p Path) ContainsPool(id ObjectID) bool {
	for _, leg := range p.Legs {
		if leg.PoolID == id {
			return true
		}
	}
	return false
}

// PoolIDSet returns the set of pool ids used by the path, for the
// disjointness check below.
func (p Path) PoolIDSet() map[ObjectID]struct{} {
	set := make(map[ObjectID]struct{}, len(p.Legs))
	for _, leg := range p.Legs {
		set[leg.PoolID] = struct{}{}
	}
	return set
}

// DisjointFrom reports whether p and other share no pool id (spec.md §3:
// "A path is disjoint from another iff they share no pool_id").
func (p Path) DisjointFrom(other Path) bool {
	otherSet := other.PoolIDSet()
	for _, leg := range p.Legs {
		if _, ok := otherSet[leg.PoolID]; ok {
			return false
		}
	}
	return true
}

// Equal compares two paths leg-by-leg (the "full leg" equality notion
// used for display, as opposed to EqualByPoolIDs used for set
// operations — spec.md §3).
func (p Path) Equal(other Path) bool {
	if len(p.Legs) != len(other.Legs) {
		return false
	}
	for i := range p.Legs {
		if p.Legs[i] != other.Legs[i] {
			return false
		}
	}
	return true
}

// EqualByPoolIDs compares two paths by the ordered sequence of pool ids
// only, ignoring direction/coin labels.
func (p Path) EqualByPoolIDs(other Path) bool {
	if len(p.Legs) != len(other.Legs) {
		return false
	}
	for i := range p.Legs {
		if p.Legs[i].PoolID != other.Legs[i].PoolID {
			return false
		}
	}
	return true
}

var errPathNotChained = pathError("path legs do not chain: coin_out/coin_in mismatch")

type pathError string

func (e pathError) Error() string { return string(e) }
