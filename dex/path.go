package dex

import "github.com/luxfi/sui-arb/model"

// Path is an ordered sequence of live Dex adapter instances, the
// operational counterpart to model.Path: where model.Path is the
// inert, comparable description used for caching and logging, Path
// carries the stateful adapters the router/trader actually invoke to
// extend a transaction (spec.md §4.C, §4.D).
type Path struct {
	Dexes []Dex
}

// Empty reports whether the path has no legs.
func (p Path) Empty() bool {
	return len(p.Dexes) == 0
}

// CoinIn returns the coin the path consumes, or "" for an empty path.
func (p Path) CoinIn() model.Coin {
	if p.Empty() {
		return ""
	}
	return p.Dexes[0].CoinInType()
}

// CoinOut returns the coin the path produces, or "" for an empty path.
func (p Path) CoinOut() model.Coin {
	if p.Empty() {
		return ""
	}
	return p.Dexes[len(p.Dexes)-1].CoinOutType()
}

// Describe converts the live path to its inert, comparable
// description, for cache keys, dedup, and logging.
func (p Path) Describe() model.Path {
	legs := make([]model.DexLeg, len(p.Dexes))
	for i, d := range p.Dexes {
		legs[i] = model.DexLeg{
			Protocol:  d.Protocol(),
			PoolID:    d.PoolObjectID(),
			CoinIn:    d.CoinInType(),
			CoinOut:   d.CoinOutType(),
			Liquidity: d.Liquidity(),
			A2B:       d.IsA2B(),
		}
	}
	// Describe never fails: every live path was assembled by the router
	// leg by leg, so adjacent coin types already chain.
	desc, _ := model.NewPath(legs)
	return desc
}

// Reverse returns a new path walking the same pools in the opposite
// direction, with every adapter cloned and flipped so the original
// path's adapters are left untouched (spec.md §4.D, invariant 2).
func (p Path) Reverse() Path {
	out := make([]Dex, len(p.Dexes))
	for i, d := range p.Dexes {
		flipped := d.Clone()
		flipped.Flip()
		out[len(p.Dexes)-1-i] = flipped
	}
	return Path{Dexes: out}
}

// ContainsPool reports whether id appears in any leg of the path.
func (p Path) ContainsPool(id model.ObjectID) bool {
	for _, d := range p.Dexes {
		if d.PoolObjectID() == id {
			return true
		}
	}
	return false
}

// DisjointFrom reports whether p and other share no pool id (spec.md
// §3 disjointness, required before two legs of an arbitrage cycle are
// combined).
func (p Path) DisjointFrom(other Path) bool {
	otherSet := make(map[model.ObjectID]struct{}, len(other.Dexes))
	for _, d := range other.Dexes {
		otherSet[d.PoolObjectID()] = struct{}{}
	}
	for _, d := range p.Dexes {
		if _, ok := otherSet[d.PoolObjectID()]; ok {
			return false
		}
	}
	return true
}
