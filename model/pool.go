package model

// Protocol identifies a supported DEX (or lending) family. Closed at
// build time, per the "tagged variant" design in spec.md §9.
type Protocol string

const (
	ProtocolCetus      Protocol = "cetus"
	ProtocolTurbos     Protocol = "turbos"
	ProtocolKriyaCLMM  Protocol = "kriya_clmm"
	ProtocolKriyaAMM   Protocol = "kriya_amm"
	ProtocolAftermath  Protocol = "aftermath"
	ProtocolDeepbookV2 Protocol = "deepbook_v2"
	ProtocolNavi       Protocol = "navi" // lending-only, never a swap leg
)

// PoolExtra is a tagged variant holding protocol-specific fee/parameter
// data that the pool index persists alongside the generic Pool record.
// Exactly one of the typed fields is meaningful, selected by the
// enclosing Pool's Protocol.
type PoolExtra struct {
	CLMM  *CLMMExtra  `json:"clmm,omitempty"`
	AMM   *AMMExtra   `json:"amm,omitempty"`
	Book  *BookExtra  `json:"book,omitempty"`
	Lend  *LendExtra  `json:"lend,omitempty"`
}

// CLMMExtra carries concentrated-liquidity parameters (Cetus, Turbos,
// Kriya CLMM).
type CLMMExtra struct {
	TickSpacing  uint32 `json:"tick_spacing"`
	FeeRateBps   uint32 `json:"fee_rate_bps"`
}

// AMMExtra carries constant-product parameters (Kriya AMM, Aftermath).
type AMMExtra struct {
	FeeRateBps   uint32 `json:"fee_rate_bps"`
	IsStable     bool   `json:"is_stable"`
}

// BookExtra carries order-book parameters (DeepBook v2).
type BookExtra struct {
	TickSize   uint64 `json:"tick_size"`
	LotSize    uint64 `json:"lot_size"`
}

// LendExtra carries lending-protocol parameters (Navi).
type LendExtra struct {
	FlashLoanFeeBps uint32 `json:"flash_loan_fee_bps"`
}

// Pool is an immutable index record: {protocol, pool_id, tokens, extra}.
// On-chain state (reserves, ticks, liquidity) is NOT stored here; it is
// read from the simulator at query time (spec.md §3 Pool invariant).
type Pool struct {
	Protocol Protocol
	PoolID   ObjectID
	Tokens   []Coin
	Extra    PoolExtra
}

// Validate enforces the |tokens| >= 2 invariant.
func (p Pool) Validate() error {
	if len(p.Tokens) < 2 {
		return errPoolTooFewTokens
	}
	return nil
}

// OtherToken returns the counter-coin for coin in a two-token pool, or
// "" if coin is not one of the pool's tokens. Pools with more than two
// tokens (order-book pools modeled as a single pair) use the first two
// entries.
func (p Pool) OtherToken(coin Coin) Coin {
	if !p.Has(coin) {
		return ""
	}
	for _, t := range p.Tokens {
		if t != coin {
			return t
		}
	}
	return ""
}

// Has reports whether coin is one of the pool's tokens.
func (p Pool) Has(coin Coin) bool {
	for _, t := range p.Tokens {
		if t == coin {
			return true
		}
	}
	return false
}

// UnorderedPairKey returns a canonical, order-independent key for two
// coins, used as the key for PoolCache's (coinA,coinB) index.
func UnorderedPairKey(a, b Coin) [2]Coin {
	if a <= b {
		return [2]Coin{a, b}
	}
	return [2]Coin{b, a}
}

var errPoolTooFewTokens = poolError("pool must have at least 2 tokens")

type poolError string

func (e poolError) Error() string { return string(e) }
