package model

import "time"

// SourceKind tags the Source variant.
type SourceKind uint8

const (
	SourcePublic SourceKind = iota
	SourceShio
	SourceShioDeadlineMissed
)

// Source is the tagged variant {Public | Shio{...} | ShioDeadlineMissed{...}}
// from spec.md §3. Only the fields meaningful for Kind are populated.
type Source struct {
	Kind SourceKind

	// Shio / ShioDeadlineMissed fields.
	OppTxDigest Digest
	BidAmount   uint64
	StartMs     int64
	ArbFoundMs  int64
	DeadlineMs  int64
}

// NewPublicSource returns a Source tagged Public.
func NewPublicSource() Source {
	return Source{Kind: SourcePublic}
}

// NewShioSource returns a Source tagged Shio for a just-seen auction
// opportunity. deadlineMs already has the 20ms submission-slack
// deduction applied by the caller (spec.md §4.G).
func NewShioSource(opp Digest, startMs, deadlineMs int64) Source {
	return Source{
		Kind:        SourceShio,
		OppTxDigest: opp,
		StartMs:     startMs,
		DeadlineMs:  deadlineMs,
	}
}

// WithArbFoundTime returns the transitioned source: Shio -> Shio (with
// ArbFoundMs set) if t < deadline, else Shio -> ShioDeadlineMissed.
// Non-Shio sources are returned unchanged.
func (s Source) WithArbFoundTime(t time.Time) Source {
	if s.Kind != SourceShio {
		return s
	}
	ms := t.UnixMilli()
	s.ArbFoundMs = ms
	if ms < s.DeadlineMs {
		return s
	}
	s.Kind = SourceShioDeadlineMissed
	return s
}

// WithBidAmount returns a copy of s with BidAmount rewritten. Valid for
// Shio and ShioDeadlineMissed sources; a no-op for Public.
func (s Source) WithBidAmount(bid uint64) Source {
	if s.Kind == SourcePublic {
		return s
	}
	s.BidAmount = bid
	return s
}

// IsSealedAuction reports whether s carries a sealed-auction bid
// (Shio or its deadline-missed demotion).
func (s Source) IsSealedAuction() bool {
	return s.Kind == SourceShio || s.Kind == SourceShioDeadlineMissed
}

// HasDeadline reports whether s is subject to an auction deadline.
func (s Source) HasDeadline() bool {
	return s.IsSealedAuction()
}

// DeadlineMissed reports whether s has already been demoted.
func (s Source) DeadlineMissed() bool {
	return s.Kind == SourceShioDeadlineMissed
}
