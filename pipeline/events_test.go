package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luxfi/sui-arb/arbcache"
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// fakeEventDecoder matches any event whose Type equals want, returning
// a fixed coin/pool.
type fakeEventDecoder struct {
	want   string
	coin   model.Coin
	poolID model.ObjectID
}

func (d *fakeEventDecoder) Protocol() model.Protocol { return "fake" }
func (d *fakeEventDecoder) DecodeSwapEvent(event simulator.Event) (model.Coin, model.ObjectID, bool) {
	if event.Type != d.want {
		return "", model.ObjectID{}, false
	}
	return d.coin, d.poolID, true
}

func TestDecodeSwapEventsMatchesKnownEventType(t *testing.T) {
	decoder := &fakeEventDecoder{want: "0x1::cetus::SwapEvent", coin: "usdc", poolID: dex.MustObjectID("0x01")}
	events := []simulator.Event{
		{Type: "0x1::cetus::SwapEvent"},
		{Type: "0x1::unrelated::Event"},
	}
	matches := DecodeSwapEvents(context.Background(), []dex.EventDecoder{decoder}, events)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(matches))
	}
	if matches[0].Coin != "usdc" {
		t.Errorf("expected coin usdc, got %s", matches[0].Coin)
	}
}

func TestDecodeSwapEventsIgnoresEventsNoDecoderRecognizes(t *testing.T) {
	decoder := &fakeEventDecoder{want: "0x1::cetus::SwapEvent", coin: "usdc", poolID: dex.MustObjectID("0x01")}
	events := []simulator.Event{{Type: "0x1::unrelated::Event"}}
	matches := DecodeSwapEvents(context.Background(), []dex.EventDecoder{decoder}, events)
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

// onceDigestSource.Next succeeds exactly once, then blocks until ctx is
// cancelled and returns ctx.Err(), letting a test observe one iteration
// of a reconnect-forever feed loop without hanging.
type onceDigestSource struct {
	digest model.Digest
	events []simulator.Event
	done   bool
	seen   chan struct{}
}

func (s *onceDigestSource) Next(ctx context.Context) (model.Digest, []simulator.Event, error) {
	if s.done {
		<-ctx.Done()
		return model.Digest{}, nil, ctx.Err()
	}
	s.done = true
	close(s.seen)
	return s.digest, s.events, nil
}

func TestRunPublicFeedDispatchesDecodedSwapEvents(t *testing.T) {
	cache := arbcache.New(time.Minute)
	d := NewDispatcher(cache, NewRecentArbs(8), chainlog.New())
	decoder := &fakeEventDecoder{want: "0x1::cetus::SwapEvent", coin: "usdc", poolID: dex.MustObjectID("0x01")}
	source := &onceDigestSource{
		digest: model.Digest{1},
		events: []simulator.Event{{Type: "0x1::cetus::SwapEvent"}},
		seen:   make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.RunPublicFeed(ctx, source, []dex.EventDecoder{decoder}, func() model.SimulateCtx { return model.SimulateCtx{} }, chainlog.New())

	select {
	case <-source.seen:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for the feed to process its one event")
	}

	select {
	case item := <-d.Items:
		if item.Coin != "usdc" {
			t.Errorf("expected coin usdc, got %s", item.Coin)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected the decoded swap event to reach the dispatch channel")
	}
}

type errorOnceShioSource struct {
	called chan struct{}
}

func (s *errorOnceShioSource) Next(ctx context.Context) (AuctionStarted, error) {
	select {
	case s.called <- struct{}{}:
	default:
	}
	return AuctionStarted{}, errors.New("transient")
}

func TestRunShioFeedReconnectsOnTransientError(t *testing.T) {
	cache := arbcache.New(time.Minute)
	d := NewDispatcher(cache, NewRecentArbs(8), chainlog.New())
	source := &errorOnceShioSource{called: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	go d.RunShioFeed(ctx, source, nil, func() model.SimulateCtx { return model.SimulateCtx{} }, chainlog.New())

	select {
	case <-source.called:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for the feed to call Next at least once")
	}
	cancel()
}
