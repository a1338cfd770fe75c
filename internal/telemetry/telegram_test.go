package telemetry

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/stretchr/testify/require"
)

func TestDisabledSinkIsNoOp(t *testing.T) {
	s := NewTelegramSink("", "", chainlog.New())
	require.False(t, s.Enabled())
	// Send must not panic or block even though it has nowhere to post.
	s.Send(context.Background(), "hello")
}

func TestEnabledSinkReportsConfiguration(t *testing.T) {
	s := NewTelegramSink("token", "chat", chainlog.New())
	require.True(t, s.Enabled())
}

func TestProfitFoundFormatsMessage(t *testing.T) {
	s := NewTelegramSink("token", "chat", chainlog.New())
	// Network errors are swallowed by design; this only checks it does
	// not panic while formatting and attempting the (unreachable) send.
	s.ProfitFound(context.Background(), "0x2::sui::SUI", 42, "deadbeef")
}
