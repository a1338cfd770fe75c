package pipeline

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain uses goleak to verify tests in this package do not leak
// goroutines: RunPublicFeed/RunShioFeed are started with `go` in
// events_test.go and must exit cleanly once their context is cancelled.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
