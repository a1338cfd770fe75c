package chainclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/internal/wire"
)

// drainDeadline bounds how long one Reload call waits for additional
// already-buffered frames before returning, so the Replay ticker's
// cadence (spec.md §9) isn't stretched by an idle socket.
const drainDeadline = 50 * time.Millisecond

// UpdateReloader implements simulator.Reloader by consuming the
// simulator's cache-update socket (spec.md §6 "update socket") and
// pushing every (ObjectID, Object) pair it carries into the same
// fastcache-backed local replica Client.GetObject consults, keeping
// Replay's background refresh (simulator/replay.go) populated without
// a round trip back to the RPC node.
type UpdateReloader struct {
	client  *Client
	network string
	address string

	mu   sync.Mutex
	conn net.Conn
}

// NewUpdateReloader dials network/address lazily on the first Reload
// call, same as internal/publictx.Source and internal/wsfeed.conn.
func NewUpdateReloader(client *Client, network, address string) *UpdateReloader {
	return &UpdateReloader{client: client, network: network, address: address}
}

func (r *UpdateReloader) ensure(ctx context.Context) (net.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		return r.conn, nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, r.network, r.address)
	if err != nil {
		return nil, fmt.Errorf("chainclient: dial update socket: %w", err)
	}
	r.conn = conn
	return conn, nil
}

func (r *UpdateReloader) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

// Reload drains every update frame currently buffered on the socket and
// applies each to the client's object cache, then returns. It blocks
// for the first frame (so a Replay tick does useful work rather than
// spinning) but caps further draining at drainDeadline so one call
// can't stall the background refresh loop indefinitely.
func (r *UpdateReloader) Reload(ctx context.Context) error {
	conn, err := r.ensure(ctx)
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	} else {
		conn.SetReadDeadline(time.Time{})
	}
	updates, err := wire.ReadUpdateFrame(conn)
	if err != nil {
		r.invalidate()
		return fmt.Errorf("chainclient: read update frame: %w", err)
	}
	r.apply(updates)

	for {
		conn.SetReadDeadline(time.Now().Add(drainDeadline))
		more, err := wire.ReadUpdateFrame(conn)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break
			}
			r.invalidate()
			return fmt.Errorf("chainclient: drain update frame: %w", err)
		}
		r.apply(more)
	}
	return nil
}

func (r *UpdateReloader) apply(updates []wire.ObjectUpdate) {
	for _, u := range updates {
		obj := u.Object
		obj.ID = u.ID
		r.client.cacheObject(&obj)
	}
}

// Close releases the socket connection, if any.
func (r *UpdateReloader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}
