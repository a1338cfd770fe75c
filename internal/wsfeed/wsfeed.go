// Package wsfeed implements the two live websocket feeds spec.md §4.G
// names as event sources 2 and 3 ("Private" and "Shio"): a connection
// that reconnects forever, logging and backing off on transient errors
// (spec.md §5's "Concurrency and fault tolerance" resource model),
// handing decoded payloads to the pipeline package's PrivateTxSource
// and ShioSource interfaces.
package wsfeed

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pipeline"
	"github.com/luxfi/sui-arb/simulator"
)

// reconnectBurst/reconnectPerSecond bound how aggressively a feed
// retries a broken connection: fast enough to recover promptly from a
// blip, slow enough that a dead endpoint doesn't spin the process.
const (
	reconnectBurst     = 3
	reconnectPerSecond = 0.5
)

// dialer opens a websocket connection. A field (not a package-level
// var) so tests can substitute one.
type dialer interface {
	Dial(url string) (*websocket.Conn, error)
}

type defaultDialer struct{}

func (defaultDialer) Dial(url string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, err
}

// conn is the shared reconnect-forever machinery both feeds below
// build on: dial, read one JSON message, and on any error tear down
// and redial after the limiter admits another attempt.
type conn struct {
	url     string
	dial    dialer
	limiter *rate.Limiter
	log     chainlog.Logger

	mu sync.Mutex
	ws *websocket.Conn
}

func newConn(url string, log chainlog.Logger) *conn {
	return &conn{
		url:     url,
		dial:    defaultDialer{},
		limiter: rate.NewLimiter(rate.Limit(reconnectPerSecond), reconnectBurst),
		log:     log,
	}
}

// ensure returns a live connection, reconnecting (paced by limiter) if
// necessary.
func (c *conn) ensure(ctx context.Context) (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws != nil {
		return c.ws, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ws, err := c.dial.Dial(c.url)
	if err != nil {
		return nil, fmt.Errorf("wsfeed: dial %s: %w", c.url, err)
	}
	c.ws = ws
	return ws, nil
}

// invalidate drops the current connection so the next ensure redials.
func (c *conn) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws != nil {
		c.ws.Close()
		c.ws = nil
	}
}

// readJSON blocks for the next message. It makes a single attempt: on a
// read error it drops the connection (so the next call redials) and
// returns the error, and on a dial error it returns that error; the
// feeds' Next loops log it and call readJSON again. A nil error return
// only happens on a clean decode.
func (c *conn) readJSON(ctx context.Context, v interface{}) error {
	ws, err := c.ensure(ctx)
	if err != nil {
		return err
	}
	if err := ws.ReadJSON(v); err != nil {
		c.invalidate()
		return fmt.Errorf("wsfeed: read %s: %w", c.url, err)
	}
	return nil
}

// privateTxMessage is the wire shape of one not-yet-executed
// transaction as relayed by the private-tx feed: the programmable
// transaction block, base64-encoded in whatever form the bot's own
// transaction builder produced it, self-describing enough to round
// trip through simulator.Transaction.
type privateTxMessage struct {
	Sender    string           `json:"sender"`
	Inputs    []objectRefJSON  `json:"inputs"`
	GasCoins  []objectRefJSON  `json:"gasCoins"`
	GasPrice  uint64           `json:"gasPrice"`
	GasBudget uint64           `json:"gasBudget"`
	Commands  []commandJSON    `json:"commands"`
}

type objectRefJSON struct {
	ID      string `json:"id"`
	Version uint64 `json:"version"`
	Digest  string `json:"digest"`
}

type commandJSON struct {
	Kind          string        `json:"kind"`
	Package       string        `json:"package,omitempty"`
	Module        string        `json:"module,omitempty"`
	Function      string        `json:"function,omitempty"`
	TypeArguments []string      `json:"typeArguments,omitempty"`
	Arguments     []argumentRPC `json:"arguments,omitempty"`
	SplitAmount   uint64        `json:"splitAmount,omitempty"`
	SplitCoin     argumentRPC   `json:"splitCoin,omitempty"`
	MergeInto     argumentRPC   `json:"mergeInto,omitempty"`
	MergeFrom     []argumentRPC `json:"mergeFrom,omitempty"`
	Recipient     string        `json:"recipient,omitempty"`
	Objects       []argumentRPC `json:"objects,omitempty"`
}

type argumentRPC struct {
	Kind  string `json:"kind"`
	Index uint16 `json:"index"`
}

var commandKindNames = map[string]simulator.CommandKind{
	"moveCall":        simulator.CommandMoveCall,
	"splitCoin":       simulator.CommandSplitCoin,
	"mergeCoin":       simulator.CommandMergeCoin,
	"transferObjects": simulator.CommandTransferObjects,
}

var argumentKindNames = map[string]simulator.ArgumentKind{
	"input":        simulator.ArgInput,
	"gasCoin":      simulator.ArgGasCoin,
	"result":       simulator.ArgResult,
	"nestedResult": simulator.ArgNestedResult,
}

func decodeArgument(a argumentRPC) simulator.Argument {
	return simulator.Argument{Kind: argumentKindNames[a.Kind], Index: a.Index}
}

func decodeObjectRef(o objectRefJSON) (model.ObjectRef, error) {
	id, err := model.ObjectIDFromHex(o.ID)
	if err != nil {
		return model.ObjectRef{}, err
	}
	var digest model.Digest
	if o.Digest != "" {
		raw, err := base64.StdEncoding.DecodeString(o.Digest)
		if err == nil && len(raw) == len(digest) {
			copy(digest[:], raw)
		}
	}
	return model.ObjectRef{ID: id, Version: o.Version, Digest: digest}, nil
}

func (m *privateTxMessage) toTransaction() (simulator.Transaction, error) {
	senderID, err := model.ObjectIDFromHex(m.Sender)
	if err != nil {
		return simulator.Transaction{}, fmt.Errorf("wsfeed: private tx sender: %w", err)
	}
	tx := simulator.Transaction{
		Sender:    simulator.Address(senderID),
		GasPrice:  m.GasPrice,
		GasBudget: m.GasBudget,
	}
	for _, in := range m.Inputs {
		ref, err := decodeObjectRef(in)
		if err != nil {
			return simulator.Transaction{}, err
		}
		tx.Inputs = append(tx.Inputs, ref)
	}
	for _, gc := range m.GasCoins {
		ref, err := decodeObjectRef(gc)
		if err != nil {
			return simulator.Transaction{}, err
		}
		tx.GasCoins = append(tx.GasCoins, ref)
	}
	for _, c := range m.Commands {
		kind, ok := commandKindNames[c.Kind]
		if !ok {
			return simulator.Transaction{}, fmt.Errorf("wsfeed: unrecognized command kind %q", c.Kind)
		}
		cmd := simulator.Command{Kind: kind, SplitAmount: c.SplitAmount, SplitCoin: decodeArgument(c.SplitCoin), MergeInto: decodeArgument(c.MergeInto)}
		if kind == simulator.CommandMoveCall {
			pkg, err := model.ObjectIDFromHex(c.Package)
			if err != nil {
				return simulator.Transaction{}, err
			}
			args := make([]simulator.Argument, len(c.Arguments))
			for i, a := range c.Arguments {
				args[i] = decodeArgument(a)
			}
			cmd.MoveCall = &simulator.MoveCall{Package: pkg, Module: c.Module, Function: c.Function, TypeArguments: c.TypeArguments, Arguments: args}
		}
		if kind == simulator.CommandMergeCoin {
			for _, a := range c.MergeFrom {
				cmd.MergeFrom = append(cmd.MergeFrom, decodeArgument(a))
			}
		}
		if kind == simulator.CommandTransferObjects {
			recipientID, err := model.ObjectIDFromHex(c.Recipient)
			if err != nil {
				return simulator.Transaction{}, err
			}
			cmd.Recipient = simulator.Address(recipientID)
			for _, a := range c.Objects {
				cmd.Objects = append(cmd.Objects, decodeArgument(a))
			}
		}
		tx.Commands = append(tx.Commands, cmd)
	}
	return tx, nil
}

// PrivateFeed implements pipeline.PrivateTxSource over a websocket
// streaming not-yet-executed transactions.
type PrivateFeed struct {
	conn *conn
	log  chainlog.Logger
}

// NewPrivateFeed dials url lazily on first Next call.
func NewPrivateFeed(url string, log chainlog.Logger) *PrivateFeed {
	return &PrivateFeed{conn: newConn(url, log), log: log}
}

// Next blocks for the next mempool transaction, reconnecting forever on
// transient failure.
func (f *PrivateFeed) Next(ctx context.Context) (simulator.Transaction, error) {
	for {
		if ctx.Err() != nil {
			return simulator.Transaction{}, ctx.Err()
		}
		var msg privateTxMessage
		if err := f.conn.readJSON(ctx, &msg); err != nil {
			f.log.Warn("wsfeed: private feed read failed, retrying", "err", err)
			continue
		}
		tx, err := msg.toTransaction()
		if err != nil {
			f.log.Warn("wsfeed: private feed decode failed, skipping", "err", err)
			continue
		}
		return tx, nil
	}
}

// shioAuctionMessage is the wire shape of a sealed-auction opening
// (spec.md §4.G event source 3): the triggering digest, gas price,
// deadline, and a JSON-encoded object-override snapshot the worker
// needs to replay it deterministically.
type shioAuctionMessage struct {
	TriggerDigest string              `json:"triggerDigest"`
	GasPrice      uint64              `json:"gasPrice"`
	DeadlineMs    int64               `json:"deadlineMs"`
	Overlay       []shioOverlayEntry  `json:"overlay"`
	Events        []shioEventMessage  `json:"events"`
}

type shioOverlayEntry struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Version uint64 `json:"version,omitempty"`
	Digest  string `json:"digest,omitempty"`
	Owner   string `json:"ownerKind,omitempty"`
	Content string `json:"contentsBase64,omitempty"`
}

type shioEventMessage struct {
	Type   string `json:"type"`
	Sender string `json:"sender"`
	Bytes  string `json:"bcsBase64"`
}

// ShioFeed implements pipeline.ShioSource over a websocket streaming
// sealed-auction openings.
type ShioFeed struct {
	conn *conn
	log  chainlog.Logger
}

// NewShioFeed dials url lazily on first Next call.
func NewShioFeed(url string, log chainlog.Logger) *ShioFeed {
	return &ShioFeed{conn: newConn(url, log), log: log}
}

// Next blocks for the next sealed-auction opening.
func (f *ShioFeed) Next(ctx context.Context) (pipeline.AuctionStarted, error) {
	for {
		if ctx.Err() != nil {
			return pipeline.AuctionStarted{}, ctx.Err()
		}
		var msg shioAuctionMessage
		if err := f.conn.readJSON(ctx, &msg); err != nil {
			f.log.Warn("wsfeed: shio feed read failed, retrying", "err", err)
			continue
		}
		auction, err := msg.toAuctionStarted()
		if err != nil {
			f.log.Warn("wsfeed: shio feed decode failed, skipping", "err", err)
			continue
		}
		return auction, nil
	}
}

func (m *shioAuctionMessage) toAuctionStarted() (pipeline.AuctionStarted, error) {
	var trigger model.Digest
	raw, err := base64.StdEncoding.DecodeString(m.TriggerDigest)
	if err != nil || len(raw) != len(trigger) {
		if hexDigest, hexErr := decodeHexDigest(m.TriggerDigest); hexErr == nil {
			trigger = hexDigest
		}
	} else {
		copy(trigger[:], raw)
	}

	out := pipeline.AuctionStarted{
		TriggerDigest: trigger,
		GasPrice:      m.GasPrice,
		DeadlineMs:    m.DeadlineMs,
		Overlay:       make(map[model.ObjectID]model.ObjectReadResult, len(m.Overlay)),
	}
	for _, e := range m.Overlay {
		id, err := model.ObjectIDFromHex(e.ID)
		if err != nil {
			continue
		}
		if e.Deleted {
			out.Overlay[id] = model.ObjectReadResult{Deleted: true}
			continue
		}
		content, err := base64.StdEncoding.DecodeString(e.Content)
		if err != nil {
			continue
		}
		var digest model.Digest
		if d, err := base64.StdEncoding.DecodeString(e.Digest); err == nil && len(d) == len(digest) {
			copy(digest[:], d)
		}
		out.Overlay[id] = model.ObjectReadResult{Object: &model.Object{
			ID:       id,
			Version:  e.Version,
			Digest:   digest,
			Contents: content,
		}}
	}
	for _, ev := range m.Events {
		bytes, err := base64.StdEncoding.DecodeString(ev.Bytes)
		if err != nil {
			continue
		}
		senderID, _ := model.ObjectIDFromHex(ev.Sender)
		out.Events = append(out.Events, simulator.Event{Type: ev.Type, Sender: simulator.Address(senderID), Bytes: bytes})
	}
	return out, nil
}

func decodeHexDigest(s string) (model.Digest, error) {
	var d model.Digest
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return d, err
	}
	if len(raw) != len(d) {
		return d, fmt.Errorf("wsfeed: digest %q wrong length", s)
	}
	copy(d[:], raw)
	return d, nil
}

