// Package telemetry holds the optional, out-of-the-critical-path
// telemetry sinks spec.md §1 calls out as external collaborators
// (logs, Telegram): the pipeline must function with none of them
// configured (spec.md §7 "User-visible surface"). The Telegram sink
// posts profit/error events over plain net/http, matching spec.md's
// framing of telemetry as a non-essential sink rather than a new
// third-party dependency.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/luxfi/sui-arb/internal/chainlog"
)

// TelegramSink posts plain-text messages to a Telegram bot chat via the
// sendMessage Bot API method.
type TelegramSink struct {
	botToken string
	chatID   string
	client   *http.Client
	log      chainlog.Logger
}

// NewTelegramSink returns a sink posting to the given bot token/chat
// id. A zero-value botToken or chatID yields a sink whose Send calls
// are no-ops, so callers can construct one unconditionally and let
// configuration decide whether it actually talks to Telegram.
func NewTelegramSink(botToken, chatID string, log chainlog.Logger) *TelegramSink {
	return &TelegramSink{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log,
	}
}

// Enabled reports whether the sink has enough configuration to send.
func (s *TelegramSink) Enabled() bool {
	return s != nil && s.botToken != "" && s.chatID != ""
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send posts text to the configured chat. Failures are logged at warn
// and swallowed: a telemetry outage must never affect the arbitrage
// pipeline (spec.md §1 "deliberately out of scope").
func (s *TelegramSink) Send(ctx context.Context, text string) {
	if !s.Enabled() {
		return
	}
	body, err := json.Marshal(sendMessageRequest{ChatID: s.chatID, Text: text})
	if err != nil {
		s.log.Warn("telemetry: encode telegram message failed", "err", err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		s.log.Warn("telemetry: build telegram request failed", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("telemetry: telegram send failed", "err", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warn("telemetry: telegram returned non-2xx", "status", resp.StatusCode)
	}
}

// ProfitFound posts a formatted profit-event notification.
func (s *TelegramSink) ProfitFound(ctx context.Context, coin string, profit int64, digest string) {
	s.Send(ctx, fmt.Sprintf("profit found: coin=%s profit=%d tx=%s", coin, profit, digest))
}

// Panic posts a formatted panic notification, for the panic barrier
// around executor setup (spec.md §7 "Fatal").
func (s *TelegramSink) Panic(ctx context.Context, subsystem string, recovered interface{}) {
	s.Send(ctx, fmt.Sprintf("panic in %s: %v", subsystem, recovered))
}
