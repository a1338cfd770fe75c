// Package jsonrpc sends the sealed-auction bid submission over
// JSON-RPC 2.0 (spec.md §6 "shio_submitBid"), adapted from the
// teacher's utils/rpc/json.go client helper.
package jsonrpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json2 "github.com/gorilla/rpc/v2/json2"
)

// cleanlyCloseBody drains and closes resp so the connection can be
// reused, matching the teacher's CleanlyCloseBody.
func cleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

// Client issues JSON-RPC 2.0 requests against a single endpoint.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// NewClient returns a Client posting to url with http.DefaultClient.
func NewClient(url string) *Client {
	return &Client{URL: url, HTTPClient: http.DefaultClient}
}

// Call sends method(params) and decodes the result into reply.
func (c *Client) Call(ctx context.Context, method string, params, reply interface{}) error {
	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("jsonrpc: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("jsonrpc: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jsonrpc: do request: %w", err)
	}
	defer cleanlyCloseBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("jsonrpc: status code %d", resp.StatusCode)
	}
	if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
		return fmt.Errorf("jsonrpc: decode response: %w", err)
	}
	return nil
}

// SubmitBidParams is the shio_submitBid request body (spec.md §6
// "Sealed-auction wire format").
type SubmitBidParams struct {
	OppTxDigest string `json:"oppTxDigest"`
	BidAmount   uint64 `json:"bidAmount"`
	TxData      string `json:"txData"` // base64 BCS transaction bytes
	Sig         string `json:"sig"`
}

// SubmitBidResult is the shio_submitBid response body.
type SubmitBidResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// SubmitBid calls shio_submitBid against c's endpoint, the JSON-RPC
// alternative to posting the bid over the subscription websocket
// (spec.md §6).
func (c *Client) SubmitBid(ctx context.Context, params SubmitBidParams) (SubmitBidResult, error) {
	var result SubmitBidResult
	if err := c.Call(ctx, "shio_submitBid", params, &result); err != nil {
		return SubmitBidResult{}, err
	}
	return result, nil
}
