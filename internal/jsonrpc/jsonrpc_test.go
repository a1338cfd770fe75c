package jsonrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitBid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []SubmitBidParams `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "shio_submitBid", req.Method)
		require.Len(t, req.Params, 1)
		require.Equal(t, uint64(900), req.Params[0].BidAmount)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":` + string(req.ID) + `,"result":{"accepted":true}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.SubmitBid(context.Background(), SubmitBidParams{
		OppTxDigest: "deadbeef",
		BidAmount:   900,
		TxData:      "AAAA",
		Sig:         "sig",
	})
	require.NoError(t, err)
	require.True(t, result.Accepted)
}

func TestSubmitBidNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SubmitBid(context.Background(), SubmitBidParams{})
	require.Error(t, err)
}
