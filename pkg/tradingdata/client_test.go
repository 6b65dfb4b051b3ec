package tradingdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "9259692", req.AccountNumber)
		assert.Contains(t, req.UserQuestion, "9259692")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"win_rate": 0.62,
			"symbols":  []string{"AAPL", "MSFT"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Analyze(context.Background(), "9259692")
	require.NoError(t, err)
	assert.InDelta(t, 0.62, result["win_rate"], 0.001)
}

func TestAnalyze_EmptyAccount(t *testing.T) {
	t.Parallel()

	client := NewClient("http://localhost:0")
	_, err := client.Analyze(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account number")
}

func TestAnalyze_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busted", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Analyze(context.Background(), "123")
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadGateway, serr.Code)
	assert.Contains(t, serr.Body, "upstream busted")
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Analyze(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("http://localhost:0", WithRateLimit(1))
	_, err := client.Analyze(ctx, "123")
	require.Error(t, err)
}
