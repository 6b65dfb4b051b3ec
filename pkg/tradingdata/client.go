// Package tradingdata calls the external trading-analyze service and
// renders its response for prompt interpolation. The service is an external
// collaborator; this package is the narrow interface the rest of the system
// consumes it through.
package tradingdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client fetches trading behavior analysis for an account.
type Client interface {
	Analyze(ctx context.Context, accountNumber string) (map[string]any, error)
}

// AnalyzeRequest is the request body for the analyze endpoint.
type AnalyzeRequest struct {
	UserQuestion  string `json:"user_question"`
	AccountNumber string `json:"account_number"`
}

// StatusError reports a non-OK response from the analyze service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tradingdata: unexpected status %d: %s", e.Code, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	analyzeURL string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a trading-analyze client for the given endpoint URL.
func NewClient(analyzeURL string, opts ...Option) Client {
	c := &httpClient{
		analyzeURL: analyzeURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Analyze(ctx context.Context, accountNumber string) (map[string]any, error) {
	if accountNumber == "" {
		return nil, eris.New("tradingdata: account number is required")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "tradingdata: rate limit wait")
		}
	}

	body, err := json.Marshal(AnalyzeRequest{
		UserQuestion:  fmt.Sprintf("Analyze trading data for account %s", accountNumber),
		AccountNumber: accountNumber,
	})
	if err != nil {
		return nil, eris.Wrap(err, "tradingdata: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzeURL, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "tradingdata: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "tradingdata: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "tradingdata: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "tradingdata: unmarshal response")
	}

	return result, nil
}
