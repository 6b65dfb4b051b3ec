package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumir-ai/tbi-engine/internal/store"
	"github.com/lumir-ai/tbi-engine/internal/tbi"
	"github.com/lumir-ai/tbi-engine/pkg/tradingdata"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "tbi.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

type stubTradingClient struct {
	data map[string]any
	err  error
}

func (s *stubTradingClient) Analyze(ctx context.Context, accountNumber string) (map[string]any, error) {
	return s.data, s.err
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Health(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Compute_HappyPath(t *testing.T) {
	st := newTestStore(t)
	handler := newRouter(st, nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":           "John Doe",
		"birthday":       "1990-01-01",
		"reference_date": "2024-12-15",
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp computeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.Report)
	assert.Equal(t, "JOHN DOE", resp.Report.Profile.Name)
	assert.Len(t, resp.Report.Values, len(tbi.Keys()))

	ppa, ok := resp.Report.Get("PPA")
	require.True(t, ok)
	assert.Equal(t, 3, ppa.Score)

	// The report was persisted under the returned ID.
	rec, err := st.GetReport(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE", rec.Name)
}

func TestRouter_Compute_SlashDateFormat(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":           "John Doe",
		"birthday":       "01/01/1990",
		"reference_date": "15/12/2024",
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp computeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	ppa, ok := resp.Report.Get("PPA")
	require.True(t, ok)
	assert.Equal(t, 3, ppa.Score)
}

func TestRouter_Compute_InvalidBody(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tbi/compute", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestRouter_Compute_MissingBirthday(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name": "John Doe",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "birthday is required")
}

func TestRouter_Compute_BadDate(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":     "John Doe",
		"birthday": "1990-13-40",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Compute_EmptyName(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":     "   ",
		"birthday": "1990-01-01",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "name", body["field"])
}

func TestRouter_Compute_NoScorableLetters(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":           "123 456",
		"birthday":       "1990-01-01",
		"reference_date": "2024-12-15",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "SPI", body["indicator"])
}

func TestRouter_GetReport(t *testing.T) {
	st := newTestStore(t)
	handler := newRouter(st, nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":           "Jane Smith",
		"birthday":       "1985-06-15",
		"reference_date": "2024-12-15",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp computeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tbi/reports/"+resp.ID, nil)
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req)

	assert.Equal(t, http.StatusOK, rr2.Code)

	var rec store.ReportRecord
	require.NoError(t, json.Unmarshal(rr2.Body.Bytes(), &rec))
	assert.Equal(t, resp.ID, rec.ID)
	assert.Equal(t, "JANE SMITH", rec.Name)
}

func TestRouter_GetReport_NotFound(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tbi/reports/no-such-id", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_ListReports(t *testing.T) {
	st := newTestStore(t)
	handler := newRouter(st, nil, []string{"*"})

	for _, name := range []string{"John Doe", "Jane Smith"} {
		rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
			"name":           name,
			"birthday":       "1990-01-01",
			"reference_date": "2024-12-15",
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tbi/reports?name=jane+smith", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Reports []store.ReportRecord `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Reports, 1)
	assert.Equal(t, "JANE SMITH", body.Reports[0].Name)
}

func TestRouter_ListReports_FromFilter(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/tbi/compute", map[string]string{
		"name":           "John Doe",
		"birthday":       "1990-01-01",
		"reference_date": "2024-12-15",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tbi/reports?from=2100-01-01", nil)
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req)

	assert.Equal(t, http.StatusOK, rr2.Code)

	var body struct {
		Reports []store.ReportRecord `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rr2.Body.Bytes(), &body))
	assert.Empty(t, body.Reports)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tbi/reports?from=bogus", nil)
	rr3 := httptest.NewRecorder()
	handler.ServeHTTP(rr3, req)
	assert.Equal(t, http.StatusBadRequest, rr3.Code)
}

func TestRouter_ListReports_InvalidLimit(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tbi/reports?limit=abc", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Vocab(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/vocab/keywords", map[string]any{
		"keys": []string{"PPA", "XYZ"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Keywords []struct {
			Key      string   `json:"key"`
			Keywords []string `json:"keywords"`
		} `json:"keywords"`
		Unknown []string `json:"unknown"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Keywords, 1)
	assert.Equal(t, "PPA", body.Keywords[0].Key)
	assert.NotEmpty(t, body.Keywords[0].Keywords)
	assert.Equal(t, []string{"XYZ"}, body.Unknown)
}

func TestRouter_Trading_NotConfigured(t *testing.T) {
	handler := newRouter(newTestStore(t), nil, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/trading/analyze", map[string]string{
		"account_number": "ACC-1",
	})

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouter_Trading_HappyPath(t *testing.T) {
	trading := &stubTradingClient{data: map[string]any{
		"win_rate": 0.62,
		"symbols":  []any{"EURUSD", "XAUUSD"},
	}}
	handler := newRouter(newTestStore(t), trading, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/trading/analyze", map[string]string{
		"account_number": "ACC-1",
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data     map[string]any `json:"data"`
		Markdown string         `json:"markdown"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 0.62, body.Data["win_rate"])
	assert.Contains(t, body.Markdown, "## TRADING DATA")
}

func TestRouter_Trading_UpstreamError(t *testing.T) {
	trading := &stubTradingClient{err: &tradingdata.StatusError{Code: http.StatusBadGateway, Body: "boom"}}
	handler := newRouter(newTestStore(t), trading, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/trading/analyze", map[string]string{
		"account_number": "ACC-1",
	})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestRouter_Trading_MissingAccount(t *testing.T) {
	trading := &stubTradingClient{data: map[string]any{}}
	handler := newRouter(newTestStore(t), trading, []string{"*"})

	rr := postJSON(t, handler, "/api/v1/trading/analyze", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "account_number is required")
}
