package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lumir-ai/tbi-engine/internal/store"
	"github.com/lumir-ai/tbi-engine/internal/tbi"
	"github.com/lumir-ai/tbi-engine/internal/vocab"
	"github.com/lumir-ai/tbi-engine/pkg/tradingdata"
)

// newRouter assembles the HTTP API. The trading client may be nil when no
// analyze endpoint is configured; its route then reports unavailability.
func newRouter(st store.Store, trading tradingdata.Client, origins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tbi/compute", handleCompute(st))
		r.Get("/tbi/reports/{id}", handleGetReport(st))
		r.Get("/tbi/reports", handleListReports(st))
		r.Post("/vocab/keywords", handleVocab)
		r.Post("/trading/analyze", handleTrading(trading))
	})

	return r
}

// computeRequest is the inbound profile shape. The reference date is
// optional and defaults to today; the engine itself never reads the clock.
type computeRequest struct {
	Name          string `json:"name"`
	Birthday      string `json:"birthday"`
	ReferenceDate string `json:"reference_date,omitempty"`
}

type computeResponse struct {
	ID     string      `json:"id,omitempty"`
	Report *tbi.Report `json:"report"`
}

func handleCompute(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req computeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Birthday) == "" {
			writeError(w, http.StatusBadRequest, "birthday is required")
			return
		}

		profile, err := buildProfile(req.Name, req.Birthday, req.ReferenceDate)
		if err != nil {
			writeComputeError(w, err)
			return
		}

		report, err := tbi.Compute(profile)
		if err != nil {
			writeComputeError(w, err)
			return
		}

		resp := computeResponse{Report: report}
		if rec, err := st.SaveReport(r.Context(), report); err != nil {
			zap.L().Error("persist report failed",
				zap.String("name", profile.Name),
				zap.Error(err),
			)
		} else {
			resp.ID = rec.ID
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleGetReport(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := st.GetReport(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleListReports(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.ReportFilter{
			Name: r.URL.Query().Get("name"),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			from, err := tbi.ParseDate(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid from date")
				return
			}
			filter.From = from
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			filter.Limit = n
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid offset")
				return
			}
			filter.Offset = n
		}

		records, err := st.ListReports(r.Context(), filter)
		if err != nil {
			zap.L().Error("list reports failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "list reports failed")
			return
		}
		if records == nil {
			records = []store.ReportRecord{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"reports": records})
	}
}

func handleVocab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, unknown := vocab.Lookup(req.Keys)
	if found == nil {
		found = []vocab.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"keywords": found,
		"unknown":  unknown,
	})
}

func handleTrading(trading tradingdata.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if trading == nil {
			writeError(w, http.StatusServiceUnavailable, "trading analysis not configured")
			return
		}

		var req struct {
			AccountNumber string `json:"account_number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AccountNumber == "" {
			writeError(w, http.StatusBadRequest, "account_number is required")
			return
		}

		data, err := trading.Analyze(r.Context(), req.AccountNumber)
		if err != nil {
			var serr *tradingdata.StatusError
			if errors.As(err, &serr) {
				writeError(w, http.StatusBadGateway, "trading service error")
				return
			}
			zap.L().Error("trading analyze failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "trading service unreachable")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data":     data,
			"markdown": tradingdata.RenderMarkdown(data),
		})
	}
}

// writeComputeError maps engine errors onto HTTP statuses: profile
// validation to 400 with the failing field, domain gaps to 422.
func writeComputeError(w http.ResponseWriter, err error) {
	var perr *tbi.InvalidProfileError
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": perr.Reason,
			"field": perr.Field,
		})
		return
	}

	var derr *tbi.UnsupportedIndicatorDomainError
	if errors.As(err, &derr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":     derr.Reason,
			"indicator": derr.Indicator,
		})
		return
	}

	zap.L().Error("compute failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "compute failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
