package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/export"
	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/monitoring"
	"github.com/sells-group/investor-profile/internal/pipeline"
	"github.com/sells-group/investor-profile/internal/questionnaire"
	"github.com/sells-group/investor-profile/internal/store"
)

const (
	maxBodyBytes    = 1 << 20
	anonymousUserID = "anonymous"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// apiServer serves the HTTP API.
type apiServer struct {
	pipeline *pipeline.Pipeline
	store    store.Store
	metrics  *monitoring.Metrics
	registry *prometheus.Registry
	limiter  *userLimiter
}

// generateRequest is the body of the scoring endpoints.
type generateRequest struct {
	Responses model.ResponseMap `json:"responses"`
	Strict    bool              `json:"strict,omitempty"`
}

func buildRouter(s *apiServer, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.instrument)

	r.Get("/health", s.handleHealth)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Post("/scores", s.handleScore)
		r.With(s.limiter.middleware).Post("/users/{userID}/reports", s.handleCreateReport)
		r.Get("/users/{userID}/reports", s.handleListReports)
		r.Get("/users/{userID}/reports/latest", s.handleLatestReport)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Get("/reports/{id}/export.xlsx", s.handleExportReport)
	})
	return r
}

// instrument records every request under its route pattern.
func (s *apiServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveHTTP(route, r.Method, status, time.Since(start))
	})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.store.(store.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, questionViews())
}

func (s *apiServer) handleScore(w http.ResponseWriter, r *http.Request) {
	responses, ok := decodeGenerateRequest(w, r)
	if !ok {
		return
	}
	report, err := s.pipeline.Evaluate(r.Context(), anonymousUserID, responses)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, report)
}

func (s *apiServer) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	responses, ok := decodeGenerateRequest(w, r)
	if !ok {
		return
	}
	report, err := s.pipeline.Run(r.Context(), chi.URLParam(r, "userID"), responses)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, report)
}

func (s *apiServer) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	report, err := s.pipeline.Latest(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "no reports for user")
		return
	}
	writeJSONResponse(w, http.StatusOK, report)
}

func (s *apiServer) handleListReports(w http.ResponseWriter, r *http.Request) {
	userID, err := pipeline.CleanUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	filter := store.ReportFilter{
		UserID:    userID,
		RiskLabel: r.URL.Query().Get("risk_label"),
	}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be an RFC 3339 timestamp")
			return
		}
		filter.Since = since
	}
	reports, err := s.store.ListReports(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if reports == nil {
		reports = []model.StoredReport{}
	}
	writeJSONResponse(w, http.StatusOK, reports)
}

func (s *apiServer) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, report)
}

func (s *apiServer) handleExportReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	wb, err := export.Workbook(report)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="report-`+id+`.xlsx"`)
	if err := wb.Write(w); err != nil {
		zap.L().Error("serve: write workbook failed", zap.String("report_id", id), zap.Error(err))
	}
}

// decodeGenerateRequest reads and, when strict is set, validates the body.
// It writes the error response itself and returns false on failure.
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (model.ResponseMap, bool) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if req.Responses == nil {
		req.Responses = model.ResponseMap{}
	}
	if req.Strict {
		normalized, err := questionnaire.ValidateAll(req.Responses)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, false
		}
		req.Responses = normalized
	}
	return req.Responses, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidUser):
		writeError(w, http.StatusBadRequest, "invalid user id")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "report not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		zap.L().Error("serve: request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONResponse(w, status, map[string]string{"error": msg})
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("serve: encode response failed", zap.Error(err))
	}
}
