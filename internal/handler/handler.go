package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/auth"
	"github.com/ledgerline/backend/internal/engine"
	"github.com/ledgerline/backend/internal/service"
	"github.com/ledgerline/backend/internal/store"
)

// Handler exposes the analytics service over JSON HTTP.
type Handler struct {
	svc *service.AnalyticsService
	log *logrus.Logger

	// schedulerSecret authorizes unauthenticated job endpoints; empty
	// disables the secret path entirely.
	schedulerSecret string
}

func New(svc *service.AnalyticsService, log *logrus.Logger, schedulerSecret string) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{svc: svc, log: log, schedulerSecret: schedulerSecret}
}

// Routes registers every endpoint on a new router. Authentication middleware
// is applied by the caller.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/predictions/spending", h.predictSpending).Methods(http.MethodPost)
	api.HandleFunc("/anomalies/detect", h.detectAnomalies).Methods(http.MethodPost)
	api.HandleFunc("/trends", h.analyzeTrends).Methods(http.MethodGet)
	api.HandleFunc("/aggregates/daily", h.dailyAggregates).Methods(http.MethodGet)
	api.HandleFunc("/models/train", h.trainModel).Methods(http.MethodPost)

	api.HandleFunc("/scenarios", h.generateScenarios).Methods(http.MethodGet)
	api.HandleFunc("/forecast", h.forecast).Methods(http.MethodGet)
	api.HandleFunc("/cashflow", h.predictCashFlow).Methods(http.MethodGet)

	api.HandleFunc("/budgets/reports", h.listBudgetReports).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{budgetID}/report", h.budgetReport).Methods(http.MethodGet)
	api.HandleFunc("/recommendations", h.recommendations).Methods(http.MethodGet)

	api.HandleFunc("/goals", h.createGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals", h.listGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals/{goalID}", h.getGoal).Methods(http.MethodGet)
	api.HandleFunc("/goals/{goalID}/progress", h.updateGoalProgress).Methods(http.MethodPut)

	api.HandleFunc("/retirement/project", h.projectRetirement).Methods(http.MethodPost)
	api.HandleFunc("/debts/payoff", h.planDebtPayoff).Methods(http.MethodPost)

	r.HandleFunc("/jobs/recurring/run", h.runRecurring).Methods(http.MethodPost)
	r.HandleFunc("/jobs/digest/run", h.runDigest).Methods(http.MethodPost)

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.log.WithError(err).Error("encoding response failed")
		}
	}
}

// respondError maps the service error taxonomy to HTTP status codes.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrUpstreamData):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		h.log.WithError(err).Error("request failed")
	}
	h.respond(w, status, errorResponse{Error: err.Error()})
}

func invalidParam(name string) error {
	return fmt.Errorf("%w: %s", engine.ErrInvalidParameter, name)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return engine.ErrInvalidParameter
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// queryWindow reads start/end query parameters, defaulting to the trailing
// 90 days.
func queryWindow(r *http.Request, now time.Time) (start, end time.Time, err error) {
	start = now.AddDate(0, 0, -90)
	end = now
	if raw := r.URL.Query().Get("start"); raw != "" {
		if start, err = parseDate(raw); err != nil {
			return start, end, engine.ErrInvalidParameter
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if end, err = parseDate(raw); err != nil {
			return start, end, engine.ErrInvalidParameter
		}
	}
	return start, end, nil
}
