package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ledgerline/backend/internal/auth"
	"github.com/ledgerline/backend/internal/model"
)

type predictSpendingRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	AccountIDs  []string `json:"account_ids,omitempty"`
}

func (h *Handler) predictSpending(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req predictSpendingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		h.respondError(w, invalidParam("start_date"))
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.respondError(w, invalidParam("end_date"))
		return
	}

	prediction, err := h.svc.PredictSpending(r.Context(), model.PredictionQuery{
		UserID:    claims.UID,
		StartDate: start,
		EndDate:   end,
		Filter: model.TransactionFilter{
			CategoryIDs: req.CategoryIDs,
			AccountIDs:  req.AccountIDs,
		},
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, prediction)
}

type detectAnomaliesRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Sensitivity float64  `json:"sensitivity"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	AccountIDs  []string `json:"account_ids,omitempty"`
}

func (h *Handler) detectAnomalies(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req detectAnomaliesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		h.respondError(w, invalidParam("start_date"))
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.respondError(w, invalidParam("end_date"))
		return
	}

	report, err := h.svc.DetectAnomalies(r.Context(), model.AnomalyQuery{
		UserID:      claims.UID,
		StartDate:   start,
		EndDate:     end,
		Sensitivity: req.Sensitivity,
		Filter: model.TransactionFilter{
			CategoryIDs: req.CategoryIDs,
			AccountIDs:  req.AccountIDs,
		},
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, report)
}

func (h *Handler) analyzeTrends(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	start, end, err := queryWindow(r, time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}

	analysis, err := h.svc.AnalyzeTrends(r.Context(), claims.UID, start, end)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, analysis)
}

func (h *Handler) dailyAggregates(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	start, end, err := queryWindow(r, time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}

	filter := model.TransactionFilter{}
	if ids := r.URL.Query()["category_id"]; len(ids) > 0 {
		filter.CategoryIDs = ids
	}

	series, err := h.svc.DailyAggregates(r.Context(), claims.UID, start, end, filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, series)
}

type trainModelRequest struct {
	Type       string             `json:"type"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

func (h *Handler) trainModel(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req trainModelRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	m, err := h.svc.TrainModel(r.Context(), claims.UID, req.Type, req.Parameters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, m)
}

func (h *Handler) generateScenarios(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	years := queryInt(r, "years", 5)
	scenarios, err := h.svc.GenerateScenarios(r.Context(), claims.UID, years)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, scenarios)
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	months := queryInt(r, "months", 12)
	forecast, err := h.svc.Forecast(r.Context(), claims.UID, months)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, forecast)
}

func (h *Handler) predictCashFlow(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	days := queryInt(r, "days", 30)
	prediction, err := h.svc.PredictCashFlow(r.Context(), claims.UID, days)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, prediction)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
