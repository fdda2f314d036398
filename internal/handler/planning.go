package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ledgerline/backend/internal/auth"
	"github.com/ledgerline/backend/internal/model"
)

func (h *Handler) budgetReport(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	report, err := h.svc.BudgetReport(r.Context(), claims.UID, mux.Vars(r)["budgetID"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, report)
}

func (h *Handler) listBudgetReports(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	reports, err := h.svc.ListBudgetReports(r.Context(), claims.UID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, reports)
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	recs, err := h.svc.Recommendations(r.Context(), claims.UID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, recs)
}

type createGoalRequest struct {
	Name                string  `json:"name"`
	TargetAmount        float64 `json:"target_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	TargetDate          string  `json:"target_date"`
}

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	targetDate := time.Time{}
	if req.TargetDate != "" {
		if targetDate, err = parseDate(req.TargetDate); err != nil {
			h.respondError(w, invalidParam("target_date"))
			return
		}
	}

	goal, err := h.svc.CreateGoal(r.Context(), claims.UID, req.Name, req.TargetAmount, req.MonthlyContribution, targetDate)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, goal)
}

func (h *Handler) getGoal(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	goal, err := h.svc.GetGoal(r.Context(), claims.UID, mux.Vars(r)["goalID"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, goal)
}

func (h *Handler) listGoals(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	goals, err := h.svc.ListGoals(r.Context(), claims.UID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, goals)
}

type updateGoalProgressRequest struct {
	CurrentAmount float64 `json:"current_amount"`
}

func (h *Handler) updateGoalProgress(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req updateGoalProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	goal, err := h.svc.UpdateGoalProgress(r.Context(), claims.UID, mux.Vars(r)["goalID"], req.CurrentAmount)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, goal)
}

func (h *Handler) projectRetirement(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAuth(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}

	var plan model.RetirementPlan
	if err := decodeJSON(r, &plan); err != nil {
		h.respondError(w, err)
		return
	}

	projected, err := h.svc.ProjectRetirement(r.Context(), plan)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, projected)
}

type debtPayoffRequest struct {
	Debts        []model.Debt       `json:"debts"`
	Strategy     model.DebtStrategy `json:"strategy"`
	ExtraPayment float64            `json:"extra_payment"`
}

func (h *Handler) planDebtPayoff(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAuth(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}

	var req debtPayoffRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	plan, err := h.svc.PlanDebtPayoff(r.Context(), req.Debts, req.Strategy, req.ExtraPayment)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, plan)
}
