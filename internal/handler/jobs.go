package handler

import (
	"net/http"

	"github.com/ledgerline/backend/internal/auth"
)

// schedulerAuthorized checks the shared-secret header used by the scheduler
// to invoke job endpoints without a user token.
func (h *Handler) schedulerAuthorized(r *http.Request) bool {
	return h.schedulerSecret != "" && r.Header.Get("X-Scheduler-Secret") == h.schedulerSecret
}

func (h *Handler) runRecurring(w http.ResponseWriter, r *http.Request) {
	if !h.schedulerAuthorized(r) {
		if _, err := auth.RequireAuth(r.Context()); err != nil {
			h.respondError(w, err)
			return
		}
	}

	summary, err := h.svc.ProcessRecurringTransactions(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, summary)
}

func (h *Handler) runDigest(w http.ResponseWriter, r *http.Request) {
	// Scheduler runs sweep every user; an authenticated user may only
	// trigger their own digest.
	userID := ""
	if !h.schedulerAuthorized(r) {
		claims, err := auth.RequireAuth(r.Context())
		if err != nil {
			h.respondError(w, err)
			return
		}
		userID = claims.UID
	}

	summary, err := h.svc.GenerateWeeklyDigest(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, summary)
}
