package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"chit-backend/internal/middleware"
	"chit-backend/internal/repositories"
	"chit-backend/internal/services"
	"chit-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ReconciliationHandler struct {
	Service *services.ReconciliationService
}

func NewReconciliationHandler(s *services.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{Service: s}
}

// ReconcileMember replays a member's ledger against the live balance and
// reports any inconsistencies
func (h *ReconciliationHandler) ReconcileMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	report, err := h.Service.Reconcile(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		log.Printf("[Reconcile] member %d failed: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Audit trail: who ran the check and what it found
	staffID, _ := middleware.GetStaffIDFromContext(r.Context())
	email, _ := middleware.GetEmailFromContext(r.Context())
	log.Printf("[Reconcile] member %d checked by staff %d (%s): consistent=%v issues=%d",
		id, staffID, email, report.Consistent, len(report.Issues))

	utils.JSON(w, http.StatusOK, report)
}
