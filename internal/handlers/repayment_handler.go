package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chit-backend/internal/metrics"
	"chit-backend/internal/models"
	"chit-backend/internal/repositories"
	"chit-backend/internal/services"
	"chit-backend/pkg/utils"
)

type RepaymentHandler struct {
	Service *services.RepaymentService
}

func NewRepaymentHandler(s *services.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{Service: s}
}

// CreateRepayment applies a payment against a member's outstanding balance
// and appends the ledger entry in one database transaction
func (h *RepaymentHandler) CreateRepayment(w http.ResponseWriter, r *http.Request) {
	var req models.RepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.Service.Repay(r.Context(), &req)
	if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrInvalidPaymentMethod) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		metrics.RepaymentsTotal.WithLabelValues(req.PaymentMethod, "error").Inc()
		log.Printf("[Repayment] member %d amount %.2f failed: %v", req.MemberID, req.AmountToPay, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.RepaymentsTotal.WithLabelValues(req.PaymentMethod, "success").Inc()
	metrics.RepaymentAmount.Add(req.AmountToPay)

	utils.JSON(w, http.StatusCreated, models.RepaymentResponse{
		Success:     true,
		Transaction: txn,
		Pending:     txn.NewPending,
	})
}
