package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"chit-backend/internal/models"
	"chit-backend/internal/services"
	"chit-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	Service *services.TransactionService
}

func NewTransactionHandler(s *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{Service: s}
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.Service.ListTransactions(r.Context())
	if err != nil {
		log.Printf("[Ledger] list failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) ListMemberTransactions(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	transactions, err := h.Service.ListByMember(r.Context(), memberID)
	if err != nil {
		log.Printf("[Ledger] list for member %d failed: %v", memberID, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, transactions)
}

// AppendTransaction records a caller-computed ledger entry. Kept for the
// legacy admin UI; the atomic path is POST /repayments.
func (h *TransactionHandler) AppendTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.Service.Append(r.Context(), &req)
	if errors.Is(err, services.ErrMissingFields) {
		utils.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if errors.Is(err, services.ErrInvalidAmount) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("[Ledger] append failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"transaction_id": txn.ID,
		"message":        "Transaction recorded successfully",
	})
}
