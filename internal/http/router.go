package http

import (
	"chit-backend/internal/handlers"
	"chit-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the public REST surface. The member, ledger and auth routes
// keep the paths and status codes of the legacy admin UI; the reconciliation
// audit endpoint is staff-only behind JWT auth.
func NewRouter(
	memberHandler *handlers.MemberHandler,
	transactionHandler *handlers.TransactionHandler,
	repaymentHandler *handlers.RepaymentHandler,
	authHandler *handlers.AuthHandler,
	reconciliationHandler *handlers.ReconciliationHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Members
	r.HandleFunc("/users", memberHandler.ListMembers).Methods("GET")
	r.HandleFunc("/users", memberHandler.CreateMember).Methods("POST")
	r.HandleFunc("/users/pending", memberHandler.ListPendingMembers).Methods("GET")
	r.HandleFunc("/users/{id}", memberHandler.GetMember).Methods("GET")
	r.HandleFunc("/users/{id}", memberHandler.UpdateMember).Methods("PUT")
	r.HandleFunc("/users/{id}", memberHandler.DeleteMember).Methods("DELETE")
	r.HandleFunc("/users/{id}/name", memberHandler.RenameMember).Methods("PATCH")
	r.HandleFunc("/users/{id}/phone", memberHandler.ChangeMemberPhone).Methods("PATCH")
	r.HandleFunc("/users/{id}/transactions", transactionHandler.ListMemberTransactions).Methods("GET")

	// Ledger
	r.HandleFunc("/transactions", transactionHandler.ListTransactions).Methods("GET")
	r.HandleFunc("/transactions", transactionHandler.AppendTransaction).Methods("POST")

	// Repayments (atomic balance update + ledger append)
	r.HandleFunc("/repayments", repaymentHandler.CreateRepayment).Methods("POST")

	// Auth
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	// Staff-only audit routes
	reconcileAPI := r.PathPrefix("/api/reconciliation").Subrouter()
	reconcileAPI.Use(authMiddleware.Authenticate)
	reconcileAPI.HandleFunc("/{id}", reconciliationHandler.ReconcileMember).Methods("GET")

	// Observability
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
