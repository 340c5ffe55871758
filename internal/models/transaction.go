package models

import "time"

// Payment methods accepted for repayments. The set is table-driven so new
// methods can be added without touching the repayment logic.
var PaymentMethods = map[string]bool{
	"Cash":          true,
	"UPI":           true,
	"Bank Transfer": true,
}

// Transaction is one immutable repayment event in the ledger. MemberName is a
// snapshot of the member's name at payment time and does not track renames.
// JSON keys keep the legacy user_id/user_name wire names used by the admin UI.
type Transaction struct {
	ID              int       `json:"transaction_id"`
	MemberID        int       `json:"user_id"`
	MemberName      string    `json:"user_name"`
	AmountPaid      float64   `json:"amount_paid"`
	PaymentMethod   string    `json:"payment_method"`
	PreviousPending float64   `json:"previous_pending"`
	NewPending      float64   `json:"new_pending"`
	PaymentDate     time.Time `json:"payment_date"`
}

// CreateTransactionRequest is the raw ledger-append request body. The pending
// snapshots are caller-computed here; the atomic repayment flow computes them
// server-side instead.
type CreateTransactionRequest struct {
	MemberID        int     `json:"user_id"`
	MemberName      string  `json:"user_name"`
	AmountPaid      float64 `json:"amount_paid"`
	PaymentMethod   string  `json:"payment_method"`
	PreviousPending float64 `json:"previous_pending"`
	NewPending      float64 `json:"new_pending"`
}

// RepaymentRequest is the request body for the server-side repayment operation
type RepaymentRequest struct {
	MemberID      int     `json:"member_id"`
	AmountToPay   float64 `json:"amount_to_pay"`
	PaymentMethod string  `json:"payment_method"`
}

// RepaymentResponse returns the appended ledger row together with the member's
// balance after the payment
type RepaymentResponse struct {
	Success     bool         `json:"success"`
	Transaction *Transaction `json:"transaction"`
	Pending     float64      `json:"pending"`
}

// ReconciliationReport is the result of replaying a member's ledger against
// the live balance
type ReconciliationReport struct {
	MemberID      int      `json:"member_id"`
	Consistent    bool     `json:"consistent"`
	EntryCount    int      `json:"entry_count"`
	MemberPending float64  `json:"member_pending"`
	LedgerPending float64  `json:"ledger_pending"`
	Issues        []string `json:"issues"`
}
