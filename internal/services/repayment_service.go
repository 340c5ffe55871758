package services

import (
	"context"

	"chit-backend/internal/models"
	"chit-backend/internal/repositories"
)

// RepaymentStore runs a repayment unit of consistency. The pgx implementation
// backs it with a single database transaction and a row lock on the member.
type RepaymentStore interface {
	Transact(ctx context.Context, fn func(repositories.RepaymentTx) error) error
}

// RepaymentService is the only path that touches the member balance and the
// ledger together. The member row stays authoritative for "current", the
// ledger for "history"; both writes commit or roll back as one.
type RepaymentService struct {
	Store RepaymentStore
}

func NewRepaymentService(store RepaymentStore) *RepaymentService {
	return &RepaymentService{Store: store}
}

// ClampPending computes the balance after a payment. Overpayment clamps to
// zero; the excess is not tracked or refunded.
func ClampPending(pending, amount float64) float64 {
	next := pending - amount
	if next < 0 {
		return 0
	}
	return next
}

// Repay applies a payment to the member's outstanding balance and appends the
// matching ledger entry, atomically
func (s *RepaymentService) Repay(ctx context.Context, req *models.RepaymentRequest) (*models.Transaction, error) {
	if req.AmountToPay <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.PaymentMethods[req.PaymentMethod] {
		return nil, ErrInvalidPaymentMethod
	}

	var txn *models.Transaction
	err := s.Store.Transact(ctx, func(tx repositories.RepaymentTx) error {
		member, err := tx.MemberForUpdate(ctx, req.MemberID)
		if err != nil {
			return err
		}

		newPending := ClampPending(member.Pending, req.AmountToPay)
		if err := tx.UpdateMemberPending(ctx, member.ID, newPending); err != nil {
			return err
		}

		txn = &models.Transaction{
			MemberID:        member.ID,
			MemberName:      member.Name, // name snapshot at payment time
			AmountPaid:      req.AmountToPay,
			PaymentMethod:   req.PaymentMethod,
			PreviousPending: member.Pending,
			NewPending:      newPending,
		}
		return tx.AppendTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
