package services

import (
	"context"

	"chit-backend/internal/models"
)

// LedgerStore is satisfied by *repositories.TransactionRepository
type LedgerStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	List(ctx context.Context) ([]*models.Transaction, error)
	ListByMember(ctx context.Context, memberID int) ([]*models.Transaction, error)
}

type TransactionService struct {
	Repo LedgerStore
}

func NewTransactionService(repo LedgerStore) *TransactionService {
	return &TransactionService{Repo: repo}
}

// Append records a caller-computed ledger entry. The pending snapshots are
// trusted as supplied; the atomic repayment flow computes them itself.
func (s *TransactionService) Append(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.MemberID == 0 || req.MemberName == "" || req.AmountPaid == 0 || req.PaymentMethod == "" {
		return nil, ErrMissingFields
	}
	if req.AmountPaid < 0 {
		return nil, ErrInvalidAmount
	}

	txn := &models.Transaction{
		MemberID:        req.MemberID,
		MemberName:      req.MemberName,
		AmountPaid:      req.AmountPaid,
		PaymentMethod:   req.PaymentMethod,
		PreviousPending: req.PreviousPending,
		NewPending:      req.NewPending,
	}

	if err := s.Repo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	return s.Repo.List(ctx)
}

func (s *TransactionService) ListByMember(ctx context.Context, memberID int) ([]*models.Transaction, error) {
	return s.Repo.ListByMember(ctx, memberID)
}
