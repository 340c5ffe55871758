package repositories

import (
	"context"
	"fmt"

	"chit-backend/internal/models"
	"chit-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository is the append-only ledger store. No update or delete
// is exposed: immutability is structural.
type TransactionRepository struct {
	DB *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO transactions(member_id, member_name, amount_paid, payment_method, previous_pending, new_pending)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING transaction_id, payment_date`,
		t.MemberID, t.MemberName, t.AmountPaid, t.PaymentMethod, t.PreviousPending, t.NewPending,
	).Scan(&t.ID, &t.PaymentDate)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.PaymentDate = timeutil.ToIST(t.PaymentDate)
	return nil
}

// List returns the full ledger, newest first
func (r *TransactionRepository) List(ctx context.Context) ([]*models.Transaction, error) {
	return r.list(ctx,
		`SELECT transaction_id, member_id, member_name, amount_paid, payment_method,
                previous_pending, new_pending, payment_date
         FROM transactions ORDER BY transaction_id DESC`)
}

// ListByMember returns one member's ledger, oldest first so the balance chain
// can be replayed
func (r *TransactionRepository) ListByMember(ctx context.Context, memberID int) ([]*models.Transaction, error) {
	return r.list(ctx,
		`SELECT transaction_id, member_id, member_name, amount_paid, payment_method,
                previous_pending, new_pending, payment_date
         FROM transactions WHERE member_id=$1 ORDER BY transaction_id ASC`, memberID)
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Transaction, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.MemberID, &t.MemberName, &t.AmountPaid, &t.PaymentMethod,
			&t.PreviousPending, &t.NewPending, &t.PaymentDate)
		if err != nil {
			return nil, err
		}
		// Payment dates are rendered in IST everywhere
		t.PaymentDate = timeutil.ToIST(t.PaymentDate)
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}
