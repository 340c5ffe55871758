package repositories

import (
	"context"
	"errors"
	"fmt"

	"chit-backend/internal/models"
	"chit-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepaymentTx is the unit-of-consistency view used by the repayment operation.
// All three calls run inside one database transaction, so the member update
// and the ledger append either both commit or both roll back.
type RepaymentTx interface {
	// MemberForUpdate locks the member row for the duration of the
	// transaction, serializing concurrent repayments against the same member.
	MemberForUpdate(ctx context.Context, id int) (*models.Member, error)
	UpdateMemberPending(ctx context.Context, id int, pending float64) error
	AppendTransaction(ctx context.Context, t *models.Transaction) error
}

type RepaymentRepository struct {
	DB *pgxpool.Pool
}

func NewRepaymentRepository(db *pgxpool.Pool) *RepaymentRepository {
	return &RepaymentRepository{DB: db}
}

// Transact runs fn inside a database transaction and commits only if fn
// returns nil
func (r *RepaymentRepository) Transact(ctx context.Context, fn func(RepaymentTx) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin repayment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&repaymentTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type repaymentTx struct {
	tx pgx.Tx
}

func (t *repaymentTx) MemberForUpdate(ctx context.Context, id int) (*models.Member, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT id, name, phone, status, loan_amount, pending, interest, created_at, updated_at
         FROM members WHERE id=$1 FOR UPDATE`, id)

	var member models.Member
	err := row.Scan(&member.ID, &member.Name, &member.Phone, &member.Status,
		&member.LoanAmount, &member.Pending, &member.Interest, &member.CreatedAt, &member.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (t *repaymentTx) UpdateMemberPending(ctx context.Context, id int, pending float64) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE members SET pending=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, pending, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *repaymentTx) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO transactions(member_id, member_name, amount_paid, payment_method, previous_pending, new_pending)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING transaction_id, payment_date`,
		txn.MemberID, txn.MemberName, txn.AmountPaid, txn.PaymentMethod, txn.PreviousPending, txn.NewPending,
	).Scan(&txn.ID, &txn.PaymentDate)
	if err != nil {
		return err
	}
	txn.PaymentDate = timeutil.ToIST(txn.PaymentDate)
	return nil
}
