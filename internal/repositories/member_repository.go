package repositories

import (
	"context"
	"errors"

	"chit-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	DB *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{DB: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *models.Member) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO members(name, phone, status, loan_amount, pending, interest)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		m.Name, m.Phone, m.Status, m.LoanAmount, m.Pending, m.Interest,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MemberRepository) Get(ctx context.Context, id int) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, phone, status, loan_amount, pending, interest, created_at, updated_at
         FROM members WHERE id=$1`, id)

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

func (r *MemberRepository) List(ctx context.Context) ([]*models.Member, error) {
	return r.list(ctx,
		`SELECT id, name, phone, status, loan_amount, pending, interest, created_at, updated_at
         FROM members ORDER BY id DESC`)
}

// ListWithPending returns members eligible for repayment, i.e. with an
// outstanding balance above zero
func (r *MemberRepository) ListWithPending(ctx context.Context) ([]*models.Member, error) {
	return r.list(ctx,
		`SELECT id, name, phone, status, loan_amount, pending, interest, created_at, updated_at
         FROM members WHERE pending > 0 ORDER BY id DESC`)
}

func (r *MemberRepository) list(ctx context.Context, query string) ([]*models.Member, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*models.Member{}
	for rows.Next() {
		var member models.Member
		err := rows.Scan(&member.ID, &member.Name, &member.Phone, &member.Status,
			&member.LoanAmount, &member.Pending, &member.Interest, &member.CreatedAt, &member.UpdatedAt)
		if err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	return members, rows.Err()
}

func (r *MemberRepository) Update(ctx context.Context, m *models.Member) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE members SET name=$1, phone=$2, status=$3, loan_amount=$4, pending=$5, interest=$6,
         updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		m.Name, m.Phone, m.Status, m.LoanAmount, m.Pending, m.Interest, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateName changes only the member's name
func (r *MemberRepository) UpdateName(ctx context.Context, id int, name string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE members SET name=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePhone changes only the member's phone number
func (r *MemberRepository) UpdatePhone(ctx context.Context, id int, phone string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE members SET phone=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, phone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a member by id. Deleting an absent id is not an error, and
// the member's ledger rows are intentionally left untouched.
func (r *MemberRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM members WHERE id=$1`, id)
	return err
}
