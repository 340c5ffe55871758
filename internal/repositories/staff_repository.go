package repositories

import (
	"context"
	"errors"

	"chit-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type StaffRepository struct {
	DB *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *models.StaffAccount) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO staff_accounts(username, email, password_hash)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		s.Username, s.Email, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

func (r *StaffRepository) Get(ctx context.Context, id int) (*models.StaffAccount, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at
         FROM staff_accounts WHERE id=$1`, id)
	return scanStaff(row)
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at
         FROM staff_accounts WHERE email=$1`, email)
	return scanStaff(row)
}

func scanStaff(row pgx.Row) (*models.StaffAccount, error) {
	var staff models.StaffAccount
	err := row.Scan(&staff.ID, &staff.Username, &staff.Email, &staff.PasswordHash, &staff.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
