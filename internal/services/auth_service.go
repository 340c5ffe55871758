package services

import (
	"context"
	"errors"
	"log"

	"chit-backend/internal/auth"
	"chit-backend/internal/cache"
	"chit-backend/internal/models"
	"chit-backend/internal/repositories"
)

// StaffStore is satisfied by *repositories.StaffRepository
type StaffStore interface {
	Create(ctx context.Context, s *models.StaffAccount) error
	Get(ctx context.Context, id int) (*models.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error)
}

type AuthService struct {
	Store      StaffStore
	JWTManager *auth.JWTManager
}

func NewAuthService(store StaffStore, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		Store:      store,
		JWTManager: jwtManager,
	}
}

// Register creates a staff account with a bcrypt-hashed password. A duplicate
// email surfaces as repositories.ErrDuplicateEmail and leaves the existing
// account untouched.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.StaffAccount, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	staff := &models.StaffAccount{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
	}
	if err := s.Store.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Login verifies credentials and issues a JWT. A wrong password or unknown
// email is a no-match result (ErrInvalidCredentials), never a storage error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrMissingFields
	}

	// Redis fast path: skip bcrypt for recently verified credentials
	if staffID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		if staff, err := s.Store.Get(ctx, staffID); err == nil {
			return s.JWTManager.GenerateToken(staff)
		}
		cache.InvalidateAuth(ctx, req.Email, req.Password)
	}

	staff, err := s.Store.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !auth.VerifyPassword(staff.PasswordHash, req.Password) {
		return "", ErrInvalidCredentials
	}

	cache.CacheAuth(ctx, req.Email, req.Password, staff.ID)

	token, err := s.JWTManager.GenerateToken(staff)
	if err != nil {
		log.Printf("[Auth] token generation failed for staff %d: %v", staff.ID, err)
		return "", err
	}
	return token, nil
}
