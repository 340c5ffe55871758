package services

import (
	"context"

	"chit-backend/internal/models"
)

// MemberStore is satisfied by *repositories.MemberRepository
type MemberStore interface {
	Create(ctx context.Context, m *models.Member) error
	Get(ctx context.Context, id int) (*models.Member, error)
	List(ctx context.Context) ([]*models.Member, error)
	ListWithPending(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, m *models.Member) error
	UpdateName(ctx context.Context, id int, name string) error
	UpdatePhone(ctx context.Context, id int, phone string) error
	Delete(ctx context.Context, id int) error
}

type MemberService struct {
	Repo MemberStore
}

func NewMemberService(repo MemberStore) *MemberService {
	return &MemberService{Repo: repo}
}

func (s *MemberService) CreateMember(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, ErrMissingFields
	}
	status := req.Status
	if status == "" {
		status = models.MemberStatusActive
	}
	if status != models.MemberStatusActive && status != models.MemberStatusInactive {
		return nil, ErrInvalidStatus
	}

	member := &models.Member{
		Name:       req.Name,
		Phone:      req.Phone,
		Status:     status,
		LoanAmount: req.LoanAmount,
		Pending:    req.Pending,
		Interest:   req.Interest,
	}

	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) GetMember(ctx context.Context, id int) (*models.Member, error) {
	return s.Repo.Get(ctx, id)
}

func (s *MemberService) ListMembers(ctx context.Context) ([]*models.Member, error) {
	return s.Repo.List(ctx)
}

// ListPendingMembers returns members still owing money, for the repayment
// eligibility screen
func (s *MemberService) ListPendingMembers(ctx context.Context) ([]*models.Member, error) {
	return s.Repo.ListWithPending(ctx)
}

// UpdateMember replaces all mutable fields of the member row
func (s *MemberService) UpdateMember(ctx context.Context, id int, req *models.UpdateMemberRequest) (*models.Member, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, ErrMissingFields
	}
	if req.Status != models.MemberStatusActive && req.Status != models.MemberStatusInactive {
		return nil, ErrInvalidStatus
	}

	member := &models.Member{
		ID:         id,
		Name:       req.Name,
		Phone:      req.Phone,
		Status:     req.Status,
		LoanAmount: req.LoanAmount,
		Pending:    req.Pending,
		Interest:   req.Interest,
	}

	if err := s.Repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *MemberService) RenameMember(ctx context.Context, id int, name string) (*models.Member, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	if err := s.Repo.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *MemberService) ChangeMemberPhone(ctx context.Context, id int, phone string) (*models.Member, error) {
	if phone == "" {
		return nil, ErrMissingFields
	}
	if err := s.Repo.UpdatePhone(ctx, id, phone); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *MemberService) DeleteMember(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
