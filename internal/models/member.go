package models

import "time"

// Member statuses
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

type Member struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	LoanAmount float64   `json:"loan_amount"`
	Pending    float64   `json:"pending"`
	Interest   float64   `json:"interest"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateMemberRequest represents the request body for creating a member
type CreateMemberRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Status     string  `json:"status"`
	LoanAmount float64 `json:"loan_amount"`
	Pending    float64 `json:"pending"`
	Interest   float64 `json:"interest"`
}

// UpdateMemberRequest represents the request body for a full-row member update
type UpdateMemberRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Status     string  `json:"status"`
	LoanAmount float64 `json:"loan_amount"`
	Pending    float64 `json:"pending"`
	Interest   float64 `json:"interest"`
}
