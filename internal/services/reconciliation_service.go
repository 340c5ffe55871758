package services

import (
	"context"
	"fmt"
	"math"

	"chit-backend/internal/models"
)

// Snapshots are NUMERIC(12,2) in the database, so any drift beyond half a
// paisa is real corruption, not float noise.
const reconcileEpsilon = 0.005

type memberGetter interface {
	Get(ctx context.Context, id int) (*models.Member, error)
}

type memberLedger interface {
	ListByMember(ctx context.Context, memberID int) ([]*models.Transaction, error)
}

// ReconciliationService replays a member's ledger against the live balance.
// The ledger is a derived audit trail; this check catches rows written outside
// the atomic repayment path (e.g. through the raw append endpoint).
type ReconciliationService struct {
	Members memberGetter
	Ledger  memberLedger
}

func NewReconciliationService(members memberGetter, ledger memberLedger) *ReconciliationService {
	return &ReconciliationService{Members: members, Ledger: ledger}
}

func (s *ReconciliationService) Reconcile(ctx context.Context, memberID int) (*models.ReconciliationReport, error) {
	member, err := s.Members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	entries, err := s.Ledger.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	report := &models.ReconciliationReport{
		MemberID:      memberID,
		EntryCount:    len(entries),
		MemberPending: member.Pending,
		LedgerPending: member.Pending,
		Issues:        []string{},
	}

	for i, entry := range entries {
		want := ClampPending(entry.PreviousPending, entry.AmountPaid)
		if !closeEnough(entry.NewPending, want) {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"transaction %d: new_pending %.2f does not match max(0, %.2f - %.2f)",
				entry.ID, entry.NewPending, entry.PreviousPending, entry.AmountPaid))
		}
		if i > 0 {
			prev := entries[i-1]
			if !closeEnough(entry.PreviousPending, prev.NewPending) {
				report.Issues = append(report.Issues, fmt.Sprintf(
					"transaction %d: previous_pending %.2f does not chain from transaction %d new_pending %.2f",
					entry.ID, entry.PreviousPending, prev.ID, prev.NewPending))
			}
		}
	}

	if len(entries) > 0 {
		last := entries[len(entries)-1]
		report.LedgerPending = last.NewPending
		if !closeEnough(last.NewPending, member.Pending) {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"member pending %.2f does not match latest ledger new_pending %.2f",
				member.Pending, last.NewPending))
		}
	}

	report.Consistent = len(report.Issues) == 0
	return report, nil
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < reconcileEpsilon
}
