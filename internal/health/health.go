package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Store is the slice of the pgx pool the checker needs
type Store interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type HealthChecker struct {
	db Store
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Members  int64          `json:"members"`
	Ledger   int64          `json:"ledger_entries"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(db Store) *HealthChecker {
	return &HealthChecker{db: db}
}

// CheckBasic pings the database and, when reachable, reports the member and
// ledger row counts so the probe doubles as a data sanity glance
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := HealthStatus{
		Status:   "healthy",
		Database: dbHealth,
	}
	if dbHealth.Status != "healthy" {
		status.Status = "unhealthy"
		return status
	}

	status.Members, status.Ledger = h.countRows()
	return status
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) countRows() (members, ledger int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := h.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM members), (SELECT COUNT(*) FROM transactions)`,
	).Scan(&members, &ledger)
	if err != nil {
		return 0, 0
	}
	return members, ledger
}
