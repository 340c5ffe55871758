package health

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	pingErr error
	members int64
	ledger  int64
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeStore) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{members: f.members, ledger: f.ledger}
}

type fakeRow struct {
	members int64
	ledger  int64
}

func (r fakeRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.members
	*dest[1].(*int64) = r.ledger
	return nil
}

func TestCheckBasicHealthy(t *testing.T) {
	checker := NewHealthChecker(&fakeStore{members: 12, ledger: 57})

	status := checker.CheckBasic()
	require.Equal(t, "healthy", status.Status)
	require.Equal(t, "healthy", status.Database.Status)
	require.Equal(t, int64(12), status.Members)
	require.Equal(t, int64(57), status.Ledger)
}

func TestCheckBasicUnreachableDatabase(t *testing.T) {
	checker := NewHealthChecker(&fakeStore{pingErr: errors.New("connection refused")})

	status := checker.CheckBasic()
	require.Equal(t, "unhealthy", status.Status)
	require.Equal(t, "unhealthy", status.Database.Status)
	require.Zero(t, status.Members)
	require.Zero(t, status.Ledger)
}
