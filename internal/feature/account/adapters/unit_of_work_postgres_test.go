//go:build postgres

package adapters

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"account_backend/internal/feature/account/domain/entity"
	auditentity "account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/platform/db"
)

// setupPostgresDB connects to TEST_POSTGRES_DSN and starts from empty tables.
// Run with: TEST_POSTGRES_DSN=... go test -tags postgres ./internal/feature/account/adapters/
func setupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}
	gdb, err := db.PostgresOpener(dsn)
	require.NoError(t, err, "failed to connect to postgres")
	require.NoError(t, db.Migrate(gdb, &entity.User{}, &auditentity.UserEvent{}, &SessionModel{}))

	truncate := func() {
		require.NoError(t, gdb.Exec("TRUNCATE TABLE user_events, sessions, users RESTART IDENTITY CASCADE").Error)
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func TestAccountLifecycle_ConcurrentPasswordChanges_Postgres(t *testing.T) {
	l := newLifecycleOn(t, setupPostgresDB(t))
	assertConcurrentPasswordChanges(t, l, seedUser(t, l.db, 1))
}

func TestAccountLifecycle_ConcurrentDeletes_Postgres(t *testing.T) {
	l := newLifecycleOn(t, setupPostgresDB(t))
	assertConcurrentDeletes(t, l, seedUser(t, l.db, 1))
}
