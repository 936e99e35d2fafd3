// Package dbtest opens a migrated in-memory SQLite gateway for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chagual/internal/config"
	"chagual/internal/database"
	"chagual/internal/gateway"
)

// NewGateway returns a gateway over a fresh in-memory database. Every call
// gets its own database.
func NewGateway(t testing.TB) (*gateway.Gateway, *gorm.DB) {
	t.Helper()

	ctx := context.Background()
	db, d, err := database.Connect(ctx, config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(ctx, db, d))

	return gateway.New(db, d), db
}
