package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	query := "UPDATE fixtures SET status = ?, score1 = ? WHERE id = ?"
	assert.Equal(t, "UPDATE fixtures SET status = $1, score1 = $2 WHERE id = $3", Rebind(DriverPostgres, query))
	assert.Equal(t, query, Rebind(DriverSQLite, query))
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn, err := Connect(DriverSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, conn))
	require.NoError(t, Migrate(ctx, conn))

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM fixtures").Scan(&count))
	assert.Zero(t, count)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect("mysql", "dsn", time.Second)
	assert.Error(t, err)
}
