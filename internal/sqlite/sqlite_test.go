package sqlite_test

import (
	"context"
	"io"
	"testing"

	"github.com/RaheesAhmed/growthcompass/internal/sqlite"
	"github.com/RaheesAhmed/growthcompass/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO assessments (id, role_name, level_index, responses) VALUES (?, ?, ?, ?)",
		"a-1", "Manager", 3, "[]")
	require.NoError(t, err)

	var roleName string
	err = db.ReadOnly.QueryRowContext(ctx,
		"SELECT role_name FROM assessments WHERE id = ?", "a-1").Scan(&roleName)
	require.NoError(t, err)
	require.Equal(t, "Manager", roleName)

	// The read-only pool must reject writes.
	_, err = db.ReadOnly.ExecContext(ctx, "DELETE FROM assessments")
	require.Error(t, err)
}

func TestNewDatabaseRejectsOutOfRangeLevel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO assessments (id, role_name, level_index, responses) VALUES (?, ?, ?, ?)",
		"a-2", "Manager", 12, "[]")
	require.Error(t, err)
}
