package migrate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSQLMigrationThenValidate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Feedback Index!", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260203040506_add_feedback_index.sql"), path)
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "add feedback index", now)
	assert.Error(t, err, "same version and name should collide")

	_, err = CreateSQLMigration(dir, "!!!", now)
	assert.Error(t, err)
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_no_down.sql"), []byte("-- +goose Up\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}
