package store

import (
	"io/fs"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names, "at least one migration must be embedded")

	// Glob order is the apply order, so file names must already be sorted.
	assert.True(t, sort.StringsAreSorted(names))

	for _, name := range names {
		body, err := migrationFiles.ReadFile(name)
		require.NoError(t, err)
		assert.NotEmpty(t, body, "migration %s is empty", name)
	}
}
