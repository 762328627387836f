package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_community.sql": {Data: []byte("SELECT 1;")},
		"migrations/0001_init.sql":      {Data: []byte("SELECT 1;")},
		"migrations/README.md":          {Data: []byte("docs")},
	}

	names, err := migrationNames(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_community.sql"}, names)
}

func TestMigrationNames_Embedded(t *testing.T) {
	names, err := migrationNames(migrationFS)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])
}
