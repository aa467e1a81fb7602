package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustTables(t *testing.T) *Tables {
	t.Helper()
	tables, err := LoadDefaultTables()
	require.NoError(t, err)
	return tables
}
