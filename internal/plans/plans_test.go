package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Table(t *testing.T) {
	table := Default()
	all := table.All()

	require.Len(t, all, 4)
	assert.Equal(t, "basic", all[0].ID)
	assert.Equal(t, 512, all[0].MaxDimension)
	assert.Equal(t, "mega", all[3].ID)
	assert.Equal(t, "basic", table.DefaultPlan().ID)
}

func TestResolve(t *testing.T) {
	table := Default()

	testCases := []struct {
		hint string
		want string
	}{
		{"pro", "pro"},
		{"PRO", "pro"},
		{"  Ultra ", "ultra"},
		{"mega", "mega"},
		{"", "basic"},
		{"enterprise", "basic"},
		{"BASIC", "basic"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, table.Resolve(tc.hint).ID, "hint %q", tc.hint)
	}
}

func TestNext(t *testing.T) {
	table := Default()

	next, ok := table.Next(table.Resolve("basic"))
	require.True(t, ok)
	assert.Equal(t, "pro", next.ID)

	next, ok = table.Next(table.Resolve("ultra"))
	require.True(t, ok)
	assert.Equal(t, "mega", next.ID)

	_, ok = table.Next(table.Resolve("mega"))
	assert.False(t, ok, "top tier has no upgrade")

	_, ok = table.Next(Plan{ID: "unknown"})
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	table := Default()

	all := table.All()
	all[0].MaxDimension = 9999

	assert.Equal(t, 512, table.DefaultPlan().MaxDimension)
}

func TestParse_Validation(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "plans: []", "no plans"},
		{"missing id", "plans:\n  - name: X\n    max_dimension: 512", "has no id"},
		{"duplicate", "plans:\n  - id: a\n    max_dimension: 512\n  - id: A\n    max_dimension: 512", "duplicate"},
		{"too large", "plans:\n  - id: a\n    max_dimension: 2048", "outside"},
		{"too small", "plans:\n  - id: a\n    max_dimension: 32", "outside"},
		{"negative limit", "plans:\n  - id: a\n    max_dimension: 512\n    daily_limit: -1", "negative"},
		{"not yaml", "plans: [", "failed to parse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	content := "plans:\n  - id: free\n    max_dimension: 256\n  - id: paid\n    name: Paid\n    max_dimension: 1024\n    price: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "free", table.DefaultPlan().ID)
	assert.Equal(t, "free", table.DefaultPlan().Name)
	assert.Equal(t, "paid", table.Resolve("PAID").ID)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "basic", table.DefaultPlan().ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
