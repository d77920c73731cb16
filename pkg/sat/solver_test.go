package sat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutablePathDefaults(t *testing.T) {
	scenarios := map[string]string{
		"parafrost":    "parafrost",
		"Kissat":       "kissat",
		"glucosesimp":  "glucose-simp",
		"glucose-simp": "glucose-simp",
		"glucosesyrup": "glucose-syrup",
	}

	for solver, expected := range scenarios {
		//** Act
		path, err := ExecutablePath(solver, nil)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, expected, path)
	}
}

func TestExecutablePathConfigured(t *testing.T) {
	configured := map[string]string{
		"kissatPath": "/opt/kissat/bin/kissat",
		"cadical":    "/usr/local/bin/cadical",
		"minisat":    "  ",
	}

	path, err := ExecutablePath("kissat", configured)
	require.NoError(t, err)
	assert.Equal(t, "/opt/kissat/bin/kissat", path)

	path, err = ExecutablePath("cadical", configured)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/cadical", path)

	// Blank entries fall back to the default executable
	path, err = ExecutablePath("minisat", configured)
	require.NoError(t, err)
	assert.Equal(t, "minisat", path)
}

func TestExecutablePathPrefersExactKey(t *testing.T) {
	configured := map[string]string{
		"kissatPath":  "/opt/legacy/kissat",
		"kissat":      "/opt/kissat/bin/kissat",
		"cadicalPath": "/opt/cadical/bin/cadical",
	}

	for range 20 {
		path, err := ExecutablePath("kissat", configured)
		require.NoError(t, err)
		assert.Equal(t, "/opt/kissat/bin/kissat", path)
	}

	path, err := ExecutablePath("cadical", configured)
	require.NoError(t, err)
	assert.Equal(t, "/opt/cadical/bin/cadical", path)
}

func TestExecutablePathUnknownSolver(t *testing.T) {
	_, err := ExecutablePath("walksat", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walksat")
	assert.False(t, IsKnownSolver("walksat"))
	assert.True(t, IsKnownSolver("ParaFROST"))
}

func TestSolversSorted(t *testing.T) {
	solvers := Solvers()
	assert.IsIncreasing(t, solvers)
	assert.Contains(t, solvers, DefaultSolver)
}

func TestToDIMACS(t *testing.T) {
	instance := SAT{Variables: 3, Clauses: [][]int64{{1, -2}, {3}}}
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", instance.ToDIMACS())
}

func TestWriteDIMACS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.cnf")
	instance := GenerateSATInstance(20, 40)

	require.NoError(t, instance.WriteDIMACS(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, "p cnf 20 40", lines[0])
	assert.Len(t, lines, 41)
}

func TestGenerateSATInstance(t *testing.T) {
	for range 10 {
		instance := GenerateSATInstance(15, 30)
		assert.Len(t, instance.Clauses, 30)
		for _, clause := range instance.Clauses {
			assert.NotEmpty(t, clause)
			for _, literal := range clause {
				assert.NotZero(t, literal)
				assert.LessOrEqual(t, max(literal, -literal), int64(15))
			}
		}
	}
}

// satisfies reports whether assignment (a list of true literals) is consistent and satisfies every clause.
func satisfies(instance SAT, assignment []int64) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range assignment {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	return lo.EveryBy(instance.Clauses, func(clause []int64) bool {
		return lo.SomeBy(clause, func(literal int64) bool { return literals[literal] })
	})
}

func TestSatisfies(t *testing.T) {
	instance := SAT{Variables: 3, Clauses: [][]int64{{1, -2}, {2, 3}, {-1, -3}}}
	assert.True(t, satisfies(instance, []int64{1, 2, -3}))
	assert.False(t, satisfies(instance, []int64{-1, 2, 3}))
	assert.False(t, satisfies(instance, []int64{1, -1, 2})) // contradiction

	// Every generated clause is satisfied by at least one full assignment
	generated := GenerateSATInstance(4, 20)
	assignments := lo.Times(16, func(mask int) []int64 {
		return lo.Times(4, func(variable int) int64 {
			if mask&(1<<variable) != 0 {
				return int64(variable + 1)
			}
			return -int64(variable + 1)
		})
	})
	for _, clause := range generated.Clauses {
		assert.True(t, lo.SomeBy(assignments, func(assignment []int64) bool {
			return satisfies(SAT{Variables: 4, Clauses: [][]int64{clause}}, assignment)
		}))
	}
}
