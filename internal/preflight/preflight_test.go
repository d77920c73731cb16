package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckExecutable(t *testing.T) {
	solver := filepath.Join(t.TempDir(), "parafrost")
	assert.NoError(t, os.WriteFile(solver, []byte("#!/bin/sh\n"), 0o755))

	assert.True(t, CheckExecutable(solver).Passed)
	assert.True(t, CheckExecutable("sh").Passed)

	missing := CheckExecutable("satbatch-no-such-solver")
	assert.False(t, missing.Passed)
	assert.Contains(t, missing.Detail, "not found")

	assert.False(t, CheckExecutable("").Passed)
}

func TestCheckBaseDirectory(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, CheckBaseDirectory(dir).Passed)
	assert.False(t, CheckBaseDirectory(filepath.Join(dir, "missing")).Passed)

	file := filepath.Join(dir, "a.cnf")
	assert.NoError(t, os.WriteFile(file, nil, 0o644))
	result := CheckBaseDirectory(file)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Detail, "not a directory")
}

func TestCheckResultsDirectory(t *testing.T) {
	dir := t.TempDir()

	existing := CheckResultsDirectory(dir)
	assert.True(t, existing.Passed)

	// Not created yet: the closest existing ancestor is checked
	pending := CheckResultsDirectory(filepath.Join(dir, "results", "run1"))
	assert.True(t, pending.Passed)
	assert.Contains(t, pending.Detail, dir)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	results := Run("sh", dir, filepath.Join(dir, "results"))
	assert.Len(t, results, 3)
	assert.True(t, Passed(results))

	results = Run("satbatch-no-such-solver", dir, filepath.Join(dir, "results"))
	assert.False(t, Passed(results))

	// Directories that are not set yet are left out
	results = Run("sh", "", dir)
	assert.Len(t, results, 2)
	assert.Equal(t, "Results directory", results[1].Name)
}
