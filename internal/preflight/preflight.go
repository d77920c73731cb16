// Package preflight verifies that a batch can start: the solver resolves to an
// executable and the base and results locations carry the needed permissions.
package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run checks the executable, then each directory that is set.
func Run(executable, baseDirectory, resultsDirectory string) []Result {
	results := []Result{CheckExecutable(executable)}
	if baseDirectory != "" {
		results = append(results, CheckBaseDirectory(baseDirectory))
	}
	if resultsDirectory != "" {
		results = append(results, CheckResultsDirectory(resultsDirectory))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func CheckExecutable(executable string) Result {
	const name = "Solver executable"
	if executable == "" {
		return Result{Name: name, Detail: "command not configured"}
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", executable)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func CheckBaseDirectory(path string) Result {
	const name = "Base directory"
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckResultsDirectory checks the results directory, or the closest existing ancestor
// when it does not exist yet, since that is where it will be created.
func CheckResultsDirectory(path string) Result {
	const name = "Results directory"
	target := path
	for {
		_, err := os.Stat(target)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", target, err)}
		}
		parent := filepath.Dir(target)
		if parent == target {
			return Result{Name: name, Detail: fmt.Sprintf("%s (no existing parent)", path)}
		}
		target = parent
	}

	if err := unix.Access(target, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", target, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", target)}
}
