package sat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const DefaultSolver = "parafrost"

// Executable names used when no path is configured for a solver
var defaultExecutables = map[string]string{
	"parafrost":     "parafrost",
	"kissat":        "kissat",
	"cadical":       "cadical",
	"minisat":       "minisat",
	"cryptominisat": "cryptominisat",
	"glucosesimp":   "glucose-simp",
	"glucosesyrup":  "glucose-syrup",
	"slime":         "slime",
	"ortoolsat":     "ortoolsat",
}

// Solvers returns the names of the known solvers in alphabetical order.
func Solvers() []string {
	names := lo.Keys(defaultExecutables)
	slices.Sort(names)
	return names
}

// IsKnownSolver reports whether name is one of Solvers (case-insensitive).
func IsKnownSolver(name string) bool {
	_, ok := defaultExecutables[normalizeSolver(name)]
	return ok
}

// ExecutablePath resolves the executable for solver. Paths configured by the user win over
// the defaults; both "kissat" and the older "kissatPath" key styles are accepted, and the
// former wins when both are set.
func ExecutablePath(solver string, configured map[string]string) (string, error) {
	name := normalizeSolver(solver)

	keys := lo.Keys(configured)
	slices.Sort(keys)
	for _, legacy := range []bool{false, true} {
		for _, key := range keys {
			path := configured[key]
			if isLegacyKey(key) == legacy && normalizeSolver(key) == name && strings.TrimSpace(path) != "" {
				return path, nil
			}
		}
	}

	path, ok := defaultExecutables[name]
	if !ok {
		return "", fmt.Errorf("solver \"%v\" is not supported (known solvers: %v)", solver, strings.Join(Solvers(), ", "))
	}
	return path, nil
}

func normalizeSolver(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, "path")
	return strings.ReplaceAll(name, "-", "")
}

func isLegacyKey(key string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(key)), "path")
}
