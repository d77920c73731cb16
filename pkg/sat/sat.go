package sat

import (
	"fmt"
	"os"
	"strings"
)

// SAT is a CNF instance: Variables is the highest variable index and every clause is a
// disjunction of non-zero literals.
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// WriteDIMACS stores the instance at path in DIMACS-CNF format, replacing any previous file.
func (s SAT) WriteDIMACS(path string) error {
	if err := os.WriteFile(path, []byte(s.ToDIMACS()), 0o644); err != nil {
		return fmt.Errorf("cannot write DIMACS file %v: %w", path, err)
	}
	return nil
}
