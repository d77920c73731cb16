package sat

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// GenerateSATInstance builds a random instance over the given number of variables. Every
// variable takes part in a clause with probability 1/2 and a random sign; clauses that end
// up empty receive a single random literal.
func GenerateSATInstance(variables uint64, clauses int) SAT {
	return SAT{
		Variables: variables,
		Clauses: lo.Times(clauses, func(_ int) []int64 {
			return randomClause(variables)
		}),
	}
}

func randomClause(variables uint64) []int64 {
	clause := make([]int64, 0, variables)
	for variable := range variables {
		if rand.Float32() < 0.5 {
			clause = append(clause, randomSign()*(1+int64(variable)))
		}
	}

	if len(clause) == 0 {
		clause = append(clause, randomSign()*(1+rand.Int64N(int64(variables))))
	}
	return clause
}

func randomSign() int64 {
	if rand.Float32() < 0.5 {
		return -1
	}
	return 1
}
