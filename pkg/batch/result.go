package batch

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrLocked              = errors.New("results directory is locked by another run")
	ErrUnrecognizedResults = errors.New("results directory holds files that were not produced by a previous run")
	ErrTimeout             = errors.New("solver timed out")
)

// Result is the outcome of a single solver invocation. A nil Err only means the solver
// was spawned and ran to completion; its exit code and output are not interpreted.
type Result struct {
	Input    string
	Output   string
	ExitCode int // -1 when the process never started or was killed
	Duration time.Duration
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Summary aggregates the results of one batch.
type Summary struct {
	RunID            uuid.UUID
	BaseDirectory    string
	ResultsDirectory string
	Started          time.Time
	Duration         time.Duration
	Results          []Result
}

func (s Summary) Succeeded() []Result {
	return lo.Filter(s.Results, func(result Result, _ int) bool { return result.OK() })
}

func (s Summary) Failed() []Result {
	return lo.Reject(s.Results, func(result Result, _ int) bool { return result.OK() })
}
