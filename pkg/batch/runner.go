// Package batch runs an external SAT solver over every matching file of a directory
// tree, one process at a time, capturing each run's combined output in a results directory.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/limaJavier/satbatch/pkg/sat"
)

const (
	DefaultSuffix       = ".cnf"
	DefaultOutputSuffix = ".out"
)

// Layout decides where output files are placed inside the results directory.
type Layout int

const (
	LayoutFlat   Layout = iota // <results>/<name>.out; inputs sharing a name overwrite each other
	LayoutMirror               // <results>/<relative dir>/<name>.out
)

type Option func(*Runner)

func WithExecutable(executable string) Option {
	return func(r *Runner) { r.executable = executable }
}

func WithSuffix(suffix string) Option {
	return func(r *Runner) { r.suffix = suffix }
}

func WithOutputSuffix(suffix string) Option {
	return func(r *Runner) { r.outputSuffix = suffix }
}

// WithTimeout bounds every solver invocation; zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) { r.timeout = timeout }
}

// WithForce allows the results directory to be wiped even when it holds unrelated files.
func WithForce(force bool) Option {
	return func(r *Runner) { r.force = force }
}

func WithLayout(layout Layout) Option {
	return func(r *Runner) { r.layout = layout }
}

func WithSink(sink Sink) Option {
	return func(r *Runner) { r.sink = sink }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

type Runner struct {
	executable   string
	suffix       string
	outputSuffix string
	timeout      time.Duration
	force        bool
	layout       Layout
	sink         Sink
	logger       *slog.Logger
}

// NewRunner returns a runner invoking parafrost on ".cnf" files and printing the plain
// console lines to standard output, adjusted by opts.
func NewRunner(opts ...Option) *Runner {
	runner := &Runner{
		executable:   sat.DefaultSolver,
		suffix:       DefaultSuffix,
		outputSuffix: DefaultOutputSuffix,
		layout:       LayoutFlat,
		sink:         NewTextSink(os.Stdout),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run is shorthand for NewRunner(opts...).Run.
func Run(ctx context.Context, baseDirectory, resultsDirectory string, opts ...Option) (Summary, error) {
	return NewRunner(opts...).Run(ctx, baseDirectory, resultsDirectory)
}

// Run resets resultsDirectory and processes every qualifying file under baseDirectory.
// Errors returned are setup failures (or cancellation); per-file failures are only
// reported through the sink and the returned Summary.
func (r *Runner) Run(ctx context.Context, baseDirectory, resultsDirectory string) (summary Summary, err error) {
	summary = Summary{
		RunID:            uuid.New(),
		BaseDirectory:    baseDirectory,
		ResultsDirectory: resultsDirectory,
		Started:          time.Now(),
	}
	defer func() { summary.Duration = time.Since(summary.Started) }()
	logger := r.logger.With("run_id", summary.RunID.String())

	info, err := os.Stat(baseDirectory)
	if err != nil {
		return summary, fmt.Errorf("cannot read base directory: %w", err)
	} else if !info.IsDir() {
		return summary, fmt.Errorf("base directory %v is not a directory", baseDirectory)
	}

	lock, err := acquireLock(resultsDirectory)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release results lock", "path", lock.Path(), "error", err)
		}
	}()

	if err := r.resetResults(resultsDirectory, logger); err != nil {
		return summary, err
	}

	inputs, err := discover(baseDirectory, r.suffix, logger)
	if err != nil {
		return summary, err
	}
	logger.Info("starting batch",
		"base", baseDirectory,
		"results", resultsDirectory,
		"executable", r.executable,
		"inputs", len(inputs),
	)

	written := make(map[string]string, len(inputs)) // Output -> input that produced it
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			logger.Warn("batch interrupted", "processed", len(summary.Results), "remaining", len(inputs)-len(summary.Results))
			return summary, err
		}

		output, err := r.outputPath(baseDirectory, resultsDirectory, input)
		if err != nil {
			r.record(&summary, Result{Input: input, ExitCode: -1, Err: err})
			continue
		}
		if previous, ok := written[output]; ok {
			logger.Warn("output file collision, overwriting", "output", output, "previous", previous, "input", input)
		}
		written[output] = input

		r.record(&summary, r.process(ctx, input, output))
	}

	failed := len(summary.Failed())
	logger.Info("batch finished", "processed", len(summary.Results)-failed, "failed", failed)
	return summary, ctx.Err()
}

func (r *Runner) record(summary *Summary, result Result) {
	summary.Results = append(summary.Results, result)
	r.sink.Report(result)
}

func (r *Runner) outputPath(baseDirectory, resultsDirectory, input string) (string, error) {
	if r.layout == LayoutFlat {
		return filepath.Join(resultsDirectory, filepath.Base(input)+r.outputSuffix), nil
	}

	relative, err := filepath.Rel(baseDirectory, input)
	if err != nil {
		return "", fmt.Errorf("cannot compute output path: %w", err)
	}
	return filepath.Join(resultsDirectory, relative+r.outputSuffix), nil
}
