package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/limaJavier/satbatch/internal/config"
	"github.com/limaJavier/satbatch/internal/logging"
	"github.com/limaJavier/satbatch/pkg/batch"
	"github.com/limaJavier/satbatch/pkg/sat"
)

type BenchmarkResult struct {
	Solver   string
	Input    string
	Duration time.Duration
	ExitCode int
	Err      error
}

func main() {
	if err := newBenchmarkCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newBenchmarkCommand() *cobra.Command {
	var (
		solvers    []string
		configPath string
		csvPath    string
		timeout    time.Duration
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "benchmark BASE_DIRECTORY RESULTS_DIRECTORY",
		Short: "Run every selected solver over the same instances and write the timings to CSV",
		Long: `Run one batch per solver, storing the solver output in RESULTS_DIRECTORY/<solver>/
and one CSV row per solver and instance in --csv.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, results := args[0], args[1]

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			if cmd.Flags().Changed("force") {
				cfg.Force = force
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			unknown := lo.Reject(solvers, func(solver string, _ int) bool { return sat.IsKnownSolver(solver) })
			if len(unknown) > 0 {
				return fmt.Errorf("unknown solvers: %v", strings.Join(unknown, ", "))
			}

			logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}

			benchmark := make([]BenchmarkResult, 0)
			for _, solver := range solvers {
				executable, err := sat.ExecutablePath(solver, cfg.Solvers)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Benchmarking solver \"%v\" (%v)\n", solver, executable)

				summary, err := batch.Run(cmd.Context(), base, filepath.Join(results, solver), append(cfg.RunnerOptions(),
					batch.WithExecutable(executable),
					batch.WithSink(batch.NewTextSink(cmd.OutOrStdout())),
					batch.WithLogger(logger.With("solver", solver)),
				)...)
				benchmark = append(benchmark, lo.Map(summary.Results, func(result batch.Result, _ int) BenchmarkResult {
					return BenchmarkResult{
						Solver:   solver,
						Input:    result.Input,
						Duration: result.Duration,
						ExitCode: result.ExitCode,
						Err:      result.Err,
					}
				})...)
				if err != nil {
					return errors.Join(err, writeCsv(csvPath, benchmark))
				}
			}

			return writeCsv(csvPath, benchmark)
		},
	}

	cmd.Flags().StringSliceVar(&solvers, "solvers", []string{sat.DefaultSolver}, "Solvers to benchmark, comma separated")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file with solver paths, suffixes, layout, timeout and force")
	cmd.Flags().StringVar(&csvPath, "csv", "benchmark_results.csv", "Path of the CSV report")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-file time limit, 0 disables it; overrides the configuration")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete result directories even if they hold unrelated files; overrides the configuration")

	return cmd
}

func writeCsv(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		return err
	}
	return file.Close()
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Solver", "Instance", "Duration(ms)", "Exit-Code", "Result"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		outcome := "completed"
		if errors.Is(result.Err, batch.ErrTimeout) {
			outcome = "timeout"
		} else if result.Err != nil {
			outcome = "error: " + result.Err.Error()
		}

		record := []string{
			result.Solver,
			result.Input,
			fmt.Sprintf("%d", result.Duration.Milliseconds()),
			fmt.Sprintf("%d", result.ExitCode),
			outcome,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
