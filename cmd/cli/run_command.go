package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/limaJavier/satbatch/internal/config"
	"github.com/limaJavier/satbatch/internal/preflight"
	"github.com/limaJavier/satbatch/pkg/batch"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		solver      string
		executable  string
		layout      string
		timeout     time.Duration
		force       bool
		showSummary bool
	)

	cmd := &cobra.Command{
		Use:   "run [BASE_DIRECTORY RESULTS_DIRECTORY]",
		Short: "Run the solver on every .cnf file below BASE_DIRECTORY",
		Long: `Run the solver once per .cnf file found below BASE_DIRECTORY and store its combined
standard output and error in RESULTS_DIRECTORY/<file name>.out.

RESULTS_DIRECTORY is deleted and recreated at the start of every run. A directory holding
anything other than previous .out files is only deleted when --force is given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected BASE_DIRECTORY and RESULTS_DIRECTORY, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if len(args) == 2 {
				cfg.BaseDirectory, cfg.ResultsDirectory = args[0], args[1]
			}

			flags := cmd.Flags()
			if flags.Changed("solver") {
				cfg.Solver = solver
				cfg.Executable = ""
			}
			if flags.Changed("executable") {
				cfg.Executable = executable
			}
			if flags.Changed("layout") {
				cfg.Layout = layout
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("force") {
				cfg.Force = force
			}

			if cfg.BaseDirectory == "" || cfg.ResultsDirectory == "" {
				return errors.New("a base directory and a results directory must be specified")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			solverPath, err := cfg.ExecutablePath()
			if err != nil {
				return err
			}

			// A missing solver is reported per file, as every invocation will fail
			if check := preflight.CheckExecutable(solverPath); !check.Passed {
				ctx.logger.Warn("solver executable is not available", "detail", check.Detail)
			}

			runner := batch.NewRunner(append(cfg.RunnerOptions(),
				batch.WithExecutable(solverPath),
				batch.WithSink(batch.NewTextSink(cmd.OutOrStdout())),
				batch.WithLogger(ctx.logger),
			)...)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := runner.Run(runCtx, cfg.BaseDirectory, cfg.ResultsDirectory)
			if showSummary && len(summary.Results) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, shouldColorize(cmd.OutOrStdout())))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&solver, "solver", "s", "", "SAT solver to run (see \"satbatch solvers\"); parafrost when unset")
	cmd.Flags().StringVarP(&executable, "executable", "e", "", "Path to the solver executable; overrides --solver")
	cmd.Flags().StringVar(&layout, "layout", config.LayoutFlat, "Output layout: \"flat\" (<results>/<name>.out) or \"mirror\" (keeps subdirectories)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-file time limit, 0 disables it")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete the results directory even if it holds unrelated files")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print a table with every result once the batch finishes")

	return cmd
}

func renderSummary(summary batch.Summary, colorize bool) string {
	rows := make([][]string, 0, len(summary.Results)+1)
	for _, result := range summary.Results {
		status, detail := statusText("ok", colorize), result.Output
		if !result.OK() {
			status, detail = statusText("failed", colorize), result.Err.Error()
		}
		rows = append(rows, []string{
			result.Input,
			status,
			exitCodeText(result.ExitCode),
			result.Duration.Round(time.Millisecond).String(),
			detail,
		})
	}

	table := renderTable(
		[]string{"Input", "Status", "Exit", "Duration", "Output / Error"},
		rows,
		2, 3,
	)
	return fmt.Sprintf("%s\nRun %s: %d processed, %d failed in %s",
		table,
		summary.RunID,
		len(summary.Succeeded()),
		len(summary.Failed()),
		summary.Duration.Round(time.Millisecond),
	)
}

func exitCodeText(code int) string {
	if code < 0 {
		return "-"
	}
	return fmt.Sprint(code)
}
