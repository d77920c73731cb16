package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limaJavier/satbatch/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var executable string

	cmd := &cobra.Command{
		Use:   "check [BASE_DIRECTORY RESULTS_DIRECTORY]",
		Short: "Verify the solver and directories before running a batch",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if len(args) > 0 {
				cfg.BaseDirectory = args[0]
			}
			if len(args) > 1 {
				cfg.ResultsDirectory = args[1]
			}
			if cmd.Flags().Changed("executable") {
				cfg.Executable = executable
			}

			solverPath, err := cfg.ExecutablePath()
			if err != nil {
				return err
			}

			results := preflight.Run(solverPath, cfg.BaseDirectory, cfg.ResultsDirectory)

			colorize := shouldColorize(cmd.OutOrStdout())
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "passed"
				if !result.Passed {
					status = "failed"
				}
				rows = append(rows, []string{result.Name, statusText(status, colorize), result.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Status", "Detail"}, rows))

			if !preflight.Passed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&executable, "executable", "e", "", "Path to the solver executable")
	return cmd
}
