package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/limaJavier/satbatch/internal/preflight"
	"github.com/limaJavier/satbatch/pkg/sat"
)

func newSolversCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "solvers",
		Short: "List the supported solvers and the executable each one resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colorize := shouldColorize(cmd.OutOrStdout())
			rows := lo.Map(sat.Solvers(), func(solver string, _ int) []string {
				path, _ := sat.ExecutablePath(solver, ctx.config.Solvers) // known solvers always resolve
				status := "missing"
				if preflight.CheckExecutable(path).Passed {
					status = "available"
				}
				if solver == ctx.config.Solver {
					solver += " (default)"
				}
				return []string{solver, path, statusText(status, colorize)}
			})

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Solver", "Executable", "Status"}, rows))
			return nil
		},
	}
}
