package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/limaJavier/satbatch/pkg/sat"
)

// Generated instances are held in memory before being written
const (
	maxVariables = 1 << 20
	maxClauses   = 1 << 20
)

func newGenerateCommand() *cobra.Command {
	var (
		count     int
		variables uint64
		clauses   int
		prefix    string
	)

	cmd := &cobra.Command{
		Use:   "generate DIRECTORY",
		Short: "Write random CNF instances to DIRECTORY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || variables < 1 || clauses < 1 {
				return errors.New("count, variables and clauses must be greater than 0")
			}
			if variables > maxVariables || clauses > maxClauses {
				return fmt.Errorf("variables must not exceed %d and clauses must not exceed %d", maxVariables, maxClauses)
			}

			directory := args[0]
			if err := os.MkdirAll(directory, 0o755); err != nil {
				return fmt.Errorf("cannot create directory: %w", err)
			}

			for i := range count {
				path := filepath.Join(directory, fmt.Sprintf("%s-%03d.cnf", prefix, i+1))
				if err := sat.GenerateSATInstance(variables, clauses).WriteDIMACS(path); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of instances to generate")
	cmd.Flags().Uint64Var(&variables, "variables", 50, "Variables per instance")
	cmd.Flags().IntVar(&clauses, "clauses", 200, "Clauses per instance")
	cmd.Flags().StringVar(&prefix, "prefix", "instance", "File name prefix")

	return cmd
}
