package commands

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/store/survey"
	"github.com/spf13/cobra"
)

type ColumnsCmd struct {
	inputPath string
	registry  survey.Registry
}

func NewColumnsCmd(registry survey.Registry) *cobra.Command {
	cc := &ColumnsCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the question columns of a survey export",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.inputPath, "input", "", "Path to the survey export (csv or xlsx)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (cc *ColumnsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	df, err := survey.NewLoader(cc.registry, survey.DefaultSettings()).Load(ctx, cc.inputPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cc.inputPath, err)
	}

	names := df.Names()
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No columns found in: %s\n", cc.inputPath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Columns of %s (%d responses):\n", cc.inputPath, df.Nrow())
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
