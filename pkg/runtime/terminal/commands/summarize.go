package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/adapters"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/survey-atlas/pkg/services/cleaning"
	"github.com/de-tools/survey-atlas/pkg/services/pipeline"
	"github.com/de-tools/survey-atlas/pkg/services/tally"
	"github.com/de-tools/survey-atlas/pkg/store/output"
	"github.com/de-tools/survey-atlas/pkg/store/survey"
	"github.com/spf13/cobra"
)

type SummarizeCmd struct {
	inputPath  string
	columns    []string
	where      []string
	separator  string
	title      string
	outputPath string
	registry   survey.Registry
	reporter   *export.Reporter
}

func NewSummarizeCmd(registry survey.Registry, reporter *export.Reporter) *cobra.Command {
	sc := &SummarizeCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Tally responses of selected questions in a survey export",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.inputPath, "input", "", "Path to the survey export (csv or xlsx)")
	cmd.Flags().StringArrayVar(&sc.columns, "column", nil, "Question column to summarize (repeatable)")
	cmd.Flags().StringArrayVar(&sc.where, "where", nil, "Keep rows where Column=Value (repeatable)")
	cmd.Flags().StringVar(&sc.separator, "separator", tally.DefaultSeparator, "Separator of multi-select answers")
	cmd.Flags().StringVar(&sc.title, "title", "Survey summary", "Report title")
	cmd.Flags().StringVar(&sc.outputPath, "output", "", "Write the report to this file instead of printing it")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func (sc *SummarizeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	df, err := survey.NewLoader(sc.registry, survey.DefaultSettings()).Load(ctx, sc.inputPath)
	if err != nil {
		return err
	}

	outcome := domain.OutcomeAll
	for _, w := range sc.where {
		c, err := parseCriterion(w)
		if err != nil {
			return err
		}
		df, err = cleaning.Filter(df, c)
		if err != nil {
			return err
		}
		outcome = ""
	}

	rep, err := pipeline.Summarize(ctx, tally.NewAggregator(sc.separator), df, sc.title, outcome, sc.columns)
	if err != nil {
		return err
	}

	if sc.outputPath == "" {
		return sc.reporter.Handle(&rep)
	}

	w, err := output.NewWriter("", sc.outputPath)
	if err != nil {
		return err
	}
	header, records := adapters.MapReportToRecords(rep)
	if err := w.Write(ctx, sc.outputPath, header, records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d rows)\n", sc.outputPath, len(records))
	return nil
}

// parseCriterion splits "Column=Value" on the last '='
func parseCriterion(s string) (cleaning.Criterion, error) {
	idx := strings.LastIndex(s, "=")
	if idx <= 0 {
		return cleaning.Criterion{}, fmt.Errorf("invalid filter %q, expected Column=Value", s)
	}
	return cleaning.Criterion{Column: s[:idx], Value: s[idx+1:]}, nil
}
