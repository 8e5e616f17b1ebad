package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/de-tools/survey-atlas/pkg/adapters"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/cleaning"
	"github.com/de-tools/survey-atlas/pkg/services/config"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/de-tools/survey-atlas/pkg/services/tally"
	"github.com/de-tools/survey-atlas/pkg/store/output"
	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog"
)

// Loader reads the survey export into a string-typed frame
type Loader interface {
	Load(ctx context.Context, path string) (dataframe.DataFrame, error)
}

// WriterFactory picks the artifact writer for a format and path
type WriterFactory func(format, path string) (output.Writer, error)

// Artifact is one file written by a run
type Artifact struct {
	Name    string
	Outcome domain.Outcome
	Path    string
	Rows    int
	Skipped []string
}

// Result summarizes a finished run
type Result struct {
	Eligible  int
	Completed int
	Artifacts []Artifact
}

type Runner struct {
	cfg        *config.Config
	loader     Loader
	aggregator *tally.Aggregator
	newWriter  WriterFactory
}

func NewRunner(cfg *config.Config, loader Loader, newWriter WriterFactory) *Runner {
	if newWriter == nil {
		newWriter = output.NewWriter
	}
	return &Runner{
		cfg:        cfg,
		loader:     loader,
		aggregator: tally.NewAggregator(cfg.Aggregation.Separator),
		newWriter:  newWriter,
	}
}

// Run loads, cleans, splits and summarizes the export, writing every configured report.
// Any failure aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	cln := r.cfg.Cleaning

	df, err := r.loader.Load(ctx, r.cfg.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey export: %w", err)
	}

	df, err = cleaning.DropColumns(df, cln.DropColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to drop columns: %w", err)
	}

	if cln.Eligibility != nil {
		df, err = cleaning.Filter(df, criterion(cln.Eligibility))
		if err != nil {
			return nil, fmt.Errorf("failed to filter eligible respondents: %w", err)
		}
	}
	logger.Info().Int("respondents", df.Nrow()).Msg("eligible respondents")

	df, err = cleaning.DropColumns(df, cln.DropTextColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to drop text columns: %w", err)
	}

	df, err = cleaning.RenameValues(df, renames(cln.Renames))
	if err != nil {
		return nil, fmt.Errorf("failed to rename values: %w", err)
	}

	frames := map[domain.Outcome]dataframe.DataFrame{domain.OutcomeAll: df}
	result := &Result{Eligible: df.Nrow(), Completed: df.Nrow()}
	if cln.Completion != nil {
		completed, err := cleaning.Filter(df, criterion(cln.Completion))
		if err != nil {
			return nil, fmt.Errorf("failed to filter completed respondents: %w", err)
		}
		frames[domain.OutcomeCompleted] = completed
		result.Completed = completed.Nrow()
	}
	logger.Info().Int("respondents", result.Completed).Msg("completed respondents")

	if name := r.cfg.Output.CleanedTable; name != "" {
		frame, ok := frames[domain.OutcomeCompleted]
		if !ok {
			frame = df
		}
		path := r.path(name)
		header, records := adapters.MapTableToRecords(adapters.MapDataFrameToTable(frame))
		if err := r.write(ctx, path, header, records); err != nil {
			return nil, fmt.Errorf("failed to export cleaned table: %w", err)
		}
		result.Artifacts = append(result.Artifacts, Artifact{Name: "cleaned", Path: path, Rows: len(records)})
	}

	for _, rc := range r.cfg.Reports {
		title := rc.Title
		if title == "" {
			title = rc.Name
		}
		for _, target := range rc.Targets() {
			frame, ok := frames[target.Outcome]
			if !ok {
				return nil, fmt.Errorf("report %s needs a completion criterion", target)
			}
			artifact, err := r.export(ctx, frame, title, rc.Columns, target)
			if err != nil {
				return nil, fmt.Errorf("failed to export report %s: %w", target, err)
			}
			result.Artifacts = append(result.Artifacts, *artifact)
		}
	}

	return result, nil
}

func (r *Runner) export(
	ctx context.Context,
	df dataframe.DataFrame,
	title string,
	columns []string,
	target domain.ReportTarget,
) (*Artifact, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", target.String()).Logger()
	ctx = logger.WithContext(ctx)

	rep, err := Summarize(ctx, r.aggregator, df, title, target.Outcome, columns)
	if err != nil {
		return nil, err
	}

	path := r.path(target.Path)
	header, records := adapters.MapReportToRecords(rep)
	if err := r.write(ctx, path, header, records); err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Int("rows", len(rep.Rows)).
		Int("skipped", len(rep.Skipped)).
		Msg("report written")

	return &Artifact{
		Name:    target.Name,
		Outcome: target.Outcome,
		Path:    path,
		Rows:    len(rep.Rows),
		Skipped: rep.Skipped,
	}, nil
}

// Summarize narrows df to columns, tallies them and groups the rows into a report
func Summarize(
	ctx context.Context,
	aggregator *tally.Aggregator,
	df dataframe.DataFrame,
	title string,
	outcome domain.Outcome,
	columns []string,
) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	subset, err := cleaning.Select(df, columns)
	if err != nil {
		return domain.Report{}, err
	}

	res, err := aggregator.Aggregate(ctx, adapters.MapDataFrameToTable(subset))
	if err != nil {
		return domain.Report{}, fmt.Errorf("failed to aggregate responses: %w", err)
	}

	deviations, err := tally.CheckPercentages(res.Rows)
	if err != nil {
		return domain.Report{}, err
	}
	for _, d := range deviations {
		logger.Warn().Str("question", d.Question).Msgf("percentages drift: %s", d)
	}

	return report.Build(title, outcome, res.Rows, res.Skipped), nil
}

func (r *Runner) write(ctx context.Context, path string, header []string, records [][]string) error {
	w, err := r.newWriter(r.cfg.Output.Format, path)
	if err != nil {
		return err
	}
	return w.Write(ctx, path, header, records)
}

func (r *Runner) path(name string) string {
	if filepath.IsAbs(name) || r.cfg.Output.Dir == "" {
		return name
	}
	return filepath.Join(r.cfg.Output.Dir, name)
}

func criterion(m *config.Match) cleaning.Criterion {
	return cleaning.Criterion{Column: m.Column, Value: m.Value}
}

func renames(cfgs []config.RenameConfig) []cleaning.Rename {
	out := make([]cleaning.Rename, 0, len(cfgs))
	for _, rc := range cfgs {
		out = append(out, cleaning.Rename{Column: rc.Column, From: rc.From, To: rc.To})
	}
	return out
}
