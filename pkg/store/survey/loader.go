package survey

import (
	"context"
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/store"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"
)

// DefaultMissingValues are cell markers treated as "no response"
var DefaultMissingValues = []string{"", "NA", "N/A", "NaN", "nan", "NULL", "null", "#N/A", "<NA>"}

// Settings describe how an export is laid out
type Settings struct {
	Format    string
	Sheet     string
	Delimiter rune
	// HeaderRow is the zero-based physical row holding the column labels
	HeaderRow int
	// SkipRows is the number of rows after the header that are not responses
	SkipRows int
	// IndexColumn drops the first column, which keys rows rather than answering a question
	IndexColumn   bool
	MissingValues []string
}

// DefaultSettings match a Qualtrics export: a row of column ids, the question text
// header, then a row of import ids before the responses
func DefaultSettings() Settings {
	return Settings{
		HeaderRow:     1,
		SkipRows:      1,
		IndexColumn:   true,
		MissingValues: DefaultMissingValues,
	}
}

type Loader struct {
	registry Registry
	settings Settings
}

func NewLoader(registry Registry, settings Settings) *Loader {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Loader{
		registry: registry,
		settings: settings,
	}
}

// Load reads the export at path and returns its responses as a string-typed DataFrame
func (l *Loader) Load(ctx context.Context, path string) (dataframe.DataFrame, error) {
	format := l.settings.Format
	if format == "" {
		format = FormatFromPath(path)
	}

	reader, err := l.registry.Create(format, l.settings)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to create reader for %s: %w", path, err)
	}

	raw, err := reader.Read(ctx, path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err := BuildFrame(raw, l.settings)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Str("format", format).
		Int("rows", df.Nrow()).
		Int("columns", df.Ncol()).
		Msg("loaded survey export")

	return df, nil
}

// BuildFrame applies the header offset, sub-header and index column settings to raw records
func BuildFrame(raw *store.RawTable, settings Settings) (dataframe.DataFrame, error) {
	if raw == nil || len(raw.Records) <= settings.HeaderRow {
		return dataframe.DataFrame{}, fmt.Errorf("export has no header row at line %d", settings.HeaderRow+1)
	}

	width := raw.Width()
	header := pad(raw.Records[settings.HeaderRow], width)

	start := settings.HeaderRow + 1 + settings.SkipRows
	var body [][]string
	if start < len(raw.Records) {
		for _, rec := range raw.Records[start:] {
			body = append(body, pad(rec, width))
		}
	}
	if len(body) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("export %s has no response rows", raw.Source)
	}

	if settings.IndexColumn {
		if width < 2 {
			return dataframe.DataFrame{}, fmt.Errorf("export %s has no columns besides the index", raw.Source)
		}
		header = header[1:]
		for i := range body {
			body[i] = body[i][1:]
		}
	}

	missing := settings.MissingValues
	if missing == nil {
		missing = DefaultMissingValues
	}

	records := make([][]string, 0, len(body)+1)
	records = append(records, header)
	records = append(records, body...)

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missing),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build table from %s: %w", raw.Source, df.Err)
	}
	return df, nil
}

func pad(rec []string, width int) []string {
	out := make([]string, width)
	copy(out, rec)
	return out
}
