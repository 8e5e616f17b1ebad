// Package cleaning holds the table steps that run before aggregation: dropping
// identifying columns, keeping eligible rows, renaming verbose answers and
// narrowing the table to the questions being summarized.
package cleaning

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Criterion keeps rows whose column equals the value
type Criterion struct {
	Column string
	Value  string
}

// Rename rewrites cells of a column that exactly equal From
type Rename struct {
	Column string
	From   string
	To     string
}

// RequireColumns fails with ErrMissingColumn for the first label the frame lacks
func RequireColumns(df dataframe.DataFrame, columns ...string) error {
	names := make(map[string]struct{}, df.Ncol())
	for _, name := range df.Names() {
		names[name] = struct{}{}
	}
	for _, col := range columns {
		if _, ok := names[col]; !ok {
			return fmt.Errorf("%w: %q", domain.ErrMissingColumn, col)
		}
	}
	return nil
}

// DropColumns removes the listed columns; duplicates in the list are ignored
func DropColumns(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, error) {
	cols := unique(columns)
	if len(cols) == 0 {
		return df, nil
	}
	if err := RequireColumns(df, cols...); err != nil {
		return dataframe.DataFrame{}, err
	}

	out := df.Drop(cols)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop columns: %w", out.Err)
	}
	return out, nil
}

// Filter keeps only the rows matching the criterion
func Filter(df dataframe.DataFrame, c Criterion) (dataframe.DataFrame, error) {
	if err := RequireColumns(df, c.Column); err != nil {
		return dataframe.DataFrame{}, err
	}

	out := df.Filter(dataframe.F{
		Colname:    c.Column,
		Comparator: series.Eq,
		Comparando: c.Value,
	})
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter %q: %w", c.Column, out.Err)
	}
	return out, nil
}

// RenameValues applies each rename in order and returns a new frame
func RenameValues(df dataframe.DataFrame, renames []Rename) (dataframe.DataFrame, error) {
	out := df
	for _, r := range renames {
		if err := RequireColumns(out, r.Column); err != nil {
			return dataframe.DataFrame{}, err
		}

		col := out.Col(r.Column)
		values := col.Records()
		missing := col.IsNaN()
		for i, v := range values {
			if !missing[i] && v == r.From {
				values[i] = r.To
			}
		}

		out = out.Copy().Mutate(series.New(values, series.String, r.Column))
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("rename values in %q: %w", r.Column, out.Err)
		}
	}
	return out, nil
}

// Select narrows the frame to the columns, in the given order
func Select(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, error) {
	if err := RequireColumns(df, columns...); err != nil {
		return dataframe.DataFrame{}, err
	}

	out := df.Select(columns)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("select columns: %w", out.Err)
	}
	return out, nil
}

func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
