package tally

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const DefaultSeparator = ","

// Result is the flat aggregator output, one row per question and response
type Result struct {
	Rows []domain.SummaryRow
	// Skipped lists questions without a single response, in column order
	Skipped []string
}

type Aggregator struct {
	separator string
}

// NewAggregator creates an aggregator splitting multi-select cells on separator
func NewAggregator(separator string) *Aggregator {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Aggregator{separator: separator}
}

// Aggregate tallies every column of the table and flattens the tallies in column order.
// Columns without responses produce no rows and are listed in Result.Skipped.
func (a *Aggregator) Aggregate(ctx context.Context, table domain.Table) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := table.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Rows: make([]domain.SummaryRow, 0)}
	for idx, question := range table.Columns {
		t := a.count(table, idx)

		rows, err := Summarize(question, t)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("question", question).
				Msg("skipping question")
			result.Skipped = append(result.Skipped, question)
			continue
		}

		logger.Debug().
			Str("question", question).
			Int("responses", t.Len()).
			Int("total", t.Total()).
			Msg("tallied question")
		result.Rows = append(result.Rows, rows...)
	}

	return result, nil
}

func (a *Aggregator) count(table domain.Table, idx int) *domain.Tally {
	t := domain.NewTally()
	for _, row := range table.Rows {
		cell := row[idx]
		if !cell.Valid {
			continue
		}
		for _, token := range a.Tokens(cell.Value) {
			t.Add(token)
		}
	}
	return t
}

// Tokens splits a cell into trimmed response tokens. Every separator splits,
// including ones inside free text.
func (a *Aggregator) Tokens(value string) []string {
	parts := []string{value}
	if strings.Contains(value, a.separator) {
		parts = strings.Split(value, a.separator)
	}

	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}

// Summarize turns one question's tally into summary rows in tally order
func Summarize(question string, t *domain.Tally) ([]domain.SummaryRow, error) {
	total := t.Total()
	if total == 0 {
		return nil, fmt.Errorf("%w for question %q", domain.ErrNoResponses, question)
	}

	rows := make([]domain.SummaryRow, 0, t.Len())
	for _, response := range t.Responses() {
		count := t.Count(response)
		rows = append(rows, domain.SummaryRow{
			Question:   question,
			Response:   response,
			Count:      count,
			Total:      total,
			Percentage: FormatPercentage(count, total),
		})
	}
	return rows, nil
}

// FormatPercentage renders count/total as a two decimal percentage, e.g. "66.67%"
func FormatPercentage(count, total int) string {
	return fmt.Sprintf("%.2f%%", float64(count)/float64(total)*100)
}
