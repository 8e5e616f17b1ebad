package report

import "github.com/de-tools/survey-atlas/pkg/models/domain"

// Group returns a copy of rows where each question label appears once, on the first
// row of its group. Rows are gathered per question in first-appearance order, so rows of
// a question that were not contiguous in the input end up together. A row that already
// has an empty label belongs to the question of the row before it, which keeps Group
// stable on its own output.
func Group(rows []domain.SummaryRow) []domain.SummaryRow {
	owners := make([]string, len(rows))
	var (
		order   []string
		seen    = make(map[string]struct{})
		current string
	)
	for i, row := range rows {
		if row.Question != "" || i == 0 {
			current = row.Question
		}
		owners[i] = current
		if _, ok := seen[current]; !ok {
			seen[current] = struct{}{}
			order = append(order, current)
		}
	}

	out := make([]domain.SummaryRow, 0, len(rows))
	for _, question := range order {
		first := true
		for i, row := range rows {
			if owners[i] != question {
				continue
			}
			row.Question = ""
			if first {
				row.Question = question
				first = false
			}
			out = append(out, row)
		}
	}
	return out
}

// Build groups the aggregator output into a titled report
func Build(title string, outcome domain.Outcome, rows []domain.SummaryRow, skipped []string) domain.Report {
	return domain.Report{
		Title:   title,
		Outcome: outcome,
		Rows:    Group(rows),
		Skipped: append([]string(nil), skipped...),
	}
}
