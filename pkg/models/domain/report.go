package domain

// SummaryRow is the share of one response within one question
type SummaryRow struct {
	Question   string
	Response   string
	Count      int
	Total      int
	Percentage string // "66.67%"
}

// SummaryHeader is the column header used when a report is exported
var SummaryHeader = []string{"Question", "Response", "Count", "Total Responses", "Percentage"}

// Report represents a formatted summary ready for export
type Report struct {
	Title   string
	Outcome Outcome
	Rows    []SummaryRow
	// Skipped lists questions that had no responses and produced no rows
	Skipped []string
}
