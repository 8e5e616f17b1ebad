package domain

import "fmt"

// Outcome partitions respondents by survey completion
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAll       Outcome = "all"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeCompleted, OutcomeAll:
		return true
	}
	return false
}

// ReportTarget names one exported summary: a column subset for one respondent outcome
type ReportTarget struct {
	Name    string
	Outcome Outcome
	Path    string
}

func (r ReportTarget) String() string {
	return fmt.Sprintf("%s:%s", r.Name, r.Outcome)
}
