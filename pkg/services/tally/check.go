package tally

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/montanaflynn/stats"
)

// RoundingStep is the allowed drift of a percentage sum per distinct response
const RoundingStep = 0.01

// Deviation reports a question whose percentages do not add up to 100
type Deviation struct {
	Question  string
	Sum       float64
	Tolerance float64
}

func (d Deviation) String() string {
	return fmt.Sprintf("%q sums to %.2f%% (tolerance %.2f)", d.Question, d.Sum, d.Tolerance)
}

// CheckPercentages sums the percentages of each question in the flat aggregator output
func CheckPercentages(rows []domain.SummaryRow) ([]Deviation, error) {
	var (
		order  []string
		values = make(map[string][]float64)
	)
	for _, row := range rows {
		p, err := ParsePercentage(row.Percentage)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", row.Question, err)
		}
		if _, ok := values[row.Question]; !ok {
			order = append(order, row.Question)
		}
		values[row.Question] = append(values[row.Question], p)
	}

	var deviations []Deviation
	for _, question := range order {
		sum, err := stats.Sum(values[question])
		if err != nil {
			return nil, fmt.Errorf("sum percentages of %q: %w", question, err)
		}
		sum, err = stats.Round(sum, 2)
		if err != nil {
			return nil, fmt.Errorf("round percentages of %q: %w", question, err)
		}

		tolerance := RoundingStep * float64(len(values[question]))
		if math.Abs(sum-100) > tolerance+1e-9 {
			deviations = append(deviations, Deviation{
				Question:  question,
				Sum:       sum,
				Tolerance: tolerance,
			})
		}
	}
	return deviations, nil
}

// ParsePercentage reads back a value produced by FormatPercentage
func ParsePercentage(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return v, nil
}
