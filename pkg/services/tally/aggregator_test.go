package tally

import (
	"context"
	"testing"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelsQuestion = "Which of the following large language models have you used? (Check all that apply) - Selected Choice"

func column(question string, values ...*string) domain.Table {
	rows := make([]domain.Row, 0, len(values))
	for _, v := range values {
		if v == nil {
			rows = append(rows, domain.Row{{}})
			continue
		}
		rows = append(rows, domain.Row{domain.NewCell(*v)})
	}
	return domain.Table{Columns: []string{question}, Rows: rows}
}

func s(v string) *string { return &v }

func TestAggregator_SplitsMultiSelectCells(t *testing.T) {
	table := column(modelsQuestion, s("ChatGPT, Bing Chat"), s("ChatGPT"), nil)

	res, err := NewAggregator(",").Aggregate(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, []domain.SummaryRow{
		{Question: modelsQuestion, Response: "ChatGPT", Count: 2, Total: 3, Percentage: "66.67%"},
		{Question: modelsQuestion, Response: "Bing Chat", Count: 1, Total: 3, Percentage: "33.33%"},
	}, res.Rows)
	assert.Empty(t, res.Skipped)
}

func TestAggregator_ColumnsInInputOrder(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Q2", "Q1"},
		Rows: []domain.Row{
			{domain.NewCell("b"), domain.NewCell("x")},
			{domain.NewCell("a"), domain.NewCell("x")},
			{domain.NewCell("b"), {}},
		},
	}

	res, err := NewAggregator("").Aggregate(context.Background(), table)
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, domain.SummaryRow{Question: "Q2", Response: "b", Count: 2, Total: 3, Percentage: "66.67%"}, res.Rows[0])
	assert.Equal(t, domain.SummaryRow{Question: "Q2", Response: "a", Count: 1, Total: 3, Percentage: "33.33%"}, res.Rows[1])
	assert.Equal(t, domain.SummaryRow{Question: "Q1", Response: "x", Count: 2, Total: 2, Percentage: "100.00%"}, res.Rows[2])
}

func TestAggregator_EmptyColumnIsSkipped(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Answered", "Unanswered"},
		Rows: []domain.Row{
			{domain.NewCell("Yes"), {}},
			{domain.NewCell("No"), {}},
		},
	}

	res, err := NewAggregator(",").Aggregate(context.Background(), table)
	require.NoError(t, err)

	for _, row := range res.Rows {
		assert.NotEqual(t, "Unanswered", row.Question)
	}
	assert.Len(t, res.Rows, 2)
	assert.Equal(t, []string{"Unanswered"}, res.Skipped)
}

func TestAggregator_TrimsTokensAndKeepsEmptySplits(t *testing.T) {
	table := column("Q", s("  GPT-4 ,Bard,"), s("Bard"))

	res, err := NewAggregator(",").Aggregate(context.Background(), table)
	require.NoError(t, err)

	got := map[string]int{}
	for _, row := range res.Rows {
		got[row.Response] = row.Count
		assert.Equal(t, 4, row.Total)
	}
	assert.Equal(t, map[string]int{"GPT-4": 1, "Bard": 2, "": 1}, got)
}

func TestAggregator_CustomSeparator(t *testing.T) {
	table := column("Q", s("a; b"), s("a, b"))

	res, err := NewAggregator(";").Aggregate(context.Background(), table)
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "a", res.Rows[0].Response)
	assert.Equal(t, "b", res.Rows[1].Response)
	assert.Equal(t, "a, b", res.Rows[2].Response)
}

func TestAggregator_InvalidTable(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Q1", "Q2"},
		Rows:    []domain.Row{{domain.NewCell("a")}},
	}

	_, err := NewAggregator(",").Aggregate(context.Background(), table)
	assert.ErrorIs(t, err, domain.ErrInvalidTable)
}

func TestAggregator_TallyCompleteness(t *testing.T) {
	table := column("Q", s("a, b, c"), s("b"), nil, s("c, a"), s("d"))
	agg := NewAggregator(",")

	tokens := 0
	for _, row := range table.Rows {
		if row[0].Valid {
			tokens += len(agg.Tokens(row[0].Value))
		}
	}

	res, err := agg.Aggregate(context.Background(), table)
	require.NoError(t, err)

	sum := 0
	for _, row := range res.Rows {
		sum += row.Count
		assert.Equal(t, tokens, row.Total)
	}
	assert.Equal(t, tokens, sum)
}

func TestSummarize_NoResponses(t *testing.T) {
	_, err := Summarize("Q", domain.NewTally())
	assert.ErrorIs(t, err, domain.ErrNoResponses)
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		count, total int
		want         string
	}{
		{2, 3, "66.67%"},
		{1, 3, "33.33%"},
		{1, 1, "100.00%"},
		{1, 8, "12.50%"},
		{0, 5, "0.00%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPercentage(tt.count, tt.total))
	}
}
