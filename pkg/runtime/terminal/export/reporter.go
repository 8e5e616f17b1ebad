package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

type TableConfig struct {
	QuestionWidth   int
	ResponseWidth   int
	CountWidth      int
	TotalWidth      int
	PercentageWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		QuestionWidth:   48,
		ResponseWidth:   36,
		CountWidth:      5,
		TotalWidth:      5,
		PercentageWidth: 10,
	}
}

// Reporter renders a formatted report as a bordered text table
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(question, response string, count, total, percentage interface{}) string {
			return fmt.Sprintf("| %-*s | %-*s | %*v | %*v | %*v |",
				c.config.QuestionWidth, clip(question, c.config.QuestionWidth),
				c.config.ResponseWidth, clip(response, c.config.ResponseWidth),
				c.config.CountWidth, count,
				c.config.TotalWidth, total,
				c.config.PercentageWidth, percentage)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.QuestionWidth+2),
				strings.Repeat("-", c.config.ResponseWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.TotalWidth+2),
				strings.Repeat("-", c.config.PercentageWidth+2))
		},
	}

	tmpl := `
{{.Title}}{{if .Outcome}} ({{.Outcome}} respondents){{end}}

{{separator}}
{{formatRow "Question" "Response" "Count" "Total" "Percentage"}}
{{separator}}
{{range .Rows}}{{formatRow .Question .Response .Count .Total .Percentage}}
{{end}}{{separator}}
{{if .Skipped}}
No responses:
{{range .Skipped}}- {{.}}
{{end}}{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// clip shortens s to width runes, marking the cut with "..."
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
