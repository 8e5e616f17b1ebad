package terminal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = `StartDate,Q1,Finished,Q2,Q3
Start Date,Are you a medical student?,Finished,How often are you using AI-based language models?,Which of the following large language models have you used? (Check all that apply) - Selected Choice
"{""ImportId"":""startDate""}","{""ImportId"":""QID1""}","{""ImportId"":""finished""}","{""ImportId"":""QID2""}","{""ImportId"":""QID3""}"
2024-11-01,Yes,True,Daily,"ChatGPT,Bing Chat"
2024-11-02,Yes,True,Weekly,ChatGPT
2024-11-03,Yes,False,Daily,
2024-11-04,No,True,Never,Bard
`

const (
	oftenQuestion  = "How often are you using AI-based language models?"
	modelsQuestion = "Which of the following large language models have you used? (Check all that apply) - Selected Choice"
)

func writeExport(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(exportCSV), 0o644))
	return dir, path
}

func newTestCLI() (*CLI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	return NewCLI(Options{Output: out, LogOutput: logs}), out, logs
}

func TestCLI_Columns(t *testing.T) {
	_, path := writeExport(t)
	cli, out, _ := newTestCLI()

	err := cli.ExecuteArgs([]string{"columns", "--input", path})

	require.NoError(t, err)
	assert.Equal(t,
		fmt.Sprintf("Columns of %s (4 responses):\n", path)+
			"Are you a medical student?\nFinished\n"+oftenQuestion+"\n"+modelsQuestion+"\n",
		out.String())
}

func TestCLI_Summarize_PrintsTable(t *testing.T) {
	_, path := writeExport(t)
	cli, out, _ := newTestCLI()

	err := cli.ExecuteArgs([]string{
		"summarize",
		"--input", path,
		"--column", oftenQuestion,
		"--column", modelsQuestion,
		"--where", "Are you a medical student?=Yes",
		"--title", "Usage",
	})

	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "Usage")
	assert.Contains(t, text, "| Daily ")
	assert.Contains(t, text, "66.67%")
	assert.Contains(t, text, "| Bing Chat ")
	assert.NotContains(t, text, "Bard")
	assert.NotContains(t, text, "No responses:")
}

func TestCLI_Summarize_WritesFile(t *testing.T) {
	dir, path := writeExport(t)
	cli, out, _ := newTestCLI()
	target := filepath.Join(dir, "usage.csv")

	err := cli.ExecuteArgs([]string{
		"summarize",
		"--input", path,
		"--column", oftenQuestion,
		"--where", "Finished=True",
		"--output", target,
	})

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Report written to %s (3 rows)\n", target), out.String())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t,
		"Question,Response,Count,Total Responses,Percentage\n"+
			oftenQuestion+",Daily,1,3,33.33%\n"+
			",Weekly,1,3,33.33%\n"+
			",Never,1,3,33.33%\n",
		string(data))
}

func TestCLI_Summarize_InvalidWhere(t *testing.T) {
	_, path := writeExport(t)
	cli, _, _ := newTestCLI()

	err := cli.ExecuteArgs([]string{"summarize", "--input", path, "--column", oftenQuestion, "--where", "Finished"})

	assert.ErrorContains(t, err, "expected Column=Value")
}

func TestCLI_Run(t *testing.T) {
	dir, path := writeExport(t)
	profile := filepath.Join(dir, "profile.yaml")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(profile, []byte(fmt.Sprintf(`input:
  path: %q
cleaning:
  eligibility:
    column: Are you a medical student?
    value: "Yes"
  completion:
    column: Finished
    value: "True"
output:
  dir: %q
reports:
  - name: usage
    columns:
      - %s
    outputs:
      completed: usage_comp.csv
      all: usage_all.csv
`, path, outDir, oftenQuestion)), 0o644))

	cli, out, logs := newTestCLI()
	err := cli.ExecuteArgs([]string{"run", "--config", profile, "--log-format", "json"})

	require.NoError(t, err)
	assert.Equal(t,
		"Eligible respondents: 3\nCompleted respondents: 2\n"+
			fmt.Sprintf("- usage [completed]: %s (2 rows)\n", filepath.Join(outDir, "usage_comp.csv"))+
			fmt.Sprintf("- usage [all]: %s (2 rows)\n", filepath.Join(outDir, "usage_all.csv")),
		out.String())
	assert.Contains(t, logs.String(), `"run_id"`)
	assert.Contains(t, logs.String(), `"report written"`)

	data, err := os.ReadFile(filepath.Join(outDir, "usage_all.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Question,Response,Count,Total Responses,Percentage\n"+
			oftenQuestion+",Daily,2,3,66.67%\n"+
			",Weekly,1,3,33.33%\n",
		string(data))
}

func TestCLI_InvalidLogLevel(t *testing.T) {
	_, path := writeExport(t)
	cli, _, _ := newTestCLI()

	err := cli.ExecuteArgs([]string{"columns", "--input", path, "--log-level", "loud"})

	assert.ErrorContains(t, err, "invalid log level")
}

func TestCLI_MissingRequiredFlag(t *testing.T) {
	cli, _, _ := newTestCLI()

	err := cli.ExecuteArgs([]string{"summarize", "--column", oftenQuestion})

	assert.Error(t, err)
}
