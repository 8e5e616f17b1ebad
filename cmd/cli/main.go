package main

import (
	"fmt"
	"os"

	"github.com/de-tools/survey-atlas/pkg/runtime/terminal"
	"github.com/de-tools/survey-atlas/pkg/store/survey"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: survey.NewRegistry(map[string]survey.ReaderFactory{
			survey.FormatCSV:  survey.CSVReaderFactory,
			survey.FormatXLSX: survey.XLSXReaderFactory,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
