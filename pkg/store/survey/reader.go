package survey

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// Reader reads a raw survey export from storage
type Reader interface {
	Read(ctx context.Context, path string) (*store.RawTable, error)
}

type csvReader struct {
	delimiter rune
}

// CSVReaderFactory creates a reader for delimited text exports
func CSVReaderFactory(settings Settings) (Reader, error) {
	delimiter := settings.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	return &csvReader{delimiter: delimiter}, nil
}

func (r *csvReader) Read(ctx context.Context, path string) (*store.RawTable, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to close csv file")
		}
	}()

	cr := csv.NewReader(f)
	cr.Comma = r.delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}

	logger.Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("read csv export")

	return &store.RawTable{Source: path, Records: records}, nil
}

type xlsxReader struct {
	sheet string
}

// XLSXReaderFactory creates a reader for spreadsheet exports
func XLSXReaderFactory(settings Settings) (Reader, error) {
	return &xlsxReader{sheet: settings.Sheet}, nil
}

func (r *xlsxReader) Read(ctx context.Context, path string) (*store.RawTable, error) {
	logger := zerolog.Ctx(ctx)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to close xlsx file")
		}
	}()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	logger.Debug().
		Str("path", path).
		Str("sheet", sheet).
		Int("records", len(rows)).
		Msg("read xlsx export")

	return &store.RawTable{Source: path, Records: rows}, nil
}
