package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	defaultSheet = "Sheet1"
)

// Writer stores a table with a header row as one artifact
type Writer interface {
	Write(ctx context.Context, path string, header []string, records [][]string) error
}

// NewWriter returns the writer for a format; an empty format is inferred from the path
func NewWriter(format, path string) (Writer, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch format {
	case FormatCSV:
		return &CSVWriter{}, nil
	case FormatXLSX:
		return &XLSXWriter{Sheet: defaultSheet}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// CSVWriter writes UTF-8 comma separated files
type CSVWriter struct{}

func (w *CSVWriter) Write(ctx context.Context, path string, header []string, records [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write records: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("wrote csv")
	return nil
}

// XLSXWriter writes a single sheet workbook
type XLSXWriter struct {
	Sheet string
}

func (w *XLSXWriter) Write(ctx context.Context, path string, header []string, records [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to close workbook")
		}
	}()

	sheet := w.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			return fmt.Errorf("name sheet %q: %w", sheet, err)
		}
	}

	rows := append([][]string{header}, records...)
	for i, rec := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(rec))
		for j, v := range rec {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("wrote xlsx")
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}
