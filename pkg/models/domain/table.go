package domain

import "fmt"

// Cell is a single table value. Valid is false for absent or missing values.
type Cell struct {
	Value string
	Valid bool
}

func NewCell(value string) Cell {
	return Cell{Value: value, Valid: true}
}

// Row holds cells aligned with Table.Columns
type Row []Cell

// Table is an in-memory survey response table with labeled, ordered columns
type Table struct {
	Columns []string
	Rows    []Row
}

// Validate checks that column labels are unique and every row carries exactly one cell per column
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	for _, col := range t.Columns {
		if _, dup := seen[col]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidTable, col)
		}
		seen[col] = struct{}{}
	}

	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrInvalidTable, i, len(row), len(t.Columns))
		}
	}
	return nil
}

// ColumnIndex returns the position of the label in Columns
func (t Table) ColumnIndex(label string) (int, error) {
	for i, col := range t.Columns {
		if col == label {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, label)
}

// Column returns every cell of the labeled column in row order
func (t Table) Column(label string) ([]Cell, error) {
	idx, err := t.ColumnIndex(label)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row[idx])
	}
	return cells, nil
}
