package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{
			name: "valid",
			table: Table{
				Columns: []string{"Q1", "Q2"},
				Rows: []Row{
					{NewCell("a"), {}},
					{{}, NewCell("b")},
				},
			},
		},
		{
			name:  "no rows",
			table: Table{Columns: []string{"Q1"}},
		},
		{
			name: "short row",
			table: Table{
				Columns: []string{"Q1", "Q2"},
				Rows:    []Row{{NewCell("a")}},
			},
			wantErr: true,
		},
		{
			name: "duplicate column",
			table: Table{
				Columns: []string{"Q1", "Q1"},
				Rows:    []Row{{NewCell("a"), NewCell("b")}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTable)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTable_Column(t *testing.T) {
	table := Table{
		Columns: []string{"Q1", "Q2"},
		Rows: []Row{
			{NewCell("a"), NewCell("b")},
			{NewCell("c"), {}},
		},
	}

	t.Run("existing column", func(t *testing.T) {
		cells, err := table.Column("Q2")
		require.NoError(t, err)
		assert.Equal(t, []Cell{NewCell("b"), {}}, cells)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := table.Column("Q3")
		assert.ErrorIs(t, err, ErrMissingColumn)
	})
}
