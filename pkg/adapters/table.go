package adapters

import (
	"strconv"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/go-gota/gota/dataframe"
)

// MapDataFrameToTable copies a frame into a domain table; missing cells become invalid cells
func MapDataFrameToTable(df dataframe.DataFrame) domain.Table {
	columns := df.Names()
	rows := make([]domain.Row, df.Nrow())
	for i := range rows {
		rows[i] = make(domain.Row, len(columns))
	}

	for j, name := range columns {
		col := df.Col(name)
		values := col.Records()
		missing := col.IsNaN()
		for i := range rows {
			if missing[i] {
				continue
			}
			rows[i][j] = domain.NewCell(values[i])
		}
	}

	return domain.Table{
		Columns: columns,
		Rows:    rows,
	}
}

// MapTableToRecords renders a table as header and records; invalid cells are written empty
func MapTableToRecords(t domain.Table) ([]string, [][]string) {
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)

	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			if cell.Valid {
				rec[i] = cell.Value
			}
		}
		records = append(records, rec)
	}
	return header, records
}

// MapReportToRecords renders report rows under domain.SummaryHeader
func MapReportToRecords(r domain.Report) ([]string, [][]string) {
	header := make([]string, len(domain.SummaryHeader))
	copy(header, domain.SummaryHeader)

	records := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		records = append(records, []string{
			row.Question,
			row.Response,
			strconv.Itoa(row.Count),
			strconv.Itoa(row.Total),
			row.Percentage,
		})
	}
	return header, records
}
