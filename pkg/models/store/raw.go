package store

// RawTable is a delimited export as read from storage, before any header handling
type RawTable struct {
	Source  string
	Records [][]string
}

// Width returns the length of the longest record
func (r *RawTable) Width() int {
	width := 0
	for _, rec := range r.Records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	return width
}
