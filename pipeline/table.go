package pipeline

import (
	"time"

	"cityflow/datagen/models"
	"cityflow/datagen/writer"
)

// Table is one generated dataset as handed to exporters: rows in column
// order plus the manifest entry of the file it was written to.
type Table struct {
	Name    string
	Format  writer.Format
	Columns []string
	Rows    []models.Row
	Info    models.DatasetInfo
}

// Object maps a row onto its column names.
func (t Table) Object(row models.Row) map[string]any {
	values := row.Values()
	obj := make(map[string]any, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			obj[col] = values[i]
		}
	}
	return obj
}

// TimeColumn returns the index of the first time.Time column, or -1 for
// tables such as the zone reference that carry no timestamp.
func (t Table) TimeColumn() int {
	if len(t.Rows) == 0 {
		return -1
	}
	for i, v := range t.Rows[0].Values() {
		if _, ok := v.(time.Time); ok {
			return i
		}
	}
	return -1
}
