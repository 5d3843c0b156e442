// Package tabular turns record collections into downloadable spreadsheet and
// CSV documents. Projection and serialization are independent: a screen
// declares its ordered column mapping once and can serialize the same table
// into any supported format.
package tabular

import (
	"encoding/json"
	"fmt"
	"time"
)

// Column pairs a display header with an extractor that reads and formats one
// or more record fields.
type Column[T any] struct {
	Header  string
	Extract func(T) string
}

// Table is a projected document: one header row plus one row per record.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Project maps every record through the ordered column mapping.
func Project[T any](records []T, columns []Column[T]) *Table {
	headers := make([]string, len(columns))
	for i, column := range columns {
		headers[i] = column.Header
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			if column.Extract != nil {
				row[i] = column.Extract(record)
			}
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}

// FormatValue renders an arbitrary field value as cell text. Structured
// values serialize to JSON so they survive quoting in flat formats.
func FormatValue(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Number:
		return v.String()
	case float32, float64, int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%v", v)
	case []byte:
		return string(v)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}
