package tabular

import "strings"

// CSV serializes the table as comma-separated text with a header line and one
// line per record. Every field is individually quoted regardless of content,
// with embedded quotes doubled, so re-parsers see an unambiguous document.
func (t *Table) CSV() []byte {
	var builder strings.Builder
	writeCSVLine(&builder, t.Headers)
	for _, row := range t.Rows {
		writeCSVLine(&builder, row)
	}
	return []byte(builder.String())
}

func writeCSVLine(builder *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteByte('"')
		builder.WriteString(strings.ReplaceAll(field, `"`, `""`))
		builder.WriteByte('"')
	}
	builder.WriteByte('\n')
}
