package tabular

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

type sample struct {
	Name  string
	Size  int64
	Notes string
}

var sampleColumns = []Column[sample]{
	{Header: "Name", Extract: func(s sample) string { return s.Name }},
	{Header: "Size", Extract: func(s sample) string { return FormatValue(s.Size) }},
	{Header: "Notes", Extract: func(s sample) string { return s.Notes }},
}

func sampleRecords() []sample {
	return []sample{
		{Name: "alpha", Size: 100, Notes: `uses "quotes"`},
		{Name: "beta, inc", Size: 2048, Notes: ""},
		{Name: "gamma", Size: 0, Notes: "plain"},
	}
}

func TestProjectShape(t *testing.T) {
	table := Project(sampleRecords(), sampleColumns)
	if len(table.Headers) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(table.Headers))
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Rows[0][2] != `uses "quotes"` {
		t.Errorf("unexpected extracted value: %q", table.Rows[0][2])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	records := sampleRecords()
	table := Project(records, sampleColumns)
	raw := table.CSV()

	parsed, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing produced CSV failed: %v", err)
	}
	if len(parsed) != len(records)+1 {
		t.Fatalf("expected %d lines (header + rows), got %d", len(records)+1, len(parsed))
	}
	if len(parsed[0]) != len(sampleColumns) {
		t.Fatalf("expected %d header fields, got %d", len(sampleColumns), len(parsed[0]))
	}
	if parsed[1][0] != "alpha" || parsed[2][0] != "beta, inc" {
		t.Errorf("field values corrupted: %v", parsed[1:3])
	}
	if parsed[1][2] != `uses "quotes"` {
		t.Errorf("quote escaping corrupted: %q", parsed[1][2])
	}
}

func TestCSVQuotesEveryField(t *testing.T) {
	table := Project(sampleRecords(), sampleColumns)
	lines := bytes.Split(bytes.TrimSpace(table.CSV()), []byte("\n"))
	for _, line := range lines {
		if line[0] != '"' || line[len(line)-1] != '"' {
			t.Errorf("line not fully quoted: %s", line)
		}
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	records := sampleRecords()
	table := Project(records, sampleColumns)
	raw, err := table.XLSX("Files")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	workbook, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("re-opening workbook failed: %v", err)
	}
	defer workbook.Close()
	rows, err := workbook.GetRows("Files")
	if err != nil {
		t.Fatalf("reading sheet failed: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("expected %d rows, got %d", len(records)+1, len(rows))
	}
	if rows[0][0] != "Name" || rows[1][0] != "alpha" {
		t.Errorf("unexpected cells: %v", rows[:2])
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if got := FileName("Files", FormatCSV, now); got != "files-2024-06-01.csv" {
		t.Errorf("FileName = %q", got)
	}
	if got := FileName("User Reports", FormatXLSX, now); got != "user-reports-2024-06-01.xlsx" {
		t.Errorf("FileName = %q", got)
	}
	if got := FileName("", FormatCSV, now); got != "export-2024-06-01.csv" {
		t.Errorf("FileName empty prefix = %q", got)
	}
}

func TestFormatValueStructured(t *testing.T) {
	if got := FormatValue(map[string]any{"a": "b"}); got != `{"a":"b"}` {
		t.Errorf("FormatValue map = %q", got)
	}
	if got := FormatValue(nil); got != "" {
		t.Errorf("FormatValue nil = %q", got)
	}
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if got := FormatValue(ts); got != "2024-06-01T10:00:00Z" {
		t.Errorf("FormatValue time = %q", got)
	}
}
