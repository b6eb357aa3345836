package csvutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestPreScanUsersCSV_ValidRows(t *testing.T) {
	csv := `Full Name,Email,Phone,Role
John Doe,john@example.com,08011111111,USER
Jane Smith,Jane@Example.com,,admin
Bob Wilson,bob@example.com,,`

	rows, htmlErr, err := PreScanUsersCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("PreScanUsersCSV() error = %v", err)
	}
	if htmlErr != "" {
		t.Fatalf("unexpected validation errors: %s", htmlErr)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].FullName != "John Doe" || rows[0].Email != "john@example.com" || rows[0].Role != "USER" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	// Email lowercased, role case normalized.
	if rows[1].Email != "jane@example.com" || rows[1].Role != "ADMIN" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	// Missing role defaults to USER.
	if rows[2].Role != "USER" {
		t.Errorf("row 2 role = %q, want USER", rows[2].Role)
	}
}

func TestPreScanUsersCSV_NoHeader(t *testing.T) {
	csv := `John Doe,john@example.com
Jane Smith,jane@example.com`

	rows, htmlErr, err := PreScanUsersCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("PreScanUsersCSV() error = %v", err)
	}
	if htmlErr != "" {
		t.Fatalf("unexpected validation errors: %s", htmlErr)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestPreScanUsersCSV_BOMHandling(t *testing.T) {
	csv := "\ufeffFull Name,Email\nJohn Doe,john@example.com"

	rows, htmlErr, err := PreScanUsersCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("PreScanUsersCSV() error = %v", err)
	}
	if htmlErr != "" {
		t.Fatalf("unexpected validation errors with BOM: %s", htmlErr)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestPreScanUsersCSV_EmptyFile(t *testing.T) {
	rows, htmlErr, err := PreScanUsersCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("PreScanUsersCSV() error = %v", err)
	}
	if htmlErr != "" {
		t.Fatalf("unexpected validation errors: %s", htmlErr)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestPreScanUsersCSV_InvalidRowsRejected(t *testing.T) {
	csv := `Full Name,Email,Phone,Role
,missing-name@example.com,,USER
Jane Smith,not-an-email,,USER
Bob Wilson,bob@example.com,,WIZARD`

	rows, htmlErr, err := PreScanUsersCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("PreScanUsersCSV() error = %v", err)
	}
	if rows != nil {
		t.Errorf("expected no rows on validation failure, got %d", len(rows))
	}
	if htmlErr == "" {
		t.Fatal("expected validation error message")
	}
	for _, want := range []string{"missing full name", "invalid email", "invalid role"} {
		if !strings.Contains(string(htmlErr), want) {
			t.Errorf("error message missing %q:\n%s", want, htmlErr)
		}
	}
}

func TestPreScanUsersCSV_SkipsBlankLines(t *testing.T) {
	csv := "John Doe,john@example.com\n,,\n\nJane Smith,jane@example.com\n"

	rows, htmlErr, err := PreScanUsersCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("PreScanUsersCSV() error = %v", err)
	}
	if htmlErr != "" {
		t.Fatalf("unexpected validation errors: %s", htmlErr)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestExportTable(t *testing.T) {
	var buf bytes.Buffer
	err := ExportTable(&buf,
		[]string{"Name", "Program"},
		[][]string{
			{"Ada Obi", "Data Analytics"},
			{"Ben Eze", "Product Design"},
		})
	if err != nil {
		t.Fatalf("ExportTable: %v", err)
	}

	want := "Name,Program\nAda Obi,Data Analytics\nBen Eze,Product Design\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
