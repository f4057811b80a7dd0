package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/measurement/domain"
)

func sample() []*domain.Measurement {
	bf := 18.5872
	return []*domain.Measurement{
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), HeightCm: 175, WeightKg: 75.04, BMI: 24.4897, Category: healthcalc.CategoryNormal, BodyFatPercent: &bf},
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), HeightCm: 175, WeightKg: 92, BMI: 30.0408, Category: healthcalc.CategoryObese},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := strings.Join([]string{
		"Date,Height (cm),Weight (kg),BMI,Category,Body Fat %",
		"2024-03-02,175.0,75.0,24.5,Normal,18.6",
		"2024-03-01,175.0,92.0,30.0,Obese,",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(Header, ",") {
		t.Errorf("csv = %q, want header only", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, sample()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Date" || rows[1][0] != "2024-03-02" || rows[1][3] != "24.5" {
		t.Errorf("rows = %v", rows)
	}
	if len(rows[2]) > 5 && rows[2][5] != "" {
		t.Errorf("absent body fat cell = %q, want empty", rows[2][5])
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{"pdf", "", true},
	}
	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tc.in, got, err)
		}
	}
	if FormatXLSX.ContentType() == FormatCSV.ContentType() {
		t.Error("content types should differ")
	}
}
