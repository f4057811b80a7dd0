// Package export writes measurement history as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/measurement/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv (the default when empty) and xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Header is the column row of every export.
var Header = []string{"Date", "Height (cm)", "Weight (kg)", "BMI", "Category", "Body Fat %"}

const sheetName = "Measurements"

// Write encodes ms in format f to w.
func Write(w io.Writer, f Format, ms []*domain.Measurement) error {
	if f == FormatXLSX {
		return WriteXLSX(w, ms)
	}
	return WriteCSV(w, ms)
}

// WriteCSV writes a header row and one row per measurement. Numbers have one decimal;
// an absent body fat is an empty cell.
func WriteCSV(w io.Writer, ms []*domain.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, m := range ms {
		if err := cw.Write(row(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(m *domain.Measurement) []string {
	bf := ""
	if m.BodyFatPercent != nil {
		bf = decimal(*m.BodyFatPercent)
	}
	return []string{m.DateString(), decimal(m.HeightCm), decimal(m.WeightKg), decimal(m.BMI), string(m.Category), bf}
}

func decimal(v float64) string {
	return strconv.FormatFloat(healthcalc.Round1(v), 'f', 1, 64)
}

// WriteXLSX writes a workbook with one sheet holding the same columns as WriteCSV, numbers as numeric cells.
func WriteXLSX(w io.Writer, ms []*domain.Measurement) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, m := range ms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var bf interface{}
		if m.BodyFatPercent != nil {
			bf = healthcalc.Round1(*m.BodyFatPercent)
		}
		values := []interface{}{
			m.DateString(),
			healthcalc.Round1(m.HeightCm),
			healthcalc.Round1(m.WeightKg),
			healthcalc.Round1(m.BMI),
			string(m.Category),
			bf,
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
