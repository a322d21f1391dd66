// Package export writes the exceptional days of a calendar in text, CSV or
// JSON form. The text form is the format FileCalendar reads.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/username/market-calendar/internal/calendar"
	"github.com/username/market-calendar/pkg/dateutil"
)

// Supported formats
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the accepted format names
var Formats = []string{FormatText, FormatCSV, FormatJSON}

// Row is one exceptional day
type Row struct {
	Date  string `csv:"date" json:"date"`
	Type  string `csv:"type" json:"type"`
	Close string `csv:"close" json:"close,omitempty"`
	Note  string `csv:"note" json:"note,omitempty"`
}

// Collect returns every holiday, closure and early close in count years
// starting at startYear, in date order
func Collect(cal calendar.Calendar, startYear, count int) ([]Row, error) {
	var rows []Row

	for year := startYear; year < startYear+count; year++ {
		for month := time.January; month <= time.December; month++ {
			monthInfo, err := cal.GetMonthInfo(year, month)
			if err != nil {
				return nil, fmt.Errorf("failed to get %d-%02d: %w", year, month, err)
			}

			for _, day := range monthInfo.Days {
				switch day.Type {
				case calendar.DayTypeHoliday, calendar.DayTypeClosure, calendar.DayTypeEarlyClose:
					rows = append(rows, newRow(day))
				}
			}
		}
	}

	return rows, nil
}

func newRow(day calendar.DayInfo) Row {
	row := Row{
		Date: day.Date.String(),
		Type: day.Type.String(),
		Note: day.Note,
	}
	if day.IsTradingDay {
		row.Close = dateutil.FormatClock(day.CloseTime)
	}
	return row
}

// Write renders rows in the named format
func Write(w io.Writer, format string, rows []Row) error {
	switch format {
	case FormatText, "":
		return writeText(w, rows)
	case FormatCSV:
		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

func writeText(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, "# date type [close] [note]"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		line := row.Date + " " + row.Type
		if row.Close != "" {
			line += " " + row.Close
		}
		if row.Note != "" {
			line += " " + row.Note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write %s: %w", row.Date, err)
		}
	}

	return nil
}
