package calendar

import (
	"fmt"

	"github.com/username/market-calendar/pkg/dateutil"
)

// Mismatch is a day on which two calendars disagree
type Mismatch struct {
	Date     dateutil.CivilDate
	Expected DayInfo
	Actual   DayInfo
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s %s, got %s %s",
		m.Date,
		m.Expected.Type, closeLabel(m.Expected),
		m.Actual.Type, closeLabel(m.Actual))
}

func closeLabel(d DayInfo) string {
	if !d.IsTradingDay {
		return "-"
	}
	return dateutil.FormatClock(d.CloseTime)
}

// Compare walks [from, to] and reports every day on which expected and
// actual differ in day type or close time. Notes are not compared.
func Compare(expected, actual Calendar, from, to dateutil.CivilDate) ([]Mismatch, error) {
	var mismatches []Mismatch

	for d := from; !d.After(to); d = d.AddDays(1) {
		want, err := expected.GetDayInfo(d.Time())
		if err != nil {
			return nil, fmt.Errorf("expected calendar failed for %s: %w", d, err)
		}
		got, err := actual.GetDayInfo(d.Time())
		if err != nil {
			return nil, fmt.Errorf("actual calendar failed for %s: %w", d, err)
		}

		if want.Type != got.Type || want.CloseTime != got.CloseTime {
			mismatches = append(mismatches, Mismatch{Date: d, Expected: *want, Actual: *got})
		}
	}

	return mismatches, nil
}
