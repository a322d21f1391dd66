package calendar

import (
	"time"

	"github.com/username/market-calendar/pkg/dateutil"
)

// Session boundaries, as time elapsed since midnight Eastern
const (
	MarketOpenTime  = 9*time.Hour + 30*time.Minute
	NormalCloseTime = 16 * time.Hour
	EarlyCloseTime  = 13 * time.Hour
)

// MarketTime classifies a timestamp against its day's session boundaries
type MarketTime int

const (
	BeforeOpen MarketTime = iota
	Open
	AfterClose
)

func (m MarketTime) String() string {
	switch m {
	case BeforeOpen:
		return "before_open"
	case Open:
		return "open"
	case AfterClose:
		return "after_close"
	default:
		return "unknown"
	}
}

// DayType represents the type of day
type DayType int

const (
	DayTypeTrading DayType = iota + 1
	DayTypeEarlyClose
	DayTypeWeekend
	DayTypeHoliday
	DayTypeClosure
)

func (t DayType) String() string {
	switch t {
	case DayTypeTrading:
		return "trading"
	case DayTypeEarlyClose:
		return "early_close"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeClosure:
		return "closure"
	default:
		return "unknown"
	}
}

// ParseDayType is the inverse of DayType.String
func ParseDayType(s string) (DayType, bool) {
	for _, t := range []DayType{DayTypeTrading, DayTypeEarlyClose, DayTypeWeekend, DayTypeHoliday, DayTypeClosure} {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         dateutil.CivilDate
	Type         DayType
	IsTradingDay bool
	CloseTime    time.Duration // zero when the market does not trade
	Note         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year        int
	Month       time.Month
	TradingDays int
	EarlyCloses int
	Weekends    int
	Holidays    int // includes unscheduled closures
	Days        []DayInfo
}

func (m *MonthInfo) add(day DayInfo) {
	switch day.Type {
	case DayTypeTrading:
		m.TradingDays++
	case DayTypeEarlyClose:
		m.TradingDays++
		m.EarlyCloses++
	case DayTypeWeekend:
		m.Weekends++
	case DayTypeHoliday, DayTypeClosure:
		m.Holidays++
	}
	m.Days = append(m.Days, day)
}

// Calendar interface for checking trading days
type Calendar interface {
	// IsTradingDay checks if the market trades on the given date
	IsTradingDay(date time.Time) (bool, error)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)
}
