package calendar

import (
	"time"

	"go.uber.org/zap"

	"github.com/username/market-calendar/internal/marketclock"
	"github.com/username/market-calendar/pkg/dateutil"
)

// Early close notes
const (
	independenceDayEve   = "Independence Day eve"
	dayAfterThanksgiving = "Day after Thanksgiving"
	christmasEve         = "Christmas Eve"
)

// MarketCalendar answers trading-day and session questions for US equities.
//
// Every time.Time argument is read through its civil fields (date, hour,
// minute) and must already be expressed in US Eastern time; see
// marketclock.MarketClock.ToMarket.
type MarketCalendar struct {
	holidays *HolidayCache
	clock    marketclock.Clock
	logger   *zap.Logger
}

// NewMarketCalendar creates a calendar over the given cache. clock must
// return instants in market civil time; it is only used by the *Now / *Today
// helpers. A nil clock reads the system clock in the default market zone.
func NewMarketCalendar(holidays *HolidayCache, clock marketclock.Clock, logger *zap.Logger) *MarketCalendar {
	if logger == nil {
		logger = zap.NewNop()
	}
	if holidays == nil {
		holidays = NewHolidayCache(logger)
	}
	if clock == nil {
		clock = defaultClock(logger)
	}
	return &MarketCalendar{
		holidays: holidays,
		clock:    clock,
		logger:   logger,
	}
}

func defaultClock(logger *zap.Logger) marketclock.Clock {
	mc, err := marketclock.New(marketclock.SystemClock{}, marketclock.DefaultTimezone)
	if err != nil {
		logger.Warn("Market timezone unavailable, using system clock as is", zap.Error(err))
		return marketclock.SystemClock{}
	}
	return mc
}

// GetHolidays returns the observed holidays for year
func (mc *MarketCalendar) GetHolidays(year int) *HolidaySet {
	return mc.holidays.Get(year)
}

// GetHolidaysRange concatenates count years of holidays starting at startYear
func (mc *MarketCalendar) GetHolidaysRange(startYear, count int) []dateutil.CivilDate {
	var out []dateutil.CivilDate
	for i := 0; i < count; i++ {
		out = append(out, mc.holidays.Get(startYear+i).Dates()...)
	}
	return out
}

// Prewarm computes holiday sets for count years starting at from
func (mc *MarketCalendar) Prewarm(from, count int) {
	for i := 0; i < count; i++ {
		mc.holidays.Get(from + i)
	}
	mc.logger.Info("Holiday cache prewarmed",
		zap.Int("from", from),
		zap.Int("years", count),
		zap.Int("cached_years", mc.holidays.Len()))
}

// IsWeekend reports whether date is a Saturday or Sunday
func (mc *MarketCalendar) IsWeekend(date time.Time) bool {
	return dateutil.IsWeekend(date)
}

// IsHoliday reports whether date is an observed exchange holiday.
// Weekends are never holidays.
func (mc *MarketCalendar) IsHoliday(date time.Time) bool {
	return mc.isHoliday(dateutil.DateOf(date))
}

// HolidayName returns the name of the holiday observed on date
func (mc *MarketCalendar) HolidayName(date time.Time) (string, bool) {
	d := dateutil.DateOf(date)
	return mc.holidays.Get(d.Year).Name(d)
}

// IsExtraClosedDate reports whether date is an unscheduled closure
func (mc *MarketCalendar) IsExtraClosedDate(date time.Time) bool {
	_, ok := extraCloseDates[dateutil.DateOf(date)]
	return ok
}

// IsWorkingDay is the trading-day predicate: not a weekend, not a holiday,
// not an unscheduled closure
func (mc *MarketCalendar) IsWorkingDay(date time.Time) bool {
	return mc.isWorkingDay(dateutil.DateOf(date))
}

// IsTradingDay implements Calendar
func (mc *MarketCalendar) IsTradingDay(date time.Time) (bool, error) {
	return mc.IsWorkingDay(date), nil
}

// CloseTimeForDate returns the session close for date, as an offset from
// midnight. It does not check whether the market trades on date.
func (mc *MarketCalendar) CloseTimeForDate(date time.Time) time.Duration {
	if earlyCloseReason(dateutil.DateOf(date)) != "" {
		return EarlyCloseTime
	}
	return NormalCloseTime
}

// IsEarlyCloseDay reports whether CloseTimeForDate is before the normal close
func (mc *MarketCalendar) IsEarlyCloseDay(date time.Time) bool {
	return mc.CloseTimeForDate(date) < NormalCloseTime
}

// CheckTime places t relative to its day's session boundaries, regardless
// of whether the day is a trading day
func (mc *MarketCalendar) CheckTime(t time.Time) MarketTime {
	tod := dateutil.TimeOfDay(t)
	if tod < MarketOpenTime {
		return BeforeOpen
	}
	if tod >= mc.CloseTimeForDate(t) {
		return AfterClose
	}
	return Open
}

// IsMarketOpenAt reports whether the market is trading at t
func (mc *MarketCalendar) IsMarketOpenAt(t time.Time) bool {
	if !mc.IsWorkingDay(t) {
		return false
	}
	return mc.CheckTime(t) == Open
}

// NextTradingDayAfter returns the first trading day strictly after date
func (mc *MarketCalendar) NextTradingDayAfter(date time.Time) dateutil.CivilDate {
	d := dateutil.DateOf(date)
	for {
		d = d.AddDays(1)
		if mc.isWorkingDay(d) {
			return d
		}
	}
}

// PrevTradingDayBefore returns the last trading day strictly before date
func (mc *MarketCalendar) PrevTradingDayBefore(date time.Time) dateutil.CivilDate {
	d := dateutil.DateOf(date)
	for {
		d = d.AddDays(-1)
		if mc.isWorkingDay(d) {
			return d
		}
	}
}

// GetDayInfo implements Calendar
func (mc *MarketCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	info := mc.dayInfo(dateutil.DateOf(date))
	return &info, nil
}

// GetMonthInfo implements Calendar
func (mc *MarketCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	daysInMonth := dateutil.DaysInMonth(year, month)

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		monthInfo.add(mc.dayInfo(dateutil.NewDate(year, month, day)))
	}

	return monthInfo, nil
}

func (mc *MarketCalendar) dayInfo(d dateutil.CivilDate) DayInfo {
	info := DayInfo{Date: d}

	if d.IsWeekend() {
		info.Type = DayTypeWeekend
		return info
	}
	if name, ok := mc.holidays.Get(d.Year).Name(d); ok {
		info.Type = DayTypeHoliday
		info.Note = name
		return info
	}
	if note, ok := extraCloseDates[d]; ok {
		info.Type = DayTypeClosure
		info.Note = note
		return info
	}

	info.IsTradingDay = true
	if reason := earlyCloseReason(d); reason != "" {
		info.Type = DayTypeEarlyClose
		info.CloseTime = EarlyCloseTime
		info.Note = reason
		return info
	}

	info.Type = DayTypeTrading
	info.CloseTime = NormalCloseTime
	return info
}

func (mc *MarketCalendar) isHoliday(d dateutil.CivilDate) bool {
	return mc.holidays.Get(d.Year).Contains(d)
}

func (mc *MarketCalendar) isWorkingDay(d dateutil.CivilDate) bool {
	if d.IsWeekend() {
		return false
	}
	if mc.isHoliday(d) {
		return false
	}
	_, closed := extraCloseDates[d]
	return !closed
}

// earlyCloseReason returns a non-empty note when d is a 13:00 close:
// July 3 before a weekday Independence Day, the day after Thanksgiving, and
// December 24 before a weekday Christmas.
func earlyCloseReason(d dateutil.CivilDate) string {
	switch d.Month {
	case time.July:
		if d.Day == 3 && !d.AddDays(1).IsWeekend() {
			return independenceDayEve
		}
	case time.November:
		if d == Thanksgiving(d.Year).AddDays(1) {
			return dayAfterThanksgiving
		}
	case time.December:
		if d.Day == 24 && !d.AddDays(1).IsWeekend() {
			return christmasEve
		}
	}
	return ""
}
