package calendar

import (
	"time"

	"github.com/username/market-calendar/pkg/dateutil"
)

// Helpers below read the injected clock.

// Now returns the current market civil time
func (mc *MarketCalendar) Now() time.Time {
	return mc.clock.Now()
}

// IsMarketOpenNow reports whether the market is trading right now
func (mc *MarketCalendar) IsMarketOpenNow() bool {
	return mc.IsMarketOpenAt(mc.Now())
}

// CheckTimeNow classifies the current time of day
func (mc *MarketCalendar) CheckTimeNow() MarketTime {
	return mc.CheckTime(mc.Now())
}

// IsWorkingDayToday reports whether today is a trading day
func (mc *MarketCalendar) IsWorkingDayToday() bool {
	return mc.IsWorkingDay(mc.Now())
}

// IsHolidayToday reports whether today is an exchange holiday
func (mc *MarketCalendar) IsHolidayToday() bool {
	return mc.IsHoliday(mc.Now())
}

// IsEarlyCloseToday reports whether today closes at 13:00
func (mc *MarketCalendar) IsEarlyCloseToday() bool {
	return mc.IsEarlyCloseDay(mc.Now())
}

// CloseTimeForToday returns today's nominal close
func (mc *MarketCalendar) CloseTimeForToday() time.Duration {
	return mc.CloseTimeForDate(mc.Now())
}

// NextTradingDay returns the first trading day after today
func (mc *MarketCalendar) NextTradingDay() dateutil.CivilDate {
	return mc.NextTradingDayAfter(mc.Now())
}

// PrevTradingDay returns the last trading day before today
func (mc *MarketCalendar) PrevTradingDay() dateutil.CivilDate {
	return mc.PrevTradingDayBefore(mc.Now())
}

// TimeLeftToOpen is negative once today's open has passed
func (mc *MarketCalendar) TimeLeftToOpen() time.Duration {
	return MarketOpenTime - dateutil.TimeOfDay(mc.Now())
}

// TimeLeftToClose is negative once today's close has passed
func (mc *MarketCalendar) TimeLeftToClose() time.Duration {
	now := mc.Now()
	return mc.CloseTimeForDate(now) - dateutil.TimeOfDay(now)
}
