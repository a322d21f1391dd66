package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/username/market-calendar/internal/marketclock"
	"github.com/username/market-calendar/pkg/dateutil"
)

func newTestCalendar(t *testing.T) *MarketCalendar {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewMarketCalendar(NewHolidayCache(logger), nil, logger)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func TestIsWorkingDay_Holidays2019(t *testing.T) {
	cal := newTestCalendar(t)

	holidays := []time.Time{
		day(2019, 1, 1),   // New Year's Day
		day(2019, 1, 21),  // MLK Day
		day(2019, 2, 18),  // Presidents Day
		day(2019, 4, 19),  // Good Friday
		day(2019, 5, 27),  // Memorial Day
		day(2019, 7, 4),   // Independence Day
		day(2019, 9, 2),   // Labor Day
		day(2019, 11, 28), // Thanksgiving
		day(2019, 12, 25), // Christmas
	}

	for _, d := range holidays {
		assert.False(t, cal.IsWorkingDay(d), "%s should not be a trading day", d.Format("2006-01-02"))
		assert.True(t, cal.IsHoliday(d), "%s should be a holiday", d.Format("2006-01-02"))
	}
}

func TestIsWorkingDay_WeekendAdjustment(t *testing.T) {
	cal := newTestCalendar(t)

	assert.False(t, cal.IsWorkingDay(day(2020, 7, 3)), "July 4 2020 (Sat) observed Friday")
	assert.True(t, cal.IsWorkingDay(day(2019, 7, 3)))
	assert.False(t, cal.IsWorkingDay(day(2021, 7, 5)), "July 4 2021 (Sun) observed Monday")
	assert.False(t, cal.IsWorkingDay(day(2021, 12, 24)), "Christmas 2021 (Sat) observed Friday")
	assert.False(t, cal.IsWorkingDay(day(2022, 6, 20)), "Juneteenth 2022 (Sun) observed Monday")
	assert.True(t, cal.IsWorkingDay(day(2021, 12, 31)), "New Year 2022 (Sat) is not observed in 2021")
}

func TestIsWorkingDay_Weekends(t *testing.T) {
	cal := newTestCalendar(t)

	assert.False(t, cal.IsWorkingDay(day(2019, 6, 22)))
	assert.False(t, cal.IsWorkingDay(day(2019, 6, 23)))
	assert.True(t, cal.IsWorkingDay(day(2019, 6, 21)))

	assert.True(t, cal.IsWeekend(day(2024, 11, 30)))
	assert.True(t, cal.IsWeekend(day(2024, 12, 1)))
	assert.False(t, cal.IsWeekend(day(2024, 11, 29)))

	// Every Saturday and Sunday over several years
	for d := dateutil.NewDate(2015, 1, 1); d.Year < 2030; d = d.AddDays(1) {
		if d.IsWeekend() {
			require.False(t, cal.IsWorkingDay(d.Time()), "%s is a weekend", d)
			require.False(t, cal.IsHoliday(d.Time()), "%s is a weekend and cannot be a holiday", d)
		}
	}
}

func TestIsWorkingDay_ExtraCloseDates(t *testing.T) {
	cal := newTestCalendar(t)

	closed := []time.Time{
		day(2001, 9, 11), day(2001, 9, 12), day(2001, 9, 13), day(2001, 9, 14),
		day(2004, 6, 11), day(2007, 1, 2),
		day(2012, 10, 29), day(2012, 10, 30),
		day(2018, 12, 5),
	}
	for _, d := range closed {
		assert.False(t, cal.IsWorkingDay(d), "%s should be closed", d.Format("2006-01-02"))
		assert.True(t, cal.IsExtraClosedDate(d))
		assert.False(t, cal.IsHoliday(d), "closures are not holidays")
	}

	assert.False(t, cal.IsExtraClosedDate(day(2024, 11, 28)))
	assert.True(t, cal.IsWorkingDay(day(2001, 9, 17)), "market reopened Monday 2001-09-17")
}

func TestExtraCloseDates(t *testing.T) {
	cal := newTestCalendar(t)

	closures := ExtraCloseDates()
	require.Len(t, closures, 9)
	assert.Equal(t, "Hurricane Sandy", closures[date(2012, time.October, 29)])

	for d := range closures {
		assert.True(t, cal.IsExtraClosedDate(d.Time()), "%s", d)
	}

	// callers get their own copy
	delete(closures, date(2018, time.December, 5))
	assert.Len(t, ExtraCloseDates(), 9)
	assert.True(t, cal.IsExtraClosedDate(day(2018, 12, 5)))
}

func TestCloseTimeForDate(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name string
		date time.Time
		want time.Duration
	}{
		{"day after Thanksgiving 2015", day(2015, 11, 27), EarlyCloseTime},
		{"day after Thanksgiving 2014", day(2014, 11, 28), EarlyCloseTime},
		{"day after Thanksgiving 2013", day(2013, 11, 29), EarlyCloseTime},
		{"day after Thanksgiving 2024", day(2024, 11, 29), EarlyCloseTime},
		{"Monday before Thanksgiving 2024", day(2024, 11, 25), NormalCloseTime},
		{"Christmas Eve 2015", day(2015, 12, 24), EarlyCloseTime},
		{"Christmas Eve 2014", day(2014, 12, 24), EarlyCloseTime},
		{"Christmas Eve 2013", day(2013, 12, 24), EarlyCloseTime},
		{"Christmas Eve before Sunday Christmas", day(2016, 12, 24), NormalCloseTime},
		{"Christmas Eve before Saturday Christmas", day(2021, 12, 24), NormalCloseTime},
		{"July 3 2014", day(2014, 7, 3), EarlyCloseTime},
		{"July 3 2013", day(2013, 7, 3), EarlyCloseTime},
		{"July 3 before Saturday July 4", day(2015, 7, 3), NormalCloseTime},
		{"July 2 2016", day(2016, 7, 2), NormalCloseTime},
		{"regular day", day(2024, 3, 15), NormalCloseTime},
		{"Sunday gets nominal close", day(2024, 3, 17), NormalCloseTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.CloseTimeForDate(tt.date))
			assert.Equal(t, tt.want == EarlyCloseTime, cal.IsEarlyCloseDay(tt.date))
		})
	}
}

// The close time is reported for any date, including non-trading ones.
func TestCloseTimeForDate_DoesNotCheckTradingDay(t *testing.T) {
	cal := newTestCalendar(t)

	// 2022-07-03 is a Sunday; July 4 is a Monday, so the rule still fires
	assert.False(t, cal.IsWorkingDay(day(2022, 7, 3)))
	assert.Equal(t, EarlyCloseTime, cal.CloseTimeForDate(day(2022, 7, 3)))
}

func TestCheckTime_Boundaries(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name string
		at   time.Time
		want MarketTime
	}{
		{"09:29", at(2024, 3, 15, 9, 29), BeforeOpen},
		{"09:29:59", time.Date(2024, 3, 15, 9, 29, 59, 0, time.UTC), BeforeOpen},
		{"09:30", at(2024, 3, 15, 9, 30), Open},
		{"15:59", at(2024, 3, 15, 15, 59), Open},
		{"16:00", at(2024, 3, 15, 16, 0), AfterClose},
		{"early close 12:59", at(2024, 11, 29, 12, 59), Open},
		{"early close 13:00", at(2024, 11, 29, 13, 0), AfterClose},
		{"holiday is still classified by clock", at(2024, 11, 28, 12, 0), Open},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.CheckTime(tt.at))
		})
	}
}

func TestIsMarketOpenAt(t *testing.T) {
	cal := newTestCalendar(t)

	assert.False(t, cal.IsMarketOpenAt(at(2024, 11, 28, 12, 0)), "Thanksgiving")
	assert.True(t, cal.IsMarketOpenAt(at(2024, 11, 29, 12, 0)))
	assert.False(t, cal.IsMarketOpenAt(at(2024, 11, 29, 14, 0)), "after early close")
	assert.False(t, cal.IsMarketOpenAt(at(2024, 11, 30, 12, 0)), "Saturday")
	assert.False(t, cal.IsMarketOpenAt(at(2018, 12, 5, 12, 0)), "closure")
	assert.True(t, cal.IsMarketOpenAt(at(2024, 3, 15, 9, 30)))
	assert.False(t, cal.IsMarketOpenAt(at(2024, 3, 15, 9, 29)))
}

func TestNextPrevTradingDay(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name     string
		from     time.Time
		wantNext dateutil.CivilDate
		wantPrev dateutil.CivilDate
	}{
		{"Thanksgiving 2024", day(2024, 11, 28), date(2024, 11, 29), date(2024, 11, 27)},
		{"Saturday", day(2024, 11, 30), date(2024, 12, 2), date(2024, 11, 29)},
		{"Good Friday 2025", day(2025, 4, 18), date(2025, 4, 21), date(2025, 4, 17)},
		{"New Year 2024", day(2024, 1, 1), date(2024, 1, 2), date(2023, 12, 29)},
		{"9/11", day(2001, 9, 11), date(2001, 9, 17), date(2001, 9, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNext, cal.NextTradingDayAfter(tt.from))
			assert.Equal(t, tt.wantPrev, cal.PrevTradingDayBefore(tt.from))
		})
	}
}

func TestNextPrevTradingDay_Properties(t *testing.T) {
	cal := newTestCalendar(t)

	for d := dateutil.NewDate(2019, 1, 1); d.Year < 2027; d = d.AddDays(1) {
		next := cal.NextTradingDayAfter(d.Time())
		prev := cal.PrevTradingDayBefore(d.Time())

		require.True(t, next.After(d), "next(%s) = %s", d, next)
		require.True(t, prev.Before(d), "prev(%s) = %s", d, prev)
		require.True(t, cal.IsWorkingDay(next.Time()))
		require.True(t, cal.IsWorkingDay(prev.Time()))

		// nothing in between is a trading day
		for x := d.AddDays(1); x.Before(next); x = x.AddDays(1) {
			require.False(t, cal.IsWorkingDay(x.Time()), "%s skipped between %s and %s", x, d, next)
		}
	}
}

func TestGetHolidays(t *testing.T) {
	cal := newTestCalendar(t)

	first := cal.GetHolidays(2024)
	second := cal.GetHolidays(2024)
	assert.Same(t, first, second, "cached set must be reused")
	assert.Equal(t, 10, first.Len())
	assert.Equal(t, 9, cal.GetHolidays(2022).Len())

	all := cal.GetHolidaysRange(2022, 3)
	require.Len(t, all, 9+10+10)
	assert.Equal(t, date(2022, 1, 17), all[0], "2022 starts with MLK day")
	assert.Equal(t, date(2024, 12, 25), all[len(all)-1])
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Before(all[i]), "range must be in date order")
	}
}

func TestHolidayName(t *testing.T) {
	cal := newTestCalendar(t)

	name, ok := cal.HolidayName(day(2025, 4, 18))
	assert.True(t, ok)
	assert.Equal(t, GoodFridayName, name)

	_, ok = cal.HolidayName(day(2025, 4, 17))
	assert.False(t, ok)
}

func TestGetDayInfo(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name      string
		date      time.Time
		wantType  DayType
		wantClose time.Duration
		wantNote  string
	}{
		{"regular", day(2024, 3, 15), DayTypeTrading, NormalCloseTime, ""},
		{"early close", day(2024, 11, 29), DayTypeEarlyClose, EarlyCloseTime, dayAfterThanksgiving},
		{"holiday", day(2024, 11, 28), DayTypeHoliday, 0, ThanksgivingDay},
		{"weekend", day(2024, 11, 30), DayTypeWeekend, 0, ""},
		{"closure", day(2012, 10, 29), DayTypeClosure, 0, "Hurricane Sandy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := cal.GetDayInfo(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, info.Type)
			assert.Equal(t, tt.wantClose, info.CloseTime)
			assert.Equal(t, tt.wantNote, info.Note)
			assert.Equal(t, cal.IsWorkingDay(tt.date), info.IsTradingDay)
		})
	}
}

func TestGetMonthInfo_November2024(t *testing.T) {
	cal := newTestCalendar(t)

	info, err := cal.GetMonthInfo(2024, time.November)
	require.NoError(t, err)

	assert.Len(t, info.Days, 30)
	assert.Equal(t, 20, info.TradingDays) // 21 weekdays minus Thanksgiving
	assert.Equal(t, 1, info.EarlyCloses)
	assert.Equal(t, 9, info.Weekends)
	assert.Equal(t, 1, info.Holidays)
}

func TestNowHelpers(t *testing.T) {
	// 2024-11-29 17:00 UTC is 12:00 EST on the day after Thanksgiving
	mclock, err := marketclock.New(marketclock.FixedClock(time.Date(2024, 11, 29, 17, 0, 0, 0, time.UTC)), marketclock.DefaultTimezone)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	cal := NewMarketCalendar(NewHolidayCache(logger), mclock, logger)

	assert.True(t, cal.IsMarketOpenNow())
	assert.Equal(t, Open, cal.CheckTimeNow())
	assert.True(t, cal.IsWorkingDayToday())
	assert.False(t, cal.IsHolidayToday())
	assert.True(t, cal.IsEarlyCloseToday())
	assert.Equal(t, EarlyCloseTime, cal.CloseTimeForToday())
	assert.Equal(t, date(2024, 12, 2), cal.NextTradingDay())
	assert.Equal(t, date(2024, 11, 27), cal.PrevTradingDay())
	assert.Equal(t, -150*time.Minute, cal.TimeLeftToOpen())
	assert.Equal(t, time.Hour, cal.TimeLeftToClose())
}

func TestNowHelpers_DefaultClock(t *testing.T) {
	cal := NewMarketCalendar(nil, nil, nil)

	now := cal.Now()
	assert.Equal(t, marketclock.DefaultTimezone, now.Location().String())
	assert.WithinDuration(t, time.Now(), now, time.Minute)

	assert.NotPanics(t, func() {
		cal.IsMarketOpenNow()
		cal.TimeLeftToClose()
	})
	assert.True(t, cal.NextTradingDay().After(dateutil.DateOf(now)))
}

func TestPrewarm(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cache := NewHolidayCache(logger)
	cal := NewMarketCalendar(cache, nil, logger)

	cal.Prewarm(2020, 5)
	assert.Equal(t, 5, cache.Len())

	cal.Prewarm(2022, 5)
	assert.Equal(t, 7, cache.Len())
}
