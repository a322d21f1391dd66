package calendar

import (
	"time"

	"github.com/username/market-calendar/pkg/dateutil"
)

// Holiday names as they appear in day notes and exports
const (
	NewYearsDay     = "New Year's Day"
	MLKDay          = "Martin Luther King Jr. Day"
	PresidentsDay   = "Presidents' Day"
	GoodFridayName  = "Good Friday"
	MemorialDayName = "Memorial Day"
	JuneteenthName  = "Juneteenth"
	IndependenceDay = "Independence Day"
	LaborDayName    = "Labor Day"
	ThanksgivingDay = "Thanksgiving Day"
	ChristmasDay    = "Christmas Day"
)

// HolidayRule maps a year to the observed date of a holiday.
// ok is false when the holiday causes no closure that year.
type HolidayRule func(year int) (date dateutil.CivilDate, ok bool)

type namedRule struct {
	name string
	rule HolidayRule
}

// usHolidayRules lists the ten exchange holidays in calendar order
var usHolidayRules = []namedRule{
	{NewYearsDay, NewYear},
	{MLKDay, always(MartinLutherKingDay)},
	{PresidentsDay, always(PresidentsDayDate)},
	{GoodFridayName, always(GoodFriday)},
	{MemorialDayName, always(MemorialDay)},
	{JuneteenthName, always(Juneteenth)},
	{IndependenceDay, always(IndependenceDayDate)},
	{LaborDayName, always(LaborDay)},
	{ThanksgivingDay, always(Thanksgiving)},
	{ChristmasDay, always(ChristmasDayDate)},
}

func always(f func(int) dateutil.CivilDate) HolidayRule {
	return func(year int) (dateutil.CivilDate, bool) {
		return f(year), true
	}
}

// NewYear returns the New Year's Day observance.
// A Sunday holiday moves to Monday; a Saturday holiday closes nothing in this year.
func NewYear(year int) (dateutil.CivilDate, bool) {
	d := dateutil.NewDate(year, time.January, 1)
	switch d.Weekday() {
	case time.Sunday:
		return d.AddDays(1), true
	case time.Saturday:
		return dateutil.CivilDate{}, false
	default:
		return d, true
	}
}

// MartinLutherKingDay is the third Monday of January
func MartinLutherKingDay(year int) dateutil.CivilDate {
	return thirdMonday(year, time.January)
}

// PresidentsDayDate is the third Monday of February
func PresidentsDayDate(year int) dateutil.CivilDate {
	return thirdMonday(year, time.February)
}

// Thanksgiving is the fourth Thursday of November
func Thanksgiving(year int) dateutil.CivilDate {
	return fourthThursday(year, time.November)
}

// GoodFriday returns the Friday before Gregorian Easter Sunday
func GoodFriday(year int) dateutil.CivilDate {
	g := year % 19
	c := year / 100
	h := (c - c/4 - (8*c+13)/25 + 19*g + 15) % 30
	i := h - (h/28)*(1-(h/28)*(29/(h+1))*((21-g)/11))

	day := i - ((year + year/4 + i + 2 - c + c/4) % 7) + 28
	month := time.March
	if day > 31 {
		month = time.April
		day -= 31
	}

	return dateutil.NewDate(year, month, day).AddDays(-2)
}

// MemorialDay is the last Monday of May
func MemorialDay(year int) dateutil.CivilDate {
	d := dateutil.NewDate(year, time.May, 31)
	for d.Weekday() != time.Monday {
		d = d.AddDays(-1)
	}
	return d
}

// LaborDay is the first Monday of September
func LaborDay(year int) dateutil.CivilDate {
	d := dateutil.NewDate(year, time.September, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDays(1)
	}
	return d
}

// Juneteenth is June 19, observed on the nearest weekday
func Juneteenth(year int) dateutil.CivilDate {
	return observeOnWeekday(dateutil.NewDate(year, time.June, 19))
}

// IndependenceDayDate is July 4, observed on the nearest weekday
func IndependenceDayDate(year int) dateutil.CivilDate {
	return observeOnWeekday(dateutil.NewDate(year, time.July, 4))
}

// ChristmasDayDate is December 25, observed on the nearest weekday
func ChristmasDayDate(year int) dateutil.CivilDate {
	return observeOnWeekday(dateutil.NewDate(year, time.December, 25))
}

// thirdMonday uses time.Weekday numbering (Sunday = 0)
func thirdMonday(year int, month time.Month) dateutil.CivilDate {
	first := dateutil.NewDate(year, month, 1)
	return dateutil.NewDate(year, month, 21-((int(first.Weekday())+5)%7))
}

func fourthThursday(year int, month time.Month) dateutil.CivilDate {
	first := dateutil.NewDate(year, month, 1)
	return dateutil.NewDate(year, month, 28-((int(first.Weekday())+2)%7))
}

// observeOnWeekday moves a date to the nearest weekday if it falls on a weekend
// Saturday -> Friday, Sunday -> Monday
func observeOnWeekday(d dateutil.CivilDate) dateutil.CivilDate {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}
