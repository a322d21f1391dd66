package calendar

import (
	"time"

	"github.com/username/market-calendar/pkg/dateutil"
)

// extraCloseDates lists unscheduled full-day closures. Add new entries by hand.
var extraCloseDates = map[dateutil.CivilDate]string{
	{Year: 2001, Month: time.September, Day: 11}: "September 11 attacks",
	{Year: 2001, Month: time.September, Day: 12}: "September 11 attacks",
	{Year: 2001, Month: time.September, Day: 13}: "September 11 attacks",
	{Year: 2001, Month: time.September, Day: 14}: "September 11 attacks",
	{Year: 2004, Month: time.June, Day: 11}:      "National Day of Mourning for President Reagan",
	{Year: 2007, Month: time.January, Day: 2}:    "National Day of Mourning for President Ford",
	{Year: 2012, Month: time.October, Day: 29}:   "Hurricane Sandy",
	{Year: 2012, Month: time.October, Day: 30}:   "Hurricane Sandy",
	{Year: 2018, Month: time.December, Day: 5}:   "National Day of Mourning for President George H.W. Bush",
}

// ExtraCloseDates returns a copy of the unscheduled closure table
func ExtraCloseDates() map[dateutil.CivilDate]string {
	out := make(map[dateutil.CivilDate]string, len(extraCloseDates))
	for d, note := range extraCloseDates {
		out[d] = note
	}
	return out
}
