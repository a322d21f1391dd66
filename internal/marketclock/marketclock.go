// Package marketclock converts instants to and from the exchange's civil
// time and supplies "now" as an injectable capability.
package marketclock

import (
	"fmt"
	"time"

	// Embedded zone database so America/New_York resolves on hosts without tzdata.
	_ "time/tzdata"
)

// DefaultTimezone is the zone US equity sessions are quoted in
const DefaultTimezone = "America/New_York"

// Clock returns the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock time.Time

// Now implements Clock
func (c FixedClock) Now() time.Time { return time.Time(c) }

// MarketClock converts between arbitrary zones and the market zone
type MarketClock struct {
	clock    Clock
	location *time.Location
}

// New creates a MarketClock for the named IANA zone
func New(clock Clock, timezone string) (*MarketClock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &MarketClock{clock: clock, location: loc}, nil
}

// Location returns the market zone
func (mc *MarketClock) Location() *time.Location { return mc.location }

// Now returns the current instant expressed in market civil time
func (mc *MarketClock) Now() time.Time {
	return mc.ToMarket(mc.clock.Now())
}

// ToMarket expresses t in market civil time
func (mc *MarketClock) ToMarket(t time.Time) time.Time {
	return t.In(mc.location)
}

// FromMarket reinterprets t's civil fields as market time and expresses the
// instant in loc. The location t carries is ignored.
func (mc *MarketClock) FromMarket(t time.Time, loc *time.Location) time.Time {
	civil := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), mc.location)
	return civil.In(loc)
}

// IsDSTChangeBetween reports whether daylight saving status in the market
// zone differs between two instants
func (mc *MarketClock) IsDSTChangeBetween(t1, t2 time.Time) bool {
	return t1.In(mc.location).IsDST() != t2.In(mc.location).IsDST()
}

// Convert expresses t in the named zone
func Convert(t time.Time, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return t.In(loc), nil
}
