package calendar

import (
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/username/market-calendar/pkg/dateutil"
)

// HolidaySet is the immutable set of observed holidays for one year
type HolidaySet struct {
	year  int
	names map[dateutil.CivilDate]string
	dates []dateutil.CivilDate // sorted
}

// BuildHolidaySet evaluates every exchange holiday rule for year
func BuildHolidaySet(year int) *HolidaySet {
	hs := &HolidaySet{
		year:  year,
		names: make(map[dateutil.CivilDate]string, len(usHolidayRules)),
	}

	for _, r := range usHolidayRules {
		if d, ok := r.rule(year); ok {
			hs.names[d] = r.name
		}
	}

	hs.dates = make([]dateutil.CivilDate, 0, len(hs.names))
	for d := range hs.names {
		hs.dates = append(hs.dates, d)
	}
	sort.Slice(hs.dates, func(i, j int) bool { return hs.dates[i].Before(hs.dates[j]) })

	return hs
}

// Year returns the year the set was built for
func (hs *HolidaySet) Year() int { return hs.year }

// Len returns the number of holidays
func (hs *HolidaySet) Len() int { return len(hs.dates) }

// Contains reports whether d is an observed holiday
func (hs *HolidaySet) Contains(d dateutil.CivilDate) bool {
	_, ok := hs.names[d]
	return ok
}

// Name returns the holiday observed on d
func (hs *HolidaySet) Name(d dateutil.CivilDate) (string, bool) {
	name, ok := hs.names[d]
	return name, ok
}

// Dates returns the holidays in date order. The slice is a copy.
func (hs *HolidaySet) Dates() []dateutil.CivilDate {
	out := make([]dateutil.CivilDate, len(hs.dates))
	copy(out, hs.dates)
	return out
}

// HolidayCache memoizes holiday sets per year.
// Entries are never evicted or recomputed.
type HolidayCache struct {
	cache   map[int]*HolidaySet
	cacheMu sync.RWMutex
	group   singleflight.Group
	build   func(year int) *HolidaySet
	logger  *zap.Logger
}

// NewHolidayCache creates an empty cache
func NewHolidayCache(logger *zap.Logger) *HolidayCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayCache{
		cache:  make(map[int]*HolidaySet),
		build:  BuildHolidaySet,
		logger: logger,
	}
}

// Get returns the holiday set for year, computing it on first use.
// Concurrent first calls for the same year share a single computation.
func (c *HolidayCache) Get(year int) *HolidaySet {
	c.cacheMu.RLock()
	hs, ok := c.cache[year]
	c.cacheMu.RUnlock()
	if ok {
		return hs
	}

	v, _, _ := c.group.Do(strconv.Itoa(year), func() (interface{}, error) {
		// A caller that lost the race to the previous flight lands here
		// after that flight already published.
		c.cacheMu.RLock()
		existing, ok := c.cache[year]
		c.cacheMu.RUnlock()
		if ok {
			return existing, nil
		}

		built := c.build(year)

		c.cacheMu.Lock()
		c.cache[year] = built
		c.cacheMu.Unlock()

		c.logger.Debug("Holiday set computed",
			zap.Int("year", year),
			zap.Int("holidays", built.Len()))

		return built, nil
	})

	return v.(*HolidaySet)
}

// Len returns the number of cached years
func (c *HolidayCache) Len() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.cache)
}
