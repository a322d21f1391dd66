package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/market-calendar/pkg/dateutil"
)

// FileCalendar implements Calendar from a published calendar text file.
//
// One line per exceptional day:
//
//	YYYY-MM-DD holiday|closure [note]
//	YYYY-MM-DD trading|early_close HH:MM [note]
//
// Fields are separated by any run of spaces or tabs. Blank lines and lines
// starting with '#' are ignored. Days not listed in a covered year are
// regular sessions on weekdays and weekends otherwise.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	days     map[dateutil.CivilDate]DayInfo
	years    map[int]bool
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		days:     make(map[dateutil.CivilDate]DayInfo),
		years:    make(map[int]bool),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	if err := fc.LoadFrom(file); err != nil {
		return err
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", len(fc.days)),
		zap.Int("years", len(fc.years)))

	return nil
}

// LoadFrom parses calendar lines from r. Malformed lines are skipped with a warning.
func (fc *FileCalendar) LoadFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		info, err := parseCalendarLine(line)
		if err != nil {
			fc.logger.Warn("Invalid calendar line",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			continue
		}

		fc.days[info.Date] = info
		fc.years[info.Date.Year] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	return nil
}

func parseCalendarLine(line string) (DayInfo, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return DayInfo{}, fmt.Errorf("expected at least date and type")
	}

	date, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return DayInfo{}, fmt.Errorf("failed to parse date: %w", err)
	}

	dayType, ok := ParseDayType(fields[1])
	if !ok {
		return DayInfo{}, fmt.Errorf("unknown day type %q", fields[1])
	}

	info := DayInfo{
		Date: dateutil.DateOf(date),
		Type: dayType,
	}

	rest := fields[2:]
	switch dayType {
	case DayTypeTrading, DayTypeEarlyClose:
		if len(rest) == 0 {
			return DayInfo{}, fmt.Errorf("missing close time")
		}
		closeTime, err := dateutil.ParseClock(rest[0])
		if err != nil {
			return DayInfo{}, fmt.Errorf("failed to parse close time: %w", err)
		}
		info.IsTradingDay = true
		info.CloseTime = closeTime
		rest = rest[1:]
	}

	// Notes are single-spaced regardless of the file's spacing
	info.Note = strings.Join(rest, " ")

	return info, nil
}

// Covers reports whether the file lists any day of year
func (fc *FileCalendar) Covers(year int) bool {
	return fc.years[year]
}

// Years returns the covered years in ascending order
func (fc *FileCalendar) Years() []int {
	years := make([]int, 0, len(fc.years))
	for y := range fc.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// IsTradingDay checks if the market trades on the given date
func (fc *FileCalendar) IsTradingDay(date time.Time) (bool, error) {
	dayInfo, err := fc.GetDayInfo(date)
	if err != nil {
		return false, err
	}

	return dayInfo.IsTradingDay, nil
}

// GetMonthInfo returns calendar info for the entire month
func (fc *FileCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	if !fc.Covers(year) {
		return nil, fmt.Errorf("year not covered by calendar file: %d", year)
	}

	daysInMonth := dateutil.DaysInMonth(year, month)
	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		monthInfo.add(fc.dayInfo(dateutil.NewDate(year, month, day)))
	}

	return monthInfo, nil
}

// GetDayInfo returns detailed info for a specific day
func (fc *FileCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	d := dateutil.DateOf(date)
	if !fc.Covers(d.Year) {
		return nil, fmt.Errorf("day not covered by calendar file: %s", d)
	}

	info := fc.dayInfo(d)
	return &info, nil
}

func (fc *FileCalendar) dayInfo(d dateutil.CivilDate) DayInfo {
	if info, ok := fc.days[d]; ok {
		return info
	}
	if d.IsWeekend() {
		return DayInfo{Date: d, Type: DayTypeWeekend}
	}
	return DayInfo{
		Date:         d,
		Type:         DayTypeTrading,
		IsTradingDay: true,
		CloseTime:    NormalCloseTime,
	}
}
