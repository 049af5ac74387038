package util

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
)

const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "01-02-2006"
	HolidayFormat  = "2006-01-02"
)

// Calendar local time zone of the legislature and its statutory holidays.
type Calendar struct {
	Location *time.Location
	holidays map[string]struct{}
}

func NewCalendar(tz string, holidays []string) (*Calendar, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed load location %q", tz)
	}
	c := &Calendar{
		Location: loc,
		holidays: make(map[string]struct{}, len(holidays)),
	}
	for _, h := range holidays {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		d, err := time.Parse(HolidayFormat, h)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed parse holiday %q", h)
		}
		c.holidays[d.Format(HolidayFormat)] = struct{}{}
	}
	return c, nil
}

func (c *Calendar) LocalTime(t time.Time) time.Time {
	return t.In(c.Location)
}

func (c *Calendar) CurrentLocalTime() time.Time {
	return c.LocalTime(time.Now())
}

// LocalFormattedDateTime formats t in the local zone, layout defaults to DateTimeFormat.
func (c *Calendar) LocalFormattedDateTime(t time.Time, layout string) string {
	if layout == "" {
		layout = DateTimeFormat
	}
	return c.LocalTime(t).Format(layout)
}

func (c *Calendar) LocalFormattedDate(t time.Time) string {
	return c.LocalTime(t).Format(DateFormat)
}

// IsHoliday суббота, воскресенье или праздник из списка.
func (c *Calendar) IsHoliday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	_, ok := c.holidays[t.Format(HolidayFormat)]
	return ok
}

// NearestBusinessDay returns t itself when it is a business day and includeToday is set,
// otherwise the first business day after it.
func (c *Calendar) NearestBusinessDay(t time.Time, includeToday bool) time.Time {
	if !includeToday {
		t = NextDay(t)
	}
	for c.IsHoliday(t) {
		t = NextDay(t)
	}
	return t
}

// WeekStartAndEnd returns sunday and saturday of the week.
// index: 0 current week, 1 last week and so on.
func WeekStartAndEnd(now time.Time, index int) (time.Time, time.Time) {
	current := now.AddDate(0, 0, -index*6)
	// weekday с понедельника = 0
	weekday := (int(current.Weekday()) + 6) % 7
	start := current.AddDate(0, 0, -(weekday + 1))
	end := start.AddDate(0, 0, 6)
	return start, end
}

// FirstAndLastDatesOfMonth keeps the clock of now.
func FirstAndLastDatesOfMonth(now time.Time, month time.Month, year int) (time.Time, time.Time) {
	start := time.Date(year, month, 1, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}

func PreviousMonthAndYear(now time.Time) (time.Month, int) {
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	return last.Month(), last.Year()
}

func PreviousDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}

func NextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// FiscalYear до 31 марта включительно используется текущий год.
func FiscalYear(t time.Time) int {
	if t.Month() > time.March {
		return t.Year() + 1
	}
	return t.Year()
}
