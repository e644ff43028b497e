// Package calendar reads club events and lays them out by month.
package calendar

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
)

const ResourcePath = "events.csv"

const (
	dateOnly = "2006-01-02"
	monthKey = "2006-01"
)

// Formats without a zone are read as wall-clock times.
var floatingFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateOnly,
}

type Event struct {
	ID    int
	Title string
	Date  time.Time
	// Floating dates carry no zone; Date holds their wall clock in UTC.
	Floating bool
	// AllDay events were given as a date only.
	AllDay      bool
	Type        string
	Time        string
	Location    string
	Description string
	ImageURL    string
}

// EventFromRow drops rows whose date matches none of the accepted formats.
func EventFromRow(row content.Row) (Event, bool) {
	raw := strings.TrimSpace(row["date"])
	date, floating, ok := parseDate(raw)
	if !ok {
		return Event{}, false
	}
	id, _ := strconv.Atoi(strings.TrimSpace(row["id"]))
	return Event{
		ID:          id,
		Title:       row["title"],
		Date:        date,
		Floating:    floating,
		AllDay:      len(raw) == len(dateOnly),
		Type:        row["type"],
		Time:        row["time"],
		Location:    row["location"],
		Description: row["description"],
		ImageURL:    row["imageUrl"],
	}, true
}

func parseDate(s string) (date time.Time, floating bool, ok bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, true
	}
	for _, format := range floatingFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true, true
		}
	}
	return time.Time{}, false, false
}

// Start is when the event begins as seen from loc.
func (e Event) Start(loc *time.Location) time.Time {
	if !e.Floating {
		return e.Date
	}
	d := e.Date
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), 0, loc)
}

// End is when the event stops being upcoming: the end of its day for all-day
// events, its start otherwise.
func (e Event) End(loc *time.Location) time.Time {
	start := e.Start(loc)
	if e.AllDay {
		return start.AddDate(0, 0, 1)
	}
	return start
}

// ParseMonthKey reads a "YYYY-MM" month key.
func ParseMonthKey(key string) (int, time.Month, bool) {
	t, err := time.Parse(monthKey, key)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

// Month is a calendar grid for one month.
type Month struct {
	Year  int
	Month time.Month
	Days  int
	// Offset is the weekday of the 1st, Sunday being 0.
	Offset int
	byDay  map[int][]Event
}

// NewMonth normalizes out-of-range months, so month 13 is January of the
// next year.
func NewMonth(year int, month time.Month, events []Event) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()
	m := Month{
		Year:   year,
		Month:  month,
		Days:   first.AddDate(0, 1, -1).Day(),
		Offset: int(first.Weekday()),
		byDay:  make(map[int][]Event),
	}
	for _, e := range events {
		if e.Date.Year() == year && e.Date.Month() == month {
			m.byDay[e.Date.Day()] = append(m.byDay[e.Date.Day()], e)
		}
	}
	return m
}

func (m Month) Title() string {
	return m.Month.String() + " " + strconv.Itoa(m.Year)
}

func (m Month) Key() string {
	return m.first().Format(monthKey)
}

func (m Month) PrevKey() string {
	return m.first().AddDate(0, -1, 0).Format(monthKey)
}

func (m Month) NextKey() string {
	return m.first().AddDate(0, 1, 0).Format(monthKey)
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// DayNumbers lists 1..Days.
func (m Month) DayNumbers() []int {
	days := make([]int, 0, m.Days)
	for d := 1; d <= m.Days; d++ {
		days = append(days, d)
	}
	return days
}

func (m Month) EventsOn(day int) []Event {
	return m.byDay[day]
}

// Cells lists the grid cells: Offset zeros, then the days 1..Days.
func (m Month) Cells() []int {
	cells := make([]int, m.Offset, m.Offset+m.Days)
	for d := 1; d <= m.Days; d++ {
		cells = append(cells, d)
	}
	return cells
}

// MonthKeys lists every month from the earliest to the latest of the events
// and now, in order.
func MonthKeys(events []Event, now time.Time) []string {
	lo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	hi := lo
	for _, e := range events {
		m := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if m.Before(lo) {
			lo = m
		}
		if m.After(hi) {
			hi = m
		}
	}
	var keys []string
	for m := lo; !m.After(hi); m = m.AddDate(0, 1, 0) {
		keys = append(keys, m.Format(monthKey))
	}
	return keys
}

// Upcoming returns events that have not ended by now, soonest first. An
// all-day event stays upcoming for the whole of its day.
func Upcoming(events []Event, now time.Time) []Event {
	loc := now.Location()
	out := make([]Event, 0)
	for _, e := range events {
		if !e.End(loc).Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start(loc).Before(out[j].Start(loc)) })
	return out
}

// Past returns the events Upcoming leaves out, most recent first.
func Past(events []Event, now time.Time) []Event {
	loc := now.Location()
	out := make([]Event, 0)
	for _, e := range events {
		if e.End(loc).Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start(loc).After(out[j].Start(loc)) })
	return out
}

type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// CountdownTo splits the time left until target; zero once it has passed.
func CountdownTo(now, target time.Time) Countdown {
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{}
	}
	secs := int(d / time.Second)
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs / 3600 % 24,
		Minutes: secs / 60 % 60,
		Seconds: secs % 60,
	}
}
