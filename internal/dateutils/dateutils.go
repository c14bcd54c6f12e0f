// Package dateutils provides the date parsing and calendar-window operations
// used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants used throughout the application.
const (
	// LayoutISO is the storage format for every date column.
	LayoutISO = "2006-01-02"
	// LayoutDayFirst matches "5 Aug 2025" style dates from notification text.
	LayoutDayFirst = "2 Jan 2006"
	// LayoutDayFirstLong matches "5 August 2025".
	LayoutDayFirstLong = "2 January 2006"
)

// CommonFormats is the list of formats tried when parsing free-form dates.
var CommonFormats = []string{
	LayoutISO,
	LayoutDayFirst,
	LayoutDayFirstLong,
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// indonesianMonths maps Indonesian month tokens to their canonical 3-letter
// English forms. Long names first so "Agustus" is not clipped by "Agu".
var indonesianMonths = []struct{ id, en string }{
	{"Januari", "Jan"}, {"Februari", "Feb"}, {"Maret", "Mar"}, {"April", "Apr"},
	{"Mei", "May"}, {"Juni", "Jun"}, {"Juli", "Jul"}, {"Agustus", "Aug"},
	{"September", "Sep"}, {"Oktober", "Oct"}, {"November", "Nov"}, {"Desember", "Dec"},
	{"Agu", "Aug"}, {"Okt", "Oct"}, {"Des", "Dec"},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace runs in a date string.
func CleanDateString(dateStr string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// TranslateIndonesianMonths rewrites Indonesian month names (long or short)
// into the canonical 3-letter English forms so the stdlib layouts can parse
// the result.
func TranslateIndonesianMonths(dateStr string) string {
	for _, m := range indonesianMonths {
		dateStr = strings.ReplaceAll(dateStr, m.id, m.en)
	}
	return dateStr
}

// ParseDate attempts to parse a date string using the common formats,
// translating Indonesian month names first. Day-first convention applies to
// ambiguous separators.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := TranslateIndonesianMonths(CleanDateString(dateStr))
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISO formats a time as the storage date format.
func ToISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameISOWeek reports whether two times fall in the same ISO week.
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysUntil returns the number of whole days from today until the target
// date, clamped to a minimum of 1 so divisions by it are always safe.
func DaysUntil(target, today time.Time) int {
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(n).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// MonthAnchor returns today's year/month with the given day-of-month, or
// false when that day does not exist in the current month (e.g. day 31 in
// February). Callers skip the cycle in that case rather than clamping.
func MonthAnchor(today time.Time, day int) (time.Time, bool) {
	anchored := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.UTC)
	if anchored.Month() != today.Month() {
		return time.Time{}, false
	}
	return anchored, true
}
