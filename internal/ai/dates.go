package ai

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

var (
	isoDateRe     = regexp.MustCompile(`\b(\d{4})[-/](\d{2})[-/](\d{2})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})\b`)
	inNDaysRe     = regexp.MustCompile(`\bin\s+(\d{1,2})\s+days?\b`)
)

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var weekdayRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(weekdayNames))
	for i, name := range weekdayNames {
		res[i] = regexp.MustCompile(`\b(next\s+)?` + name + `\b`)
	}
	return res
}()

// ExtractDate scans free text for a date and returns it as YYYY-MM-DD.
// fullText is the whole conversation's user text; latestUser is the most
// recent user message, which is the only place relative keywords count
// (a user correcting a date verbally wins over a stale date earlier on).
//
// Priority: explicit ISO dates anywhere beat everything; then relative
// keywords in the latest message; then numeric M/D/Y forms; then "in N
// days"; then weekday names. Within a category the last textual match wins,
// modeling "the user corrected themselves". Returns false when nothing
// matches; callers must treat that as needing clarification, never a
// default date.
func ExtractDate(fullText, latestUser string, today time.Time) (string, bool) {
	full := strings.ToLower(fullText)
	latest := strings.ToLower(latestUser)

	if d, ok := lastISODate(full); ok {
		return d, true
	}

	if strings.Contains(latest, "tomorrow") {
		return today.AddDate(0, 0, 1).Format(isoDateLayout), true
	}
	if strings.Contains(latest, "today") {
		return today.Format(isoDateLayout), true
	}

	if d, ok := lastNumericDate(full); ok {
		return d, true
	}

	if m := inNDaysRe.FindStringSubmatch(latest); m != nil {
		n, _ := strconv.Atoi(m[1])
		return today.AddDate(0, 0, n).Format(isoDateLayout), true
	}

	if d, ok := weekdayDate(latest, today); ok {
		return d, true
	}

	return "", false
}

func lastISODate(text string) (string, bool) {
	var last string
	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if iso, ok := safeDate(y, mo, d); ok {
			last = iso
		}
	}
	return last, last != ""
}

func lastNumericDate(text string) (string, bool) {
	var last string
	for _, m := range numericDateRe.FindAllStringSubmatch(text, -1) {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if y < 100 {
			y += 2000
		}
		if iso, ok := safeDate(y, mo, d); ok {
			last = iso
		}
	}
	return last, last != ""
}

func weekdayDate(text string, today time.Time) (string, bool) {
	// Last mention wins when several weekdays appear.
	bestIdx := -1
	var bestDay time.Weekday
	bestNext := false
	for i, re := range weekdayRes {
		locs := re.FindAllStringSubmatchIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		last := locs[len(locs)-1]
		if last[0] > bestIdx {
			bestIdx = last[0]
			bestDay = time.Weekday(i)
			bestNext = last[2] >= 0 // "next " group matched
		}
	}
	if bestIdx < 0 {
		return "", false
	}
	base := today
	if bestNext {
		// "next friday" skips the soonest occurrence entirely.
		base = base.AddDate(0, 0, 7)
	}
	return nextWeekday(base, bestDay).Format(isoDateLayout), true
}

// nextWeekday returns the first occurrence of day strictly after start:
// if start already falls on day, it advances a full week.
func nextWeekday(start time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(start.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return start.AddDate(0, 0, delta)
}

// safeDate rejects impossible calendar dates like month 13.
func safeDate(year, month, day int) (string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(isoDateLayout), true
}

// NormalizeDate parses a single explicit date token (ISO or numeric M/D/Y)
// into YYYY-MM-DD. Used by the plan-block parser's date: field.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return safeDate(y, mo, d)
	}
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if y < 100 {
			y += 2000
		}
		return safeDate(y, mo, d)
	}
	return "", false
}
