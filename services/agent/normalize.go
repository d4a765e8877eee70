package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the absolute formats accepted verbatim. Day-first layouts
// follow the UK convention the booking API uses.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2-1-2006",
	"2/1/2006",
}

var (
	weekdayRe  = regexp.MustCompile(`^(next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
	monthDayRe = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
	timeRe     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	hhmmssRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// NormalizeDate converts a loosely-formatted date phrase to YYYY-MM-DD.
// The second return is false when the text cannot be understood as a real
// date; callers must ask again rather than default.
func NormalizeDate(text string, now time.Time) (string, bool) {
	txt := strings.ToLower(strings.TrimSpace(text))
	if txt == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, txt); err == nil {
			return d.Format("2006-01-02"), true
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch txt {
	case "today":
		return today.Format("2006-01-02"), true
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format("2006-01-02"), true
	}

	// Weekday names resolve to the next occurrence strictly after today;
	// "next <weekday>" adds one more week.
	if m := weekdayRe.FindStringSubmatch(txt); m != nil {
		target := weekdays[m[2]]
		delta := (int(target) - int(today.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		if m[1] != "" {
			delta += 7
		}
		return today.AddDate(0, 0, delta).Format("2006-01-02"), true
	}

	// Month name + day, optionally with a year. Without a year, assume the
	// current one and roll forward when the date has already passed.
	if m := monthDayRe.FindStringSubmatch(txt); m != nil {
		month, ok := parseMonth(m[1])
		if !ok {
			return "", false
		}
		day, err := strconv.Atoi(m[2])
		if err != nil {
			return "", false
		}

		year := now.Year()
		explicitYear := m[3] != ""
		if explicitYear {
			year, err = strconv.Atoi(m[3])
			if err != nil {
				return "", false
			}
		}

		d, ok := buildDate(year, month, day, now.Location())
		if !ok {
			return "", false
		}
		if !explicitYear && d.Before(today) {
			d, ok = buildDate(year+1, month, day, now.Location())
			if !ok {
				return "", false
			}
		}
		return d.Format("2006-01-02"), true
	}

	return "", false
}

// buildDate constructs a date and rejects impossible day-of-month values
// (time.Date would silently normalize February 30th into March).
func buildDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func parseMonth(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, true
		}
	}
	return 0, false
}

// NormalizeTime converts 12-hour, bare-hour and 24-hour phrasings to
// HH:MM:SS. Minutes default to 00. Unparseable input returns false: the
// booking path must ask again instead of silently defaulting the time of a
// real reservation.
func NormalizeTime(text string) (string, bool) {
	txt := strings.ToLower(strings.TrimSpace(text))
	if txt == "" {
		return "", false
	}

	if m := hhmmssRe.FindStringSubmatch(txt); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second, _ := strconv.Atoi(m[3])
		if hour > 23 || minute > 59 || second > 59 {
			return "", false
		}
		return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), true
	}

	m := timeRe.FindStringSubmatch(txt)
	if m == nil {
		return "", false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return "", false
		}
	}

	switch m[3] {
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return "", false
		}
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), true
}

// SuggestDefaultTime is the dinner-hour default used only when proposing a
// time to the user, never when placing a booking.
func SuggestDefaultTime() string {
	return "19:00:00"
}
