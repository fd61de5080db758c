// Package due turns shorthand like "tomorrow", "fri", or "in 3 days"
// into concrete deadlines. Shorthand resolves to end of day so a task
// due "today" stays on time until midnight.
package due

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseError reports input that no rule or date layout matched.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse due date %q", e.Input)
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

var relativeRe = regexp.MustCompile(`^(?:in )?(\d+) (day|week|month)s?$`)

// Parse resolves a natural-language due expression relative to now.
// Accepted forms: today/tod, tomorrow/tom, weekday names ("fri" means
// the next Friday), "next <weekday|week|month>", "[in] N days|weeks|months",
// eow/eom, and anything dateparse recognizes (2026-09-01, "Sep 1", ...).
func Parse(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return time.Time{}, &ParseError{Input: input}
	}

	switch s {
	case "today", "tod":
		return endOfDay(now), nil
	case "tomorrow", "tom":
		return endOfDay(now.AddDate(0, 0, 1)), nil
	case "eow", "end of week":
		days := int((time.Sunday - now.Weekday() + 7) % 7)
		if days == 0 {
			days = 7
		}
		return endOfDay(now.AddDate(0, 0, days)), nil
	case "eom", "end of month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return endOfDay(last), nil
	}

	if wd, ok := weekdays[s]; ok {
		days := int((wd - now.Weekday() + 7) % 7)
		if days == 0 {
			days = 7
		}
		return endOfDay(now.AddDate(0, 0, days)), nil
	}

	if rest, ok := strings.CutPrefix(s, "next "); ok {
		switch {
		case rest == "week":
			return endOfDay(now.AddDate(0, 0, 7)), nil
		case rest == "month":
			return endOfDay(now.AddDate(0, 1, 0)), nil
		default:
			if wd, ok := weekdays[rest]; ok {
				days := int((wd-now.Weekday()+7)%7) + 7
				return endOfDay(now.AddDate(0, 0, days)), nil
			}
		}
	}

	if m := relativeRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "day":
			return endOfDay(now.AddDate(0, 0, n)), nil
		case "week":
			return endOfDay(now.AddDate(0, 0, 7*n)), nil
		case "month":
			return endOfDay(now.AddDate(0, n, 0)), nil
		}
	}

	parsed, err := dateparse.ParseIn(input, now.Location())
	if err != nil {
		return time.Time{}, &ParseError{Input: input}
	}
	// Bare dates land on end of day, same as the shorthand forms.
	if parsed.Hour() == 0 && parsed.Minute() == 0 {
		parsed = endOfDay(parsed)
	}
	return parsed, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
