package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the target format for listed dates: day/month/year.
const DateLayout = "02/01/2006"

// Both long and compact unit forms appear on listing cards ("2 days ago",
// "3d ago"). "m" alone means minutes there, months always spell "mo" at
// minimum.
var (
	prefixRe  = regexp.MustCompile(`^(listed|posted)\s+`)
	minutesRe = regexp.MustCompile(`^(\d+)\s*(?:m|mins?|minutes?)\s*ago$`)
	hoursRe   = regexp.MustCompile(`^(\d+)\s*(?:h|hours?)\s*ago$`)
	daysRe    = regexp.MustCompile(`^(\d+)\s*(?:d|days?)\s*ago$`)
	weeksRe   = regexp.MustCompile(`^(\d+)\s*(?:w|weeks?)\s*ago$`)
	monthsRe  = regexp.MustCompile(`^(\d+)\s*(?:mo|months?)\s*ago$`)
)

// Sources occasionally spell small hour counts out ("six hours ago").
var hourWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// Layouts a source may use when it supplies an already-absolute date.
var absoluteLayouts = []string{
	DateLayout,
	"2/1/2006",
	"2006-01-02",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ListedDate converts a raw listed-date expression ("6 hours ago", "today",
// "12/03/2024") into an absolute dd/mm/yyyy date in loc, relative to ref.
// Already-absolute parseable dates pass through unchanged (cleaned). Anything
// unrecognized degrades to "" — an unknown date is never an error.
//
// ListedDate is pure: the reference instant is always injected so repeated
// runs over the same feed produce identical rows.
func ListedDate(raw string, ref time.Time, loc *time.Location) string {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return ""
	}

	now := ref.In(loc)
	expr := strings.ToLower(cleaned)
	expr = prefixRe.ReplaceAllString(expr, "")

	switch expr {
	case "today", "just now", "just listed":
		return now.Format(DateLayout)
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(DateLayout)
	}

	if n, ok := matchCount(minutesRe, expr); ok {
		return now.Add(-time.Duration(n) * time.Minute).Format(DateLayout)
	}
	if n, ok := matchCount(hoursRe, expr); ok {
		return now.Add(-time.Duration(n) * time.Hour).Format(DateLayout)
	}
	if n, ok := matchCount(daysRe, expr); ok {
		return now.AddDate(0, 0, -n).Format(DateLayout)
	}
	if n, ok := matchCount(weeksRe, expr); ok {
		return now.AddDate(0, 0, -7*n).Format(DateLayout)
	}
	if n, ok := matchCount(monthsRe, expr); ok {
		return now.AddDate(0, 0, -30*n).Format(DateLayout)
	}

	for word, n := range hourWords {
		if strings.Contains(expr, fmt.Sprintf("%s hour", word)) && strings.Contains(expr, "ago") {
			return now.Add(-time.Duration(n) * time.Hour).Format(DateLayout)
		}
	}

	// Absolute date already? Pass it through as-is.
	for _, layout := range absoluteLayouts {
		if _, err := time.Parse(layout, cleaned); err == nil {
			return cleaned
		}
	}

	return ""
}

func matchCount(re *regexp.Regexp, expr string) (int, bool) {
	m := re.FindStringSubmatch(expr)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
