// Package normalize canonicalizes raw extracted scalars. Both functions are
// total and side-effect-free: they never return an error, and normalizing an
// already-canonical value returns it unchanged.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCurrency = regexp.MustCompile(`[€$£]`)
	// a dot followed by exactly three digits is a thousands separator
	reThousands = regexp.MustCompile(`(\d)\.(\d{3})\b`)
	// a trailing comma with one or two digits is a decimal separator
	reDecimalComma = regexp.MustCompile(`,(\d{1,2})$`)
)

// Amount parses a raw currency string into a two-decimal-rounded float.
// European grouping ("1.234,56") and US grouping ("1,234.56") are both
// accepted; currency symbols and whitespace are stripped. ok is false when
// the residual string is not a valid number.
func Amount(raw string) (float64, bool) {
	s := reCurrency.ReplaceAllString(strings.TrimSpace(raw), "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	// collapse thousands separators repeatedly: "1.234.567,89" needs two passes
	for {
		next := reThousands.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}
	s = reDecimalComma.ReplaceAllString(s, ".$1")
	// leftover commas are US thousands separators
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}

var monthAbbrev = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`),
	regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),
}

var reTextualMonth = regexp.MustCompile(`(?i)(\d{1,2})\s*(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*(\d{4})`)

// Date emits a zero-padded DD.MM.YYYY for any recognized day/month/year
// pattern (numeric with ./-/ separators, or an English month abbreviation).
// Unrecognized input is returned unchanged; the caller keeps whatever the
// document said rather than inventing an absence.
func Date(raw string) string {
	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return formatDate(day, month, year)
		}
	}
	if m := reTextualMonth.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthAbbrev[strings.ToLower(m[2])]
		year, _ := strconv.Atoi(m[3])
		return formatDate(day, month, year)
	}
	return raw
}

func formatDate(day, month, year int) string {
	return fmt.Sprintf("%02d.%02d.%04d", day, month, year)
}
