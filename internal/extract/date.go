package extract

import (
	"regexp"
	"strings"
)

// dateTemplates are evaluated in priority order, most specific first; the
// first matching template wins outright. Tokens allow the digit confusables
// where OCR plausibly injects them (notably the year), and are corrected
// after the match. No calendar validation happens here: a corrected month
// of 13 is still returned, callers validate independently.
var dateTemplates = []struct {
	re         *regexp.Regexp
	alphaMonth bool
}{
	// DATE: 12-JAN-2025 / DATED 12 JAN 25
	{regexp.MustCompile(`\b(?:DATED|DATE|DT)\b\s*[:.\-]*\s*(\d{1,2})[\s/.\-]+([A-Z]{3,9})[\s/.\-]+(\d{2}[0-9OISZBGT]{2}|\d{2})\b`), true},
	// 12-JAN-2025 anywhere
	{regexp.MustCompile(`\b(\d{1,2})[\s/.\-]+([A-Z]{3,9})[\s/.\-]+(\d{2}[0-9OISZBGT]{2}|\d{2})\b`), true},
	// 23-01-2025 / 23 01 202S anywhere
	{regexp.MustCompile(`\b(\d{1,2})[\s/.\-]+(\d{1,2})[\s/.\-]+(\d{2}[0-9OISZBGT]{2}|\d{2})\b`), false},
	// DATE: 23/01/2025
	{regexp.MustCompile(`\b(?:DATED|DATE|DT)\b\s*[:.\-]*\s*(\d{1,2})[\s/.\-]+(\d{1,2})[\s/.\-]+(\d{2}[0-9OISZBGT]{2}|\d{2})\b`), false},
}

// ExtractDate finds a transaction date in the raw transcript and normalizes
// it to day-month-year with '-' separators. Day and year tokens always get
// digit-context correction; the month token only when the matched template
// is numeric (an alphabetic OCT must not be pushed through the digit table).
// Two-digit years are widened with a "20" prefix.
func ExtractDate(text string) (string, bool) {
	t := strings.ToUpper(text)
	for _, tpl := range dateTemplates {
		m := tpl.re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		day := correctDigits(m[1])
		month := m[2]
		if !tpl.alphaMonth {
			month = correctDigits(month)
		}
		year := correctDigits(m[3])
		if len(year) == 2 {
			year = "20" + year
		}
		return day + "-" + month + "-" + year, true
	}
	return "", false
}
