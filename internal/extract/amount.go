package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// keywordWindow bounds how far past a keyword the value cell can sit.
	keywordWindow = 100
	// plausibleMin excludes stray line and item index numbers.
	plausibleMin = 10.0
)

// amountClasses in precedence order: phrases naming the payable figure,
// then bare TOTAL, then the weakest AMOUNT/AMT anchors.
var amountClasses = [][]string{
	{"GRAND TOTAL", "GRANDTOTAL", "NET AMOUNT", "NET AMT", "AMOUNT PAYABLE", "PAYABLE AMOUNT", "TOTAL DUE"},
	{"TOTAL"},
	{"AMOUNT", "AMT"},
}

// headerTokens open tabular column labels, not value cells; a keyword window
// beginning with one is a header row and gets skipped.
var headerTokens = []string{
	"TAX", "SALE", "SALES", "QTY", "QUANTITY", "UNIT", "PRICE", "HSN", "DESCRIPTION",
}

var (
	// 19,854.00 / 1,05,200.00 / 968.00: optional Indian comma grouping,
	// exactly two fractional digits.
	reAmountDot = regexp.MustCompile(`\b\d[\d,]*\.\d{2}\b`)
	// 968 00: OCR sometimes renders the decimal point as a gap.
	reAmountGap = regexp.MustCompile(`(\d[\d,]*) {1,4}(\d{2})\b`)
)

// ExtractAmount finds the payable total in the raw transcript. Tier 1 scans
// keyword anchors by class precedence, each class from the document end
// backward (the final occurrence is most likely the actual payable line),
// taking the maximum plausible token in the trailing window. Tier 2 falls
// back to the trailing 30% of the document, tier 3 to the whole document.
func ExtractAmount(text string) (float64, bool) {
	t := strings.ToUpper(text)

	for _, class := range amountClasses {
		var ends []int
		for _, kw := range class {
			ends = append(ends, keywordOccurrences(t, kw)...)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ends)))
		for _, end := range ends {
			stop := end + keywordWindow
			if stop > len(t) {
				stop = len(t)
			}
			win := t[end:stop]
			if startsWithHeaderToken(win) {
				continue
			}
			if v, ok := maxPlausible(currencyTokens(win)); ok {
				return v, true
			}
		}
	}

	tail := t[len(t)-len(t)*3/10:]
	if v, ok := maxPlausible(currencyTokens(tail)); ok {
		return v, true
	}
	return maxPlausible(currencyTokens(t))
}

// keywordOccurrences returns the end offset of every whole-word occurrence
// of kw in t, in ascending order.
func keywordOccurrences(t, kw string) []int {
	var ends []int
	for from := 0; ; {
		i := strings.Index(t[from:], kw)
		if i < 0 {
			return ends
		}
		start := from + i
		end := start + len(kw)
		from = start + 1
		if start > 0 && isLetter(t[start-1]) {
			continue
		}
		if end < len(t) && isLetter(t[end]) {
			continue
		}
		ends = append(ends, end)
	}
}

func startsWithHeaderToken(win string) bool {
	w := strings.TrimLeft(win, " \t\n:.-|")
	for _, h := range headerTokens {
		if strings.HasPrefix(w, h) && (len(w) == len(h) || !isLetter(w[len(h)])) {
			return true
		}
	}
	return false
}

// currencyTokens collects every currency-shaped token in s as a parsed value.
func currencyTokens(s string) []float64 {
	var out []float64
	for _, tok := range reAmountDot.FindAllString(s, -1) {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64); err == nil {
			out = append(out, v)
		}
	}
	for _, loc := range reAmountGap.FindAllStringSubmatchIndex(s, -1) {
		start, end := loc[0], loc[1]
		if start > 0 {
			if c := s[start-1]; isDigit(c) || c == '.' || c == ',' {
				continue
			}
		}
		// the gap only stands in for a decimal point when the token is
		// terminal: digits continuing after the fraction mean a date or
		// serial triplet, not money
		rest := strings.TrimLeft(s[end:], " ")
		if rest != "" && isDigit(rest[0]) {
			continue
		}
		whole := strings.ReplaceAll(s[loc[2]:loc[3]], ",", "")
		if v, err := strconv.ParseFloat(whole+"."+s[loc[4]:loc[5]], 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func maxPlausible(vals []float64) (float64, bool) {
	best, found := 0.0, false
	for _, v := range vals {
		if v > plausibleMin && v > best {
			best, found = v, true
		}
	}
	return best, found
}
