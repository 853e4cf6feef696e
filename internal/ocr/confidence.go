package ocr

import (
	"regexp"
	"strings"
)

var (
	reGSTINish = regexp.MustCompile(`\d{2}[A-Z]{3,5}`)
	reCurr     = regexp.MustCompile(`\b(INR|RS|RUPEES)\b|₹`)
	reAmount   = regexp.MustCompile(`\b\d{1,3}(,\d{2,3})*(\.\d{2})\b|\b\d+\.\d{2}\b`)
	reDateish  = regexp.MustCompile(`\b\d{1,2}[-/ .]\w{2,3}[-/ .]\d{2,4}\b`)
)

// naive heuristic confidence based on decoded text characteristics
func heuristicConfidence(txt string) float32 {
	// boost if we see common invoice artifacts (GSTIN-ish, currency-ish,
	// amount-ish, date-ish). Each adds a fixed increment.
	t := strings.ToUpper(txt)
	score := float32(0.2) // base
	if reGSTINish.MatchString(t) {
		score += 0.2
	}
	if reCurr.MatchString(t) {
		score += 0.15
	}
	if reAmount.MatchString(t) {
		score += 0.15
	}
	if reDateish.MatchString(t) {
		score += 0.1
	}
	if len(txt) > 120 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
