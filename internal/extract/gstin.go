package extract

import "strings"

// A GSTIN is 15 characters: 2-digit state code (01..38), 5 PAN letters,
// 4 PAN digits, 1 PAN letter, 1 alphanumeric entity code, the literal 'Z',
// and 1 alphanumeric checksum. The checksum is accepted unverified.
const gstinLen = 15

// Five-letter words that survive whitespace stripping and otherwise slip
// into the PAN-letter positions of a window.
var panStoplist = map[string]struct{}{
	"PHONE": {},
	"EMAIL": {},
	"TOTAL": {},
	"GRAND": {},
	"STATE": {},
	"INDIA": {},
}

// Glyphs OCR renders in place of the literal 'Z' at position 13.
var zConfusables = map[byte]struct{}{
	'Z': {}, '2': {}, '5': {}, 'S': {}, 'O': {}, '0': {}, 'I': {}, '1': {},
}

// ExtractGSTIN recovers a GSTIN from a noisy transcript. It strips the
// transcript down to its alphanumeric symbols, then slides a window of
// width 15 and, failing that, 14 (a transcription that dropped the literal
// 'Z') over the stream. Each window is corrected position by position and
// validated against the structural grammar; the first surviving window per
// width wins, and width 15 outranks width 14. The reported string is always
// the full reconstructed 15-character identifier.
func ExtractGSTIN(text string) (string, bool) {
	s := stripNonAlnum(strings.ToUpper(text))
	for _, width := range []int{gstinLen, gstinLen - 1} {
		for i := 0; i+width <= len(s); i++ {
			if id, ok := correctWindow(s[i : i+width]); ok {
				return id, true
			}
		}
	}
	return "", false
}

// correctWindow applies position-specific confusable correction to a 15- or
// 14-wide window and validates it, short-circuiting on the first failing
// position. On success it returns the reconstructed 15-char identifier.
func correctWindow(w string) (string, bool) {
	out := make([]byte, 0, gstinLen)

	// positions 0-1: state code, numeric, value 01..38
	d0, d1 := toDigit(w[0]), toDigit(w[1])
	if !isDigit(d0) || !isDigit(d1) {
		return "", false
	}
	if code := int(d0-'0')*10 + int(d1-'0'); code < 1 || code > 38 {
		return "", false
	}
	out = append(out, d0, d1)

	// positions 2-6: PAN letters
	for i := 2; i <= 6; i++ {
		c := toLetter(w[i])
		if !isLetter(c) {
			return "", false
		}
		out = append(out, c)
	}
	if _, stop := panStoplist[string(out[2:7])]; stop {
		return "", false
	}

	// positions 7-10: PAN digits
	for i := 7; i <= 10; i++ {
		c := toDigit(w[i])
		if !isDigit(c) {
			return "", false
		}
		out = append(out, c)
	}

	// position 11: PAN letter
	c11 := toLetter(w[11])
	if !isLetter(c11) {
		return "", false
	}
	out = append(out, c11)

	// position 12: entity code, either class allowed; only the two most
	// common confusions are normalized since entity codes are usually digits
	c12 := w[12]
	switch c12 {
	case 'I':
		c12 = '1'
	case 'O':
		c12 = '0'
	}
	out = append(out, c12)

	if len(w) == gstinLen {
		// position 13 must correct to the literal 'Z'
		if _, ok := zConfusables[w[13]]; !ok {
			return "", false
		}
		out = append(out, 'Z', w[14])
	} else {
		// 14-wide window: the 'Z' was dropped in transcription; the trailing
		// character is the checksum and 'Z' is synthesized in place
		out = append(out, 'Z', w[13])
	}
	return string(out), true
}

// stripNonAlnum reduces a transcript to its dense A-Z0-9 symbol stream.
func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isAlnum(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
