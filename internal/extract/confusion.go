package extract

// OCR confuses visually similar glyphs in a direction that depends on what
// the surrounding grammar expects. Two static tables keep the correction
// direction explicit: digitContext rewrites letters that commonly stand in
// for digits, letterContext is the inverse. They are applied only at
// positions whose expected symbol class is known, never globally.

var digitContext = map[byte]byte{
	'O': '0',
	'I': '1',
	'S': '5',
	'Z': '2',
	'B': '8',
	'G': '6',
	'T': '7',
}

var letterContext = map[byte]byte{
	'0': 'O',
	'1': 'I',
	'5': 'S',
	'2': 'Z',
	'8': 'B',
	'6': 'G',
	'7': 'T',
}

func toDigit(c byte) byte {
	if d, ok := digitContext[c]; ok {
		return d
	}
	return c
}

func toLetter(c byte) byte {
	if l, ok := letterContext[c]; ok {
		return l
	}
	return c
}

// correctDigits applies digit-context correction to every byte of a token
// whose expected class is numeric.
func correctDigits(s string) string {
	b := []byte(s)
	for i := range b {
		b[i] = toDigit(b[i])
	}
	return string(b)
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool  { return isDigit(c) || isLetter(c) }
