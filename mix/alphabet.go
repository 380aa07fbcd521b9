package mix

// alphabetChars maps a MIX byte code (0..55) to its character, per the
// 56-symbol character set in Knuth, TAOCP Vol 1, p.140.
var alphabetChars = [56]rune{
	' ', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I',
	'\'', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R',
	'°', '"', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'.', ',', '(', ')', '+', '-', '*', '/', '=', '$',
	'<', '>', '@', ';', ':', '‚',
}

var charToByte map[rune]byte

func init() {
	charToByte = make(map[rune]byte, len(alphabetChars))
	for b, r := range alphabetChars {
		charToByte[r] = byte(b)
	}
}

// ByteToChar converts a MIX character code to its rune. ok is false if b
// is not a valid alphabet code (>= 56).
func ByteToChar(b byte) (rune, bool) {
	if int(b) >= len(alphabetChars) {
		return 0, false
	}
	return alphabetChars[b], true
}

// CharToByte converts a rune to its MIX character code. ok is false if r
// has no representation in the alphabet.
func CharToByte(r rune) (byte, bool) {
	b, ok := charToByte[r]
	return b, ok
}
