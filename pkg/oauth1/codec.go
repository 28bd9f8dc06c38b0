package oauth1

// PercentEncode encodes s per the strict RFC 3986 rules OAuth 1.0a
// signature base strings require. Only unreserved characters
// (ALPHA, DIGIT, "-", ".", "_", "~") pass through; every other byte
// becomes %XX with uppercase hex digits.
//
// net/url is not a substitute here: url.QueryEscape turns spaces into
// "+" and leaves sub-delims such as "!", "'", "(", ")" and "*"
// unescaped, and either difference breaks the signature.
func PercentEncode(s string) string {
	hex := "0123456789ABCDEF"

	n := 0
	for i := 0; i < len(s); i++ {
		if isUnreserved(s[i]) {
			n++
		} else {
			n += 3
		}
	}
	if n == len(s) {
		return s
	}

	out := make([]byte, 0, n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', hex[c>>4], hex[c&0x0F])
	}
	return string(out)
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
