package extractor

import (
	"strings"
)

// matcher tries to match a token starting exactly at start. It returns the
// bounds of the captured token and the end of the whole match.
type matcher func(s string, start int) (tokenStart, end int, ok bool)

// findAll reports every non-overlapping token left to right, resuming after
// each match the way a regular expression scan does.
func findAll(s string, match matcher) []string {
	var tokens []string

	for pos := 0; pos < len(s); {
		from, end, ok := match(s, pos)
		if !ok {
			pos++
			continue
		}

		tokens = append(tokens, s[from:end])

		if end > pos {
			pos = end
		} else {
			pos++
		}
	}

	return tokens
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}

	return false
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isAlpha(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// isDelim matches the whitespace and comma runs that separate entries.
func isDelim(b byte) bool {
	return b == ',' || isSpace(b)
}

// runWhile returns the index of the first byte at or after i that fails pred.
func runWhile(s string, i int, pred func(byte) bool) int {
	for i < len(s) && pred(s[i]) {
		i++
	}

	return i
}

func allAlnum(s string, from, to int) bool {
	if to > len(s) {
		return false
	}

	for i := from; i < to; i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}

	return true
}

// atEnd matches at the end of s or just before a final newline.
func atEnd(s string, i int) bool {
	return i == len(s) || (i == len(s)-1 && s[i] == '\n')
}

// lazyBody extends a token one byte at a time from i, stopping at the first
// position accepted by boundary. Newlines cannot be part of the body.
func lazyBody(s string, i int, boundary func(int) bool) (int, bool) {
	for e := i; ; e++ {
		if boundary(e) {
			return e, true
		}

		if e >= len(s) || s[e] == '\n' {
			return 0, false
		}
	}
}

// URLs: a scheme, "://", then anything up to the next delimiter run that is
// followed by another scheme.

func matchURL(s string, start int) (int, int, bool) {
	j := runWhile(s, start, isAlnum)
	if j == start || !strings.HasPrefix(s[j:], "://") {
		return 0, 0, false
	}

	end, ok := lazyBody(s, j+3, func(e int) bool { return urlBoundary(s, e) })
	if !ok {
		return 0, 0, false
	}

	return start, end, true
}

func urlBoundary(s string, e int) bool {
	if atEnd(s, e) {
		return true
	}

	a := runWhile(s, e, isDelim)
	if a == e {
		return false
	}

	k := runWhile(s, a, isAlnum)

	return k-a >= 1 && k-a <= 12 && strings.HasPrefix(s[k:], "://")
}

// Emails: an optional display name and an address, up to the next delimiter
// run that is followed by another (optionally named) address.

type emailScanner struct {
	s    string
	memo []int8
}

func newEmailScanner(s string) *emailScanner {
	return &emailScanner{s: s, memo: make([]int8, len(s)+1)}
}

func (m *emailScanner) match(s string, start int) (int, int, bool) {
	p := runWhile(s, start, isDelim)

	at := strings.IndexByte(s[p:], '@')
	if at < 0 {
		return 0, 0, false
	}

	q := p + at
	if q == p {
		if p == start {
			return 0, 0, false
		}

		// the local part needs one byte; take back a delimiter
		p--
	}

	end, ok := lazyBody(s, q+1, m.boundary)
	if !ok {
		return 0, 0, false
	}

	return p, end, true
}

func (m *emailScanner) boundary(e int) bool {
	if e > len(m.s) {
		return false
	}

	switch m.memo[e] {
	case 1:
		return true
	case 2:
		return false
	}

	ok := emailBoundary(m.s, e)
	m.memo[e] = 2

	if ok {
		m.memo[e] = 1
	}

	return ok
}

func emailBoundary(s string, e int) bool {
	if atEnd(s, e) {
		return true
	}

	runEnd := runWhile(s, e, isDelim)
	for a := e + 1; a <= runEnd; a++ {
		if addressAt(s, a) || namedAddressAt(s, a) {
			return true
		}
	}

	return false
}

// addressAt reports whether a bare user@domain starts at c.
func addressAt(s string, c int) bool {
	d := runWhile(s, c, func(b byte) bool { return b != '@' && !isDelim(b) })

	return d > c && d+1 < len(s) && s[d] == '@' && !isDelim(s[d+1])
}

func isNameSeparator(b byte) bool {
	return b == ':' || b == '<' || isSpace(b)
}

// namedAddressAt reports whether a display name followed by ':', '<' or
// whitespace and then an address starts at a.
func namedAddressAt(s string, a int) bool {
	limit := strings.IndexAny(s[a:], ":<")
	if limit < 0 {
		limit = len(s)
	} else {
		limit += a
	}

	sepStart := -1

	for i := a + 1; i < len(s); i++ {
		if !isNameSeparator(s[i]) {
			if i > limit {
				return false
			}

			sepStart = -1

			continue
		}

		if sepStart < 0 {
			sepStart = i
		}

		lo, hi := max(a+1, sepStart), min(limit, i)
		if lo <= hi && addressAt(s, i+1) {
			return true
		}
	}

	return false
}

// Phone numbers: digits with spaces, hyphens and parentheses, optionally
// led by '+' or '(' and, when prefixed, by a "label:" tag.

func isPhoneLead(b byte) bool {
	return b == '+' || b == '(' || isSpace(b)
}

func isPhoneBody(b byte) bool {
	return isDigit(b) || b == '(' || b == ')' || b == '-' || isSpace(b)
}

func isPhoneDelim(b byte) bool {
	return b == ',' || b == '+' || b == '(' || isSpace(b)
}

// labelEnd returns the index after a "letters:" tag at i, or i.
func labelEnd(s string, i int) int {
	k := runWhile(s, i, isAlpha)
	if k > i && k < len(s) && s[k] == ':' {
		return k + 1
	}

	return i
}

func phoneMatcher(prefix bool) matcher {
	return func(s string, start int) (int, int, bool) {
		from := runWhile(s, start, isSpace)

		p := from
		if prefix {
			p = labelEnd(s, p)
		}

		first := runWhile(s, p, isPhoneLead)
		if first >= len(s) || !isDigit(s[first]) {
			return 0, 0, false
		}

		last := runWhile(s, first+1, isPhoneBody)
		for t := last - 1; t >= first+2; t-- {
			if isDigit(s[t]) && phoneBoundary(s, t+1, prefix) {
				return from, t + 1, true
			}
		}

		return 0, 0, false
	}
}

func phoneBoundary(s string, e int, prefix bool) bool {
	if atEnd(s, e) {
		return true
	}

	if prefix {
		if k := labelEnd(s, e); k > e && delimThenDigit(s, k) {
			return true
		}
	}

	return delimThenDigit(s, e)
}

func delimThenDigit(s string, i int) bool {
	r := runWhile(s, i, isPhoneDelim)

	return r > i && r < len(s) && isDigit(s[r])
}

// Call signs: two or three characters, a digit, three characters and an
// optional -NN SSID.

func matchCallSign(s string, start int) (int, int, bool) {
	p := runWhile(s, start, isSpace)

	for _, lead := range []int{3, 2} {
		digit := p + lead
		if !allAlnum(s, p, digit) || digit >= len(s) || !isDigit(s[digit]) || !allAlnum(s, digit+1, digit+4) {
			continue
		}

		for _, end := range ssidEnds(s, digit+4) {
			if callSignBoundary(s, end) {
				return p, end, true
			}
		}
	}

	return 0, 0, false
}

// ssidEnds lists the candidate token ends after the base call sign, longest
// first.
func ssidEnds(s string, base int) []int {
	ends := make([]int, 0, 3)

	if base+1 < len(s) && s[base] == '-' && isDigit(s[base+1]) {
		if base+2 < len(s) && isDigit(s[base+2]) {
			ends = append(ends, base+3)
		}

		ends = append(ends, base+2)
	}

	return append(ends, base)
}

func callSignBoundary(s string, e int) bool {
	if atEnd(s, e) {
		return true
	}

	r := runWhile(s, e, isDelim)

	return r > e && allAlnum(s, r, r+4)
}
