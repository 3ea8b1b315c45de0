package chapters

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is one timestamp marker found by the Scanner.
type Match struct {
	// Offset is the byte offset of the time token in the source.
	Offset int

	// Token is the raw time token, e.g. "1:02:03".
	Token string

	// Label is the untrimmed text following the token.
	Label string
}

// Scanner walks a description and yields timestamp markers in source order.
//
// A marker is a time token of the shape [dd][:...]d[d]:d[d] followed by at
// least one whitespace character. Its label starts after that whitespace run
// and stops at the first of: a blank line ("\n\n"), the start of another time
// token, or the end of the text. Labels are slices of the source; nothing is
// copied.
type Scanner struct {
	src string
	pos int
	cur Match
}

// NewScanner returns a scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Next advances to the next marker. It returns false at end of text.
func (s *Scanner) Next() bool {
	for s.pos < len(s.src) {
		start := s.pos
		end, ok := timeToken(s.src, start, true)
		if !ok {
			s.pos++
			continue
		}

		labelStart := skipSpace(s.src, end)
		labelEnd := s.boundary(labelStart)

		s.cur = Match{
			Offset: start,
			Token:  s.src[start:end],
			Label:  s.src[labelStart:labelEnd],
		}
		s.pos = labelEnd
		return true
	}
	return false
}

// Match returns the current marker.
func (s *Scanner) Match() Match {
	return s.cur
}

// boundary returns the end of a label starting at from.
func (s *Scanner) boundary(from int) int {
	for p := from; p < len(s.src); p++ {
		if strings.HasPrefix(s.src[p:], "\n\n") {
			return p
		}
		if _, ok := timeToken(s.src, p, false); ok {
			return p
		}
	}
	return len(s.src)
}

// timeToken tries to match a time token at i and returns its end offset.
// Alternatives are tried greedy-first in the order leading digits, colon run,
// minute digits, seconds digits; the first that fits wins. When needSpace is
// set the token must also be followed by whitespace.
func timeToken(src string, i int, needSpace bool) (int, bool) {
	if i >= len(src) || (!isDigit(src[i]) && src[i] != ':') {
		return 0, false
	}

	lead := min(countDigits(src, i), 2)
	for a := lead; a >= 0; a-- {
		colonsAt := i + a
		colons := countColons(src, colonsAt)
		for c := colons; c >= 0; c-- {
			j := colonsAt + c
			for b := min(countDigits(src, j), 2); b >= 1; b-- {
				k := j + b
				if k >= len(src) || src[k] != ':' {
					continue
				}
				k++
				for d := min(countDigits(src, k), 2); d >= 1; d-- {
					end := k + d
					if !needSpace || startsWithSpace(src, end) {
						return end, true
					}
				}
			}
		}
	}
	return 0, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func countDigits(src string, i int) int {
	n := 0
	for i+n < len(src) && isDigit(src[i+n]) {
		n++
	}
	return n
}

func countColons(src string, i int) int {
	n := 0
	for i+n < len(src) && src[i+n] == ':' {
		n++
	}
	return n
}

func startsWithSpace(src string, i int) bool {
	if i >= len(src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(src[i:])
	return unicode.IsSpace(r)
}

func skipSpace(src string, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
