package http

import (
	"strings"
	"unicode/utf8"
)

const (
	CR byte = '\r'
	LF byte = '\n'
	SP byte = ' '
)

var CRLF = []byte{CR, LF}

// Version1_1 is the only protocol version this package writes.
const Version1_1 = "HTTP/1.1"

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// splitDropTrailing splits s around sep and drops trailing empty parts.
// "a,b,," yields ["a", "b"] and "," yields no parts at all.
func splitDropTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// DecodeText decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func DecodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
