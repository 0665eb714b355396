package http

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// Kind is the inferred type of a header value.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Value is a header value, one of integer, set of strings or string.
// The zero value is an empty string.
type Value struct {
	kind Kind

	i   int
	s   string
	set map[string]struct{}
}

func IntValue(n int) Value       { return Value{kind: KindInt, i: n} }
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// SetValue creates a set value. Duplicated tokens are collapsed.
func SetValue(tokens ...string) Value {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return Value{kind: KindSet, set: set}
}

// inferValue types a trimmed field value.
// Digits only becomes an integer, anything containing a comma becomes
// a set of trimmed tokens, and the rest stays a string.
func inferValue(raw string) Value {
	if isDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err == nil {
			return IntValue(n)
		}
		// Too big for an int. Keep the text.
		return StringValue(raw)
	}

	if strings.Contains(raw, ",") {
		parts := splitDropTrailing(raw, ",")
		for idx, p := range parts {
			parts[idx] = strings.TrimSpace(p)
		}
		return SetValue(parts...)
	}

	return StringValue(raw)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Tokens returns the members of a set value in sorted order.
func (v Value) Tokens() ([]string, bool) {
	if v.kind != KindSet {
		return nil, false
	}

	tokens := make([]string, 0, len(v.set))
	for t := range v.set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	return tokens, true
}

// Contains reports whether v is a set holding token.
func (v Value) Contains(token string) bool {
	if v.kind != KindSet {
		return false
	}
	_, ok := v.set[token]
	return ok
}

// String renders the value the way it is written on the wire.
// A set with a single token keeps a trailing comma, otherwise it would
// be read back as a plain string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindSet:
		tokens, _ := v.Tokens()
		if len(tokens) == 1 {
			return tokens[0] + ","
		}
		if len(tokens) == 0 {
			return ","
		}
		return strings.Join(tokens, ", ")
	default:
		return v.s
	}
}

// Headers is an ordered store of typed header values.
//
// Names are case sensitive. A name added through [Headers.AddLine] keeps its
// first value for the lifetime of the store; the Set* methods overwrite
// unconditionally and are meant for building responses.
type Headers struct {
	names  []string
	values map[string]Value

	logger *slog.Logger
}

// NewHeaders creates an empty store.
// Rejected duplicates are reported to logger, or to [slog.Default] if nil.
func NewHeaders(logger *slog.Logger) *Headers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Headers{
		values: make(map[string]Value),
		logger: logger,
	}
}

// AddLine parses a "Name: Value" field line and stores it.
// Lines without a colon are ignored.
func (h *Headers) AddLine(line string) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return
	}

	name, value = strings.TrimSpace(name), strings.TrimSpace(value)

	if _, ok := h.values[name]; ok {
		h.log().Warn("header already present, ignoring", "name", name)
		return
	}

	h.set(name, inferValue(value))
}

func (h *Headers) set(name string, v Value) {
	if h.values == nil {
		h.values = make(map[string]Value)
	}
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = v
}

func (h *Headers) log() *slog.Logger {
	if h.logger == nil {
		return slog.Default()
	}
	return h.logger
}

func (h *Headers) Get(name string) (Value, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Int returns the integer value of name, or def if absent or not an integer.
func (h *Headers) Int(name string, def int) int {
	if n, ok := h.values[name].Int(); ok {
		return n
	}
	return def
}

// String returns the string value of name, or def if absent or not a string.
func (h *Headers) String(name string, def string) string {
	v, ok := h.values[name]
	if !ok {
		return def
	}
	if s, ok := v.Str(); ok {
		return s
	}
	return def
}

// Tokens returns the sorted members of a set value, nil if absent or not a set.
func (h *Headers) Tokens(name string) []string {
	tokens, _ := h.values[name].Tokens()
	return tokens
}

// HasToken reports whether name holds a set containing token.
func (h *Headers) HasToken(name, token string) bool {
	return h.values[name].Contains(token)
}

func (h *Headers) UserAgent() string  { return h.String("User-Agent", "") }
func (h *Headers) ContentLength() int { return h.Int("Content-Length", 0) }

// AcceptsGzip only looks at set values: "Accept-Encoding: gzip" alone is a
// string and does not count.
func (h *Headers) AcceptsGzip() bool { return h.HasToken("Accept-Encoding", "gzip") }

func (h *Headers) IsContentEncodingGzip() bool {
	return h.String("Content-Encoding", "") == "gzip"
}

func (h *Headers) SetContentLength(n int) *Headers {
	h.set("Content-Length", IntValue(n))
	return h
}

func (h *Headers) SetContentType(s string) *Headers {
	h.set("Content-Type", StringValue(s))
	return h
}

func (h *Headers) SetContentEncoding(s string) *Headers {
	h.set("Content-Encoding", StringValue(s))
	return h
}

func (h *Headers) Len() int { return len(h.names) }

// Lines returns "Name: Value" for every entry in insertion order.
func (h *Headers) Lines() []string {
	lines := make([]string, 0, len(h.names))
	for _, name := range h.names {
		lines = append(lines, name+": "+h.values[name].String())
	}
	return lines
}
