// Package status holds the response statuses the server can send.
package status

import "strconv"

type Status struct {
	Code         uint
	ReasonPhrase string
}

var (
	OK                  = add(Status{200, "OK"})
	Created             = add(Status{201, "Created"})
	NotFound            = add(Status{404, "Not Found"})
	InternalServerError = add(Status{500, "Internal Server Error"})
	NotImplemented      = add(Status{501, "Not Implemented"})
)

var sm = make(map[uint]*Status)

func add(status Status) Status {
	sm[status.Code] = &status
	return status
}

// FromCode looks up a known status.
// Unknown codes fall back to [NotImplemented], reason phrase and code alike.
func FromCode(code uint) (status Status, ok bool) {
	s, ok := sm[code]
	if !ok {
		return NotImplemented, false
	}

	return *s, true
}

// Text returns the status as it appears on a status line, e.g. "404 Not Found".
func (s Status) Text() string {
	return strconv.FormatUint(uint64(s.Code), 10) + " " + s.ReasonPhrase
}

func (s Status) String() string { return s.Text() }
