package http

type requestLine struct {
	Method  string
	Target  string
	Version string
}

// Request is a single decoded request.
// Body is nil unless a positive Content-Length was received.
type Request struct {
	requestLine
	Headers *Headers

	Body []byte
}

// Path returns the raw request target. Query suffixes are kept as-is.
func (r *Request) Path() string { return r.Target }

// UserAgent is a shorthand for [Headers.UserAgent].
func (r *Request) UserAgent() string { return r.Headers.UserAgent() }

// AcceptsGzip is a shorthand for [Headers.AcceptsGzip].
func (r *Request) AcceptsGzip() bool { return r.Headers.AcceptsGzip() }

// Response is a response prior to serialization.
// A nil Body is sent as an empty body.
type Response struct {
	StatusCode uint
	Headers    *Headers
	Body       []byte
}

// NewRequest creates a request with the given line fields and empty headers.
func NewRequest(method, target, version string) *Request {
	return &Request{
		requestLine: requestLine{Method: method, Target: target, Version: version},
		Headers:     NewHeaders(nil),
	}
}
