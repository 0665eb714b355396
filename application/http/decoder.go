package http

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

type DecodeOptions struct {
	// MaxRequestLineLength sets the limit of request line length.
	// Zero means no limit.
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3-5
	MaxRequestLineLength uint
}

var DefaultDecodeOptions = DecodeOptions{
	MaxRequestLineLength: 0,
}

var (
	ErrRequestLineTooLong   = errors.New("request line length exceeds limit")
	ErrMalformedRequestLine = errors.New("request line is malformed")
	ErrIncompleteBody       = errors.New("body is shorter than content length")
)

// RequestDecoder decodes a request that arrived as a single buffer.
// The whole request, body included, must be inside that buffer.
type RequestDecoder struct {
	logger *slog.Logger
	opts   DecodeOptions
}

func NewRequestDecoder(logger *slog.Logger, opts DecodeOptions) *RequestDecoder {
	return &RequestDecoder{logger: logger, opts: opts}
}

// r MUST be a non-nil pointer
func (rd *RequestDecoder) Decode(raw []byte, r *Request) error {
	lines := strings.Split(DecodeText(raw), string(CRLF))

	if err := rd.decodeRequestLine(lines[0], &r.requestLine); err != nil {
		return errors.Wrap(err, "parsing request line")
	}

	r.Headers = NewHeaders(rd.logger)
	for _, line := range lines[1:] {
		if len(line) == 0 {
			// An empty line. This means that there are no more headers.
			break
		}
		r.Headers.AddLine(strings.TrimSpace(line))
	}

	body, err := extractBody(raw, r.Headers.ContentLength())
	if err != nil {
		return errors.Wrap(err, "extracting body")
	}
	r.Body = body

	return nil
}

func (rd *RequestDecoder) decodeRequestLine(line string, reqLine *requestLine) error {
	limit := rd.opts.MaxRequestLineLength
	if limit > 0 && uint(len(line)) > limit {
		return ErrRequestLineTooLong
	}

	parsed, err := parseRequestLine(line)
	if err != nil {
		return err
	}

	*reqLine = parsed

	return nil
}

// parseRequestLine only splits on single spaces.
// Extra tokens after the version are ignored.
func parseRequestLine(line string) (requestLine, error) {
	parts := splitDropTrailing(line, string(SP))
	if len(parts) < 3 {
		return requestLine{}, errors.Wrapf(ErrMalformedRequestLine, "%q", line)
	}

	return requestLine{
		Method:  strings.ToUpper(parts[0]),
		Target:  parts[1],
		Version: parts[2],
	}, nil
}

// extractBody takes the trailing contentLength bytes of raw.
// It cannot tell the body apart from anything sent after it.
func extractBody(raw []byte, contentLength int) ([]byte, error) {
	if contentLength <= 0 {
		return nil, nil
	}

	if contentLength > len(raw) {
		return nil, errors.Wrapf(ErrIncompleteBody, "want %d bytes, buffer has %d", contentLength, len(raw))
	}

	return bytes.Clone(raw[len(raw)-contentLength:]), nil
}
