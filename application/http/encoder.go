package http

import (
	"bufio"
	"bytes"
	"io"

	"http-server/application/http/status"

	"github.com/pkg/errors"
)

type ResponseEncoder struct {
	bw *bufio.Writer
}

func NewResponseEncoder(w io.Writer) *ResponseEncoder {
	return &ResponseEncoder{bw: bufio.NewWriter(w)}
}

// Build serializes a response into its exact wire form.
// Content-Length of headers is overwritten with the length of body.
func Build(statusCode uint, headers *Headers, body []byte) []byte {
	buf := bytes.NewBuffer(nil)

	// Writing to bytes.Buffer never fails.
	_ = NewResponseEncoder(buf).Encode(Response{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       body,
	})

	return buf.Bytes()
}

// Encode writes the response and flushes it.
// It sets Content-Length on response.Headers before anything is written.
func (re *ResponseEncoder) Encode(response Response) error {
	if response.Headers == nil {
		response.Headers = NewHeaders(nil)
	}
	response.Headers.SetContentLength(len(response.Body))

	if err := re.encodeStatusLine(response.StatusCode); err != nil {
		return errors.Wrap(err, "encoding status line")
	}

	if err := re.encodeHeaders(response.Headers); err != nil {
		return errors.Wrap(err, "encoding headers")
	}

	if _, err := re.bw.Write(response.Body); err != nil {
		return errors.Wrap(err, "writing response body")
	}

	if err := re.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing response")
	}

	return nil
}

func (re *ResponseEncoder) writeLine(line string) error {
	if _, err := re.bw.WriteString(line); err != nil {
		return errors.Wrap(err, "writing line")
	}

	if _, err := re.bw.Write(CRLF); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}

func (re *ResponseEncoder) encodeStatusLine(code uint) error {
	// Unknown codes are sent as 501.
	s, _ := status.FromCode(code)

	if err := re.writeLine(Version1_1 + string(SP) + s.Text()); err != nil {
		return errors.Wrap(err, "writing line")
	}

	return nil
}

func (re *ResponseEncoder) encodeHeaders(headers *Headers) error {
	for _, line := range headers.Lines() {
		if err := re.writeLine(line); err != nil {
			return errors.Wrap(err, "writing field")
		}
	}

	// Write a empty line as all the headers are written.
	if err := re.writeLine(""); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}
