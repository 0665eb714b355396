package http

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RequestDecoderTestSuite struct {
	suite.Suite

	rd *RequestDecoder
}

func TestRequestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(RequestDecoderTestSuite))
}

func (s *RequestDecoderTestSuite) SetupTest() {
	s.rd = NewRequestDecoder(slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultDecodeOptions)
}

func (s *RequestDecoderTestSuite) TestDecode() {
	raw := []byte("get /echo/abc?x=1 HTTP/1.1\r\n" +
		"Host: localhost:4221\r\n" +
		"User-Agent: foo/1.0\r\n" +
		"Accept-Encoding: gzip, deflate\r\n" +
		"\r\n")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))

	s.Equal("GET", r.Method)
	s.Equal("/echo/abc?x=1", r.Path())
	s.Equal("HTTP/1.1", r.Version)
	s.Equal("foo/1.0", r.UserAgent())
	s.True(r.AcceptsGzip())
	s.Equal("localhost:4221", r.Headers.String("Host", ""))
	s.Nil(r.Body)
}

func (s *RequestDecoderTestSuite) TestDecodeBody() {
	raw := []byte("POST /files/a.txt HTTP/1.1\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"hello")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))

	s.Equal("POST", r.Method)
	s.Equal(5, r.Headers.ContentLength())
	s.Equal([]byte("hello"), r.Body)
}

func (s *RequestDecoderTestSuite) TestDecodeBodyIsBufferTail() {
	// Bytes are taken from the end of the buffer, not after the blank line.
	raw := []byte("POST / HTTP/1.1\r\n" +
		"Content-Length: 3\r\n" +
		"\r\n" +
		"hello")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))
	s.Equal([]byte("llo"), r.Body)
}

func (s *RequestDecoderTestSuite) TestDecodeBinaryBody() {
	body := []byte{0xff, 0xfe, 0x00, 0x01}
	raw := append([]byte("POST / HTTP/1.1\r\nContent-Length: 4\r\n\r\n"), body...)

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))

	// Taken from raw bytes, not from the decoded text.
	s.Equal(body, r.Body)
}

func (s *RequestDecoderTestSuite) TestDecodeZeroContentLength() {
	raw := []byte("POST / HTTP/1.1\r\nContent-Length: 0\r\n\r\n")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))
	s.Nil(r.Body)
}

func (s *RequestDecoderTestSuite) TestDecodeIncompleteBody() {
	raw := []byte("POST / HTTP/1.1\r\nContent-Length: 500\r\n\r\nshort")

	var r Request
	s.ErrorIs(s.rd.Decode(raw, &r), ErrIncompleteBody)
}

func (s *RequestDecoderTestSuite) TestDecodeHeadersEndAtInput() {
	raw := []byte("GET / HTTP/1.1\r\nUser-Agent: x")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))
	s.Equal("x", r.UserAgent())
}

func (s *RequestDecoderTestSuite) TestDecodeStopsAtEmptyLine() {
	raw := []byte("GET / HTTP/1.1\r\nA: 1\r\n\r\nB: 2\r\n")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))

	s.Equal(1, r.Headers.Int("A", 0))
	_, ok := r.Headers.Get("B")
	s.False(ok)
}

func (s *RequestDecoderTestSuite) TestDecodeDuplicateHeader() {
	raw := []byte("GET / HTTP/1.1\r\nUser-Agent: a\r\nUser-Agent: b\r\n\r\n")

	var r Request
	s.Require().NoError(s.rd.Decode(raw, &r))
	s.Equal("a", r.UserAgent())
}

func (s *RequestDecoderTestSuite) TestDecodeMalformedRequestLine() {
	testcases := []struct {
		desc  string
		input string
	}{
		{desc: "empty", input: ""},
		{desc: "method only", input: "GET\r\n\r\n"},
		{desc: "missing version", input: "GET /\r\n\r\n"},
		{desc: "trailing space only", input: "GET / \r\n\r\n"},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			var r Request
			s.ErrorIs(s.rd.Decode([]byte(tc.input), &r), ErrMalformedRequestLine)
		})
	}
}

func (s *RequestDecoderTestSuite) TestDecodeRequestLineTooLong() {
	rd := NewRequestDecoder(nil, DecodeOptions{MaxRequestLineLength: 8})

	var r Request
	s.ErrorIs(rd.Decode([]byte("GET /very/long/path HTTP/1.1\r\n\r\n"), &r), ErrRequestLineTooLong)
}

func (s *RequestDecoderTestSuite) TestParseRequestLine() {
	testcases := []struct {
		desc     string
		input    string
		expected requestLine
		wantErr  bool
	}{
		{
			desc:     "simple",
			input:    "GET / HTTP/1.1",
			expected: requestLine{Method: "GET", Target: "/", Version: "HTTP/1.1"},
		},
		{
			desc:     "lowercase method",
			input:    "delete /x HTTP/1.1",
			expected: requestLine{Method: "DELETE", Target: "/x", Version: "HTTP/1.1"},
		},
		{
			desc:     "extra tokens ignored",
			input:    "GET / HTTP/1.1 extra",
			expected: requestLine{Method: "GET", Target: "/", Version: "HTTP/1.1"},
		},
		{
			desc:     "double space gives empty target",
			input:    "GET  / HTTP/1.1",
			expected: requestLine{Method: "GET", Target: "", Version: "/"},
		},
		{
			desc:    "two tokens",
			input:   "GET /",
			wantErr: true,
		},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			got, err := parseRequestLine(tc.input)
			if tc.wantErr {
				s.ErrorIs(err, ErrMalformedRequestLine)
				return
			}

			s.NoError(err)
			s.Equal(tc.expected, got)
		})
	}
}
