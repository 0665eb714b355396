package server

import (
	"time"

	"http-server/application/http"
)

// DefaultBufferSize is the size of the single read a connection gets.
const DefaultBufferSize = 8192

type Options struct {
	// BufferSize bounds the request, body included. Zero means [DefaultBufferSize].
	BufferSize uint

	Decode  http.DecodeOptions
	Timeout TimeoutOptions
}

// Zero disables the deadline.
type TimeoutOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

var DefaultOptions = Options{
	BufferSize: DefaultBufferSize,
	Decode:     http.DefaultDecodeOptions,
}
