// Package transport defines the stream connections the server runs on.
//
// [tcp] provides them over operating system sockets and [pipe] provides
// in-memory pairs for tests.
package transport

// Addr is satisfied by [net.Addr].
type Addr interface {
	Network() string
	String() string
}
