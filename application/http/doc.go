// Package http implements the request/response layer of a minimal
// Hypertext Transfer Protocol (HTTP/1.1) server.
//
// Requests are parsed from a single raw buffer and responses are built
// into a single byte sequence. Header values are typed by inference,
// see [Headers].
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http
