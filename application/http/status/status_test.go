package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCode(t *testing.T) {
	testcases := []struct {
		desc     string
		code     uint
		expected string
		ok       bool
	}{
		{desc: "ok", code: 200, expected: "200 OK", ok: true},
		{desc: "created", code: 201, expected: "201 Created", ok: true},
		{desc: "not found", code: 404, expected: "404 Not Found", ok: true},
		{desc: "internal server error", code: 500, expected: "500 Internal Server Error", ok: true},
		{desc: "not implemented", code: 501, expected: "501 Not Implemented", ok: true},
		{desc: "unknown code falls back", code: 418, expected: "501 Not Implemented"},
		{desc: "zero falls back", code: 0, expected: "501 Not Implemented"},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			s, ok := FromCode(tc.code)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, s.Text())
		})
	}
}
