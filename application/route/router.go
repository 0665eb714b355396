// Package route decides the response for each request from a fixed table:
//
//	GET  /               200
//	GET  /echo/<text>    200, body is <text>
//	GET  /user-agent     200, body is the User-Agent header
//	GET  /files/<name>   200 with the file content, 404 if missing
//	POST <any>           201
//
// Any other GET path is 404 and any other method is 501.
package route

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"http-server/application/http"
	"http-server/application/http/actor/server"
	"http-server/application/http/status"

	"github.com/pkg/errors"
)

// GzipPlaceholder replaces the body when the client accepts gzip.
// Nothing is actually compressed.
const GzipPlaceholder = "gzipped-body"

const (
	echoPrefix      = "/echo/"
	userAgentPrefix = "/user-agent"
	filesPrefix     = "/files/"
)

// Router is safe for concurrent use. It only reads from the filesystem.
type Router struct {
	dir    string
	logger *slog.Logger
}

// New creates a router serving files from dir.
// An empty dir leaves the files route without a target: every file is 404.
func New(dir string, logger *slog.Logger) *Router {
	return &Router{dir: dir, logger: logger}
}

// Handle adapts the router to [server.HandleFunc].
func (r *Router) Handle(c *server.HandleContext, request *http.Request) *http.Response {
	response := r.route(request, c.Logger())

	c.Logger().Debug("routed request",
		"method", request.Method,
		"path", request.Path(),
		"status", response.StatusCode,
	)

	return response
}

func (r *Router) Route(request *http.Request) *http.Response {
	return r.route(request, r.logger)
}

type decision struct {
	status status.Status

	body    []byte
	hasBody bool
}

func (r *Router) route(request *http.Request, logger *slog.Logger) *http.Response {
	var d decision

	switch request.Method {
	case "GET":
		d = r.get(request, logger)
	case "POST":
		d = decision{status: status.Created}
	default:
		d = decision{status: status.NotImplemented}
	}

	headers := http.NewHeaders(logger).SetContentType("text/plain")

	// An empty body still counts as produced.
	if d.hasBody && request.AcceptsGzip() {
		d.body = []byte(GzipPlaceholder)
		headers.SetContentEncoding("gzip")
	}

	return &http.Response{
		StatusCode: d.status.Code,
		Headers:    headers,
		Body:       d.body,
	}
}

func (r *Router) get(request *http.Request, logger *slog.Logger) decision {
	path := request.Path()

	switch {
	case strings.HasPrefix(path, echoPrefix):
		text := strings.TrimSpace(path[len(echoPrefix):])
		return decision{status: status.OK, body: []byte(text), hasBody: true}

	case strings.HasPrefix(path, userAgentPrefix):
		return decision{status: status.OK, body: []byte(request.UserAgent()), hasBody: true}

	case strings.HasPrefix(path, filesPrefix):
		name := strings.TrimSpace(path[len(filesPrefix):])
		return r.file(name, logger)

	case path == "" || path == "/":
		return decision{status: status.OK}

	default:
		return decision{status: status.NotFound}
	}
}

func (r *Router) file(name string, logger *slog.Logger) decision {
	if r.dir == "" {
		return decision{status: status.NotFound}
	}

	// Names must stay below the serving directory.
	// An empty name points at the directory itself, which fails to read.
	if name != "" && !filepath.IsLocal(name) {
		return decision{status: status.NotFound}
	}

	content, err := readFile(filepath.Join(r.dir, name))
	switch {
	case err == nil:
		return decision{status: status.OK, body: content, hasBody: true}
	case errors.Is(err, fs.ErrNotExist):
		return decision{status: status.NotFound}
	default:
		logger.Error("failed to read file", "name", name, "error", err)
		return decision{status: status.InternalServerError}
	}
}

// readFile returns the file content as UTF-8 text. Invalid sequences are
// replaced, so binary files do not survive.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	return []byte(http.DecodeText(b)), nil
}
