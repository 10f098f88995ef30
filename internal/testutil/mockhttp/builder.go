// Package mockhttp builds fake HTTP endpoints for tests of outbound clients:
// the confirmation script and the Telegram Bot API.
//
//	server, _ := mockhttp.New().
//		JSONP("/exec", map[string]any{"ok": true, "displayName": "Maria"}).
//		Build()
//	defer server.Close()
package mockhttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Handler handles a request and reports whether it did.
type Handler func(w http.ResponseWriter, r *http.Request) bool

// ServerBuilder builds mock HTTP servers with configurable behavior.
type ServerBuilder struct {
	handlers    []Handler
	defaultCode int
	capture     *Capture
}

func New() *ServerBuilder {
	return &ServerBuilder{defaultCode: http.StatusNotFound}
}

// Handler adds a custom handler function.
func (b *ServerBuilder) Handler(h Handler) *ServerBuilder {
	b.handlers = append(b.handlers, h)
	return b
}

// JSON returns a 200 JSON response for requests matching path.
func (b *ServerBuilder) JSON(path string, response any) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
		return true
	})
}

// JSONP wraps response in the callback named by the request's callback
// query parameter, the way an Apps Script web app answers.
func (b *ServerBuilder) JSONP(path string, response any) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		data, _ := json.Marshal(response)
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprintf(w, "/**/%s(%s);", r.URL.Query().Get("callback"), data)
		return true
	})
}

// Text returns a fixed body with the given status.
func (b *ServerBuilder) Text(path string, code int, body string) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		w.WriteHeader(code)
		w.Write([]byte(body))
		return true
	})
}

// Hang never answers requests to path until the client goes away.
// Used for timeout tests.
func (b *ServerBuilder) Hang(path string) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		<-r.Context().Done()
		return true
	})
}

// Capture enables request capture for inspection in tests.
func (b *ServerBuilder) Capture() *Capture {
	if b.capture == nil {
		b.capture = &Capture{}
		// capture runs before any response handler
		b.handlers = append([]Handler{func(w http.ResponseWriter, r *http.Request) bool {
			b.capture.record(r)
			return false
		}}, b.handlers...)
	}
	return b.capture
}

// Build creates the httptest.Server with all configured handlers.
func (b *ServerBuilder) Build() (*httptest.Server, *http.Client) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range b.handlers {
			if h(w, r) {
				return
			}
		}
		w.WriteHeader(b.defaultCode)
	})

	server := httptest.NewServer(handler)
	return server, server.Client()
}

// matchPath supports exact match and prefix match with a "*" suffix.
func matchPath(requestPath, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(requestPath, strings.TrimSuffix(pattern, "*"))
	}
	return requestPath == pattern
}

// Capture stores captured HTTP requests for test assertions.
type Capture struct {
	mu       sync.Mutex
	requests []CapturedRequest
}

type CapturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Form   map[string][]string
}

func (c *Capture) record(r *http.Request) {
	var form map[string][]string
	if r.Method == http.MethodPost {
		// ParseForm consumes the body; handlers after capture read r.PostForm
		if err := r.ParseForm(); err == nil {
			form = r.PostForm
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, CapturedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Form:   form,
	})
}

func (c *Capture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Last returns the most recent captured request, or nil if none.
func (c *Capture) Last() *CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	r := c.requests[len(c.requests)-1]
	return &r
}

// All returns all captured requests.
func (c *Capture) All() []CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CapturedRequest, len(c.requests))
	copy(out, c.requests)
	return out
}
