package utils

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewCallbackName returns a JSONP callback name that is unique per attempt
// and a valid JavaScript identifier.
func NewCallbackName() string {
	return "cb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// callbackRegistry tracks the callbacks of attempts still in flight.
// Each registration hands back a release func that is safe to call more
// than once and removes the entry exactly once.
type callbackRegistry struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func newCallbackRegistry() *callbackRegistry {
	return &callbackRegistry{pending: make(map[string]struct{})}
}

func (r *callbackRegistry) register(name string) (release func()) {
	r.mu.Lock()
	r.pending[name] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.pending, name)
			r.mu.Unlock()
		})
	}
}

func (r *callbackRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
