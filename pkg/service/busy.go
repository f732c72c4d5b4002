package service

import (
	"strings"
	"sync"
)

// Gate tracks in-flight mutations by (operation, target) key. A second
// acquire of a held key fails with ErrBusy; distinct keys never block
// each other.
type Gate struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{inflight: make(map[string]struct{})}
}

// Key builds the gate key of an operation on a target.
func Key(op string, target ...string) string {
	return op + ":" + strings.Join(target, "/")
}

// Acquire marks key busy. The returned release must be called once the
// operation completes.
func (g *Gate) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.inflight[key]; ok {
		return nil, ErrBusy
	}
	g.inflight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key is held.
func (g *Gate) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inflight[key]
	return ok
}
