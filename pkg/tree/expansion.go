package tree

import (
	"sync"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// Expansion tracks which folders and subfolders are open in a view. It is
// purely local: never persisted, never sent to the server. Absent ids are
// collapsed, and ids that disappear from the tree are simply inert.
type Expansion struct {
	mu   sync.Mutex
	open map[string]bool
}

// NewExpansion returns an all-collapsed state.
func NewExpansion() *Expansion {
	return &Expansion{open: make(map[string]bool)}
}

// Toggle flips id and returns whether it is now expanded.
func (e *Expansion) Toggle(id models.ID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := id.String()
	if e.open[key] {
		delete(e.open, key)
		return false
	}
	e.open[key] = true
	return true
}

// Expand opens id.
func (e *Expansion) Expand(id models.ID) {
	e.mu.Lock()
	e.open[id.String()] = true
	e.mu.Unlock()
}

// Collapse closes id.
func (e *Expansion) Collapse(id models.ID) {
	e.mu.Lock()
	delete(e.open, id.String())
	e.mu.Unlock()
}

// IsExpanded reports whether id is open.
func (e *Expansion) IsExpanded(id models.ID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open[id.String()]
}

// ExpandAll opens every folder and subfolder of snap.
func (e *Expansion) ExpandAll(snap *Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap.Walk(func(f *models.Folder, _ int) {
		e.open[f.ID.String()] = true
	})
}

// CollapseAll closes everything.
func (e *Expansion) CollapseAll() {
	e.mu.Lock()
	e.open = make(map[string]bool)
	e.mu.Unlock()
}

// Len returns the number of expanded ids, stale ones included.
func (e *Expansion) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.open)
}
