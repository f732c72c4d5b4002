// Package tree holds the client-side copy of a course's content tree and
// the local expansion state rendered alongside it.
package tree

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// ErrNoCourse is returned when a tree operation runs without a course id.
var ErrNoCourse = errors.New("no course selected")

// Fetcher loads the full tree of a course from the backend.
type Fetcher interface {
	FetchTree(ctx context.Context, course models.ID) ([]*models.Folder, error)
}

// Cache owns the in-memory tree of one course. The only writer is a
// successful Refresh; readers take Snapshots.
type Cache struct {
	course  models.ID
	fetcher Fetcher
	now     func() time.Time

	nextSeq atomic.Uint64

	mu      sync.RWMutex
	current *Snapshot
	hooks   []func(*Snapshot)
}

// NewCache creates an empty cache for course.
func NewCache(course models.ID, fetcher Fetcher) *Cache {
	return &Cache{
		course:  course,
		fetcher: fetcher,
		now:     time.Now,
		current: emptySnapshot(course),
	}
}

// Course returns the course the cache tracks.
func (c *Cache) Course() models.ID { return c.course }

// Snapshot returns the current tree. Never nil.
func (c *Cache) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// OnRefresh registers fn to run after every applied refresh.
func (c *Cache) OnRefresh(fn func(*Snapshot)) {
	c.mu.Lock()
	c.hooks = append(c.hooks, fn)
	c.mu.Unlock()
}

// Refresh fetches the tree and replaces the cache contents in one step. On
// failure the cache is left untouched and the error returned. A fetch that
// completes after a later-started fetch was already applied is dropped.
func (c *Cache) Refresh(ctx context.Context) error {
	if c.course.IsZero() {
		return ErrNoCourse
	}
	seq := c.nextSeq.Add(1)

	folders, err := c.fetcher.FetchTree(ctx, c.course)
	if err != nil {
		return fmt.Errorf("fetch tree for course %s: %w", c.course, err)
	}
	snap := newSnapshot(c.course, folders, seq, c.now())

	c.mu.Lock()
	if seq < c.current.seq {
		c.mu.Unlock()
		return nil
	}
	c.current = snap
	hooks := append([]func(*Snapshot){}, c.hooks...)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn(snap)
	}
	return nil
}
