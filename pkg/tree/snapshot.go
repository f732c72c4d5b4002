package tree

import (
	"time"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// Counts summarizes a snapshot.
type Counts struct {
	Folders    int
	Subfolders int
	Items      int
}

// Snapshot is an immutable view of a course tree as returned by one
// successful fetch. Accessors hand out copies.
type Snapshot struct {
	course    models.ID
	folders   []*models.Folder
	byID      map[string]*models.Folder
	parentOf  map[string]models.ID
	seq       uint64
	fetchedAt time.Time
}

func emptySnapshot(course models.ID) *Snapshot {
	return &Snapshot{
		course:   course,
		byID:     map[string]*models.Folder{},
		parentOf: map[string]models.ID{},
	}
}

// newSnapshot copies folders and indexes every folder and subfolder by id.
// Subfolders without a parent reference get the enclosing folder's id.
func newSnapshot(course models.ID, folders []*models.Folder, seq uint64, at time.Time) *Snapshot {
	s := emptySnapshot(course)
	s.seq = seq
	s.fetchedAt = at
	s.folders = make([]*models.Folder, 0, len(folders))
	for _, f := range folders {
		if f == nil {
			continue
		}
		c := f.Clone()
		c.ParentID = nil
		s.folders = append(s.folders, c)
		s.index(c)
	}
	return s
}

func (s *Snapshot) index(f *models.Folder) {
	s.byID[f.ID.String()] = f
	for _, sub := range f.Subfolders {
		if sub.ParentID == nil || sub.ParentID.IsZero() {
			pid := f.ID
			sub.ParentID = &pid
		}
		s.parentOf[sub.ID.String()] = f.ID
		s.index(sub)
	}
}

// Course returns the course the snapshot belongs to.
func (s *Snapshot) Course() models.ID { return s.course }

// FetchedAt is the time of the fetch that produced the snapshot; zero for
// a cache that was never loaded.
func (s *Snapshot) FetchedAt() time.Time { return s.fetchedAt }

// Loaded reports whether the snapshot came from a successful fetch.
func (s *Snapshot) Loaded() bool { return !s.fetchedAt.IsZero() }

// Empty reports whether the course has no folders.
func (s *Snapshot) Empty() bool { return len(s.folders) == 0 }

// Folders returns a copy of the top-level folders in server order.
func (s *Snapshot) Folders() []*models.Folder {
	out := make([]*models.Folder, len(s.folders))
	for i, f := range s.folders {
		out[i] = f.Clone()
	}
	return out
}

// Folder looks up a folder or subfolder by id.
func (s *Snapshot) Folder(id models.ID) (*models.Folder, bool) {
	f, ok := s.byID[id.String()]
	if !ok {
		return nil, false
	}
	return f.Clone(), true
}

// Subfolder looks up an id that is known to be a subfolder. Top-level
// folders do not match.
func (s *Snapshot) Subfolder(id models.ID) (*models.Folder, bool) {
	if _, ok := s.parentOf[id.String()]; !ok {
		return nil, false
	}
	return s.Folder(id)
}

// FolderOf returns the folder whose subfolder list contains sub.
func (s *Snapshot) FolderOf(sub models.ID) (models.ID, bool) {
	id, ok := s.parentOf[sub.String()]
	return id, ok
}

// Contains reports whether id names a folder or subfolder in the tree.
func (s *Snapshot) Contains(id models.ID) bool {
	_, ok := s.byID[id.String()]
	return ok
}

// Counts tallies folders, subfolders and items.
func (s *Snapshot) Counts() Counts {
	var c Counts
	c.Folders = len(s.folders)
	for _, f := range s.folders {
		for _, sub := range f.Subfolders {
			c.Subfolders++
			c.Items += len(sub.Items)
		}
	}
	return c
}

// Walk visits every folder depth first in server order. depth is 0 for
// top-level folders. fn must not modify the folder.
func (s *Snapshot) Walk(fn func(f *models.Folder, depth int)) {
	var walk func(fs []*models.Folder, depth int)
	walk = func(fs []*models.Folder, depth int) {
		for _, f := range fs {
			fn(f, depth)
			walk(f.Subfolders, depth+1)
		}
	}
	walk(s.folders, 0)
}
