package models

import (
	"encoding/json"
	"strings"
)

// ItemType categorizes the leaf content units of a course tree.
type ItemType string

const (
	ItemVideo      ItemType = "video"
	ItemNotes      ItemType = "notes"
	ItemBook       ItemType = "book"
	ItemAssignment ItemType = "assignment"
)

// ParseItemType normalizes a type name as it appears in payloads or on the
// command line. "textbook" is an alias of book.
func ParseItemType(s string) (ItemType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "videos":
		return ItemVideo, true
	case "notes", "note":
		return ItemNotes, true
	case "book", "textbook", "books":
		return ItemBook, true
	case "assignment", "assignments":
		return ItemAssignment, true
	}
	return "", false
}

// UnmarshalJSON normalizes aliases such as "textbook". Unknown names are
// kept verbatim.
func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, ok := ParseItemType(s); ok {
		*t = parsed
		return nil
	}
	*t = ItemType(s)
	return nil
}

// Creatable reports whether instructors can create items of this type
// through the content tree.
func (t ItemType) Creatable() bool {
	return t == ItemVideo || t == ItemNotes || t == ItemBook
}

// HasURL reports whether the item opens an external link.
func (t ItemType) HasURL() bool {
	return t == ItemVideo || t == ItemNotes
}

// Course is the identity of a course. The content tree only reads it.
type Course struct {
	ID   ID     `json:"course_id" yaml:"course_id"`
	Name string `json:"course_name,omitempty" yaml:"course_name,omitempty"`
}

// Folder is a node of the content tree. Top-level folders and subfolders
// share one id namespace; a subfolder is a Folder with ParentID set.
type Folder struct {
	ID         ID        `json:"folder_id" yaml:"folder_id"`
	Title      string    `json:"title" yaml:"title"`
	ParentID   *ID       `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Subfolders []*Folder `json:"subfolders,omitempty" yaml:"subfolders,omitempty"`
	Items      []Item    `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsSubfolder reports whether the folder hangs off another folder.
func (f *Folder) IsSubfolder() bool {
	return f.ParentID != nil && !f.ParentID.IsZero()
}

// Clone returns a deep copy of the folder and its descendants.
func (f *Folder) Clone() *Folder {
	if f == nil {
		return nil
	}
	out := &Folder{ID: f.ID, Title: f.Title}
	if f.ParentID != nil {
		pid := *f.ParentID
		out.ParentID = &pid
	}
	if f.Subfolders != nil {
		out.Subfolders = make([]*Folder, len(f.Subfolders))
		for i, sub := range f.Subfolders {
			out.Subfolders[i] = sub.Clone()
		}
	}
	if f.Items != nil {
		out.Items = append([]Item(nil), f.Items...)
	}
	return out
}

// Item is the tree payload for a leaf: only its id and type. Everything
// else needs a detail fetch keyed by (Type, ID).
type Item struct {
	ID   ID       `json:"item_id" yaml:"item_id"`
	Type ItemType `json:"item_type" yaml:"item_type"`
}

// Evaluation is the marks/grade summary of a student in a course.
type Evaluation struct {
	Marks float64 `json:"marks" yaml:"marks"`
	Grade string  `json:"grade" yaml:"grade"`
}

// Instructor is an instructor assigned to a course.
type Instructor struct {
	ID    ID     `json:"instructor_id" yaml:"instructor_id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}
