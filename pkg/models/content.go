package models

// VideoDetail is returned by GET /content/video/{id}.
type VideoDetail struct {
	Title    string `json:"title" mapstructure:"title" yaml:"title"`
	URLLink  string `json:"url_link" mapstructure:"url_link" yaml:"url_link"`
	Duration int    `json:"duration,omitempty" mapstructure:"duration" yaml:"duration,omitempty"`
}

// NotesDetail is returned by GET /content/notes/{id}.
type NotesDetail struct {
	Title        string `json:"title" mapstructure:"title" yaml:"title"`
	URLLink      string `json:"url_link" mapstructure:"url_link" yaml:"url_link"`
	DocumentType string `json:"document_type,omitempty" mapstructure:"document_type" yaml:"document_type,omitempty"`
}

// BookDetail is returned by GET /content/book/{id}. Books have no link.
type BookDetail struct {
	Title     string `json:"title" mapstructure:"title" yaml:"title"`
	Author    string `json:"author,omitempty" mapstructure:"author" yaml:"author,omitempty"`
	Publisher string `json:"publisher,omitempty" mapstructure:"publisher" yaml:"publisher,omitempty"`
	Edition   string `json:"edition,omitempty" mapstructure:"edition" yaml:"edition,omitempty"`
}

// AssignmentDetail is returned by GET /content/assignment/{id}.
type AssignmentDetail struct {
	Title        string `json:"title" mapstructure:"title" yaml:"title"`
	AssignmentID string `json:"assignment_id" mapstructure:"assignment_id" yaml:"assignment_id"`
}

// ResolvedItem is an Item together with its type-specific detail. At most
// one detail pointer is set; none when the detail fetch failed.
type ResolvedItem struct {
	Item       `yaml:",inline"`
	Video      *VideoDetail      `json:"video,omitempty" yaml:"video,omitempty"`
	Notes      *NotesDetail      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Book       *BookDetail       `json:"book,omitempty" yaml:"book,omitempty"`
	Assignment *AssignmentDetail `json:"assignment,omitempty" yaml:"assignment,omitempty"`
}

// Resolved reports whether detail is attached.
func (r ResolvedItem) Resolved() bool {
	return r.Video != nil || r.Notes != nil || r.Book != nil || r.Assignment != nil
}

// Title returns the detail title, or a placeholder built from the stub.
func (r ResolvedItem) Title() string {
	switch {
	case r.Video != nil:
		return r.Video.Title
	case r.Notes != nil:
		return r.Notes.Title
	case r.Book != nil:
		return r.Book.Title
	case r.Assignment != nil:
		return r.Assignment.Title
	}
	return string(r.Type) + " #" + r.ID.String()
}

// URL returns the external link for video and notes items.
func (r ResolvedItem) URL() string {
	switch {
	case r.Video != nil:
		return r.Video.URLLink
	case r.Notes != nil:
		return r.Notes.URLLink
	}
	return ""
}

// AssignmentID returns the id to submit against. Falls back to the item id
// when the detail carries none.
func (r ResolvedItem) AssignmentID() string {
	if r.Assignment != nil && r.Assignment.AssignmentID != "" {
		return r.Assignment.AssignmentID
	}
	return r.ID.String()
}
