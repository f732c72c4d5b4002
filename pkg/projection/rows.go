// Package projection turns a tree snapshot into what a role gets to see
// and do: display rows with their affordances, the student content modal
// and item activation.
package projection

import (
	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

// View is a role-specific projection.
type View int

const (
	StudentView View = iota
	InstructorView
)

func (v View) String() string {
	if v == InstructorView {
		return "instructor"
	}
	return "student"
}

// ForRole maps a session role to its projection. Unknown roles get the
// student view.
func ForRole(r session.Role) View {
	switch r {
	case session.RoleInstructor, session.RoleAdmin:
		return InstructorView
	}
	return StudentView
}

// CanSubmit reports whether the role may submit assignments.
func CanSubmit(r session.Role) bool {
	return r == session.RoleStudent
}

// Kind is the node type of a row.
type Kind int

const (
	KindFolder Kind = iota
	KindSubfolder
	KindItem
)

// Affordance is an action a row offers.
type Affordance string

const (
	AffordToggle       Affordance = "toggle"
	AffordAddFolder    Affordance = "add_folder"
	AffordAddSubfolder Affordance = "add_subfolder"
	AffordManage       Affordance = "manage"
	AffordOpen         Affordance = "open"
)

// Row is one displayed line of the tree.
type Row struct {
	Kind     Kind
	ID       models.ID
	FolderID models.ID // owning top-level folder; zero for folders
	ParentID models.ID // enclosing node; zero for folders
	Title    string
	ItemType models.ItemType
	Depth    int
	Expanded bool
	Children int

	Affordances []Affordance
}

// Can reports whether the row offers a.
func (r Row) Can(a Affordance) bool {
	for _, x := range r.Affordances {
		if x == a {
			return true
		}
	}
	return false
}

// Header is the line above the rows.
type Header struct {
	Affordances []Affordance
	Empty       bool
}

// EmptyMessage is shown when the tree has no folders, loaded or not.
const EmptyMessage = "No content yet"

// HeaderFor returns the header of a projection.
func HeaderFor(snap *tree.Snapshot, v View) Header {
	h := Header{Empty: snap.Empty()}
	if v == InstructorView {
		h.Affordances = []Affordance{AffordAddFolder}
	}
	return h
}

// Rows flattens the snapshot into display rows in server order. Children
// of collapsed nodes are omitted.
func Rows(snap *tree.Snapshot, exp *tree.Expansion, v View) []Row {
	var rows []Row
	for _, f := range snap.Folders() {
		open := exp.IsExpanded(f.ID)
		folder := Row{
			Kind:        KindFolder,
			ID:          f.ID,
			Title:       f.Title,
			Expanded:    open,
			Children:    len(f.Subfolders),
			Affordances: []Affordance{AffordToggle},
		}
		if v == InstructorView {
			folder.Affordances = append(folder.Affordances, AffordAddSubfolder)
		}
		rows = append(rows, folder)
		if !open {
			continue
		}

		for _, sub := range f.Subfolders {
			subOpen := exp.IsExpanded(sub.ID)
			row := Row{
				Kind:        KindSubfolder,
				ID:          sub.ID,
				FolderID:    f.ID,
				ParentID:    f.ID,
				Title:       sub.Title,
				Depth:       1,
				Expanded:    subOpen,
				Children:    len(sub.Items),
				Affordances: []Affordance{AffordToggle},
			}
			if v == InstructorView {
				row.Affordances = append(row.Affordances, AffordManage)
			} else {
				row.Affordances = append(row.Affordances, AffordOpen)
			}
			rows = append(rows, row)
			if !subOpen {
				continue
			}

			for _, it := range sub.Items {
				rows = append(rows, Row{
					Kind:     KindItem,
					ID:       it.ID,
					FolderID: f.ID,
					ParentID: sub.ID,
					Title:    TypeLabel(it.Type) + " #" + it.ID.String(),
					ItemType: it.Type,
					Depth:    2,
				})
			}
		}
	}
	return rows
}
