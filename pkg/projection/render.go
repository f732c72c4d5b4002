package projection

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

// TypeLabel is the display name of an item type.
func TypeLabel(t models.ItemType) string {
	if t == "" {
		return "Item"
	}
	return cases.Title(language.English).String(string(t))
}

// EvaluationLine summarizes marks and grade. A missing evaluation or a
// failed fetch degrades to a placeholder.
func EvaluationLine(eval *models.Evaluation, err error) string {
	if err != nil || eval == nil {
		return "No evaluation yet"
	}
	return fmt.Sprintf("Marks: %g  Grade: %s", eval.Marks, eval.Grade)
}

// DetailLines renders the inline detail of an item.
func DetailLines(item models.ResolvedItem) []string {
	lines := []string{fmt.Sprintf("%s: %s", TypeLabel(item.Type), item.Title())}
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("  %s: %s", label, value))
		}
	}
	switch {
	case item.Video != nil:
		add("Link", item.Video.URLLink)
		if item.Video.Duration > 0 {
			add("Duration", fmt.Sprintf("%ds", item.Video.Duration))
		}
	case item.Notes != nil:
		add("Link", item.Notes.URLLink)
		add("Format", item.Notes.DocumentType)
	case item.Book != nil:
		add("Author", item.Book.Author)
		add("Publisher", item.Book.Publisher)
		add("Edition", item.Book.Edition)
	case item.Assignment != nil:
		add("Assignment", item.Assignment.AssignmentID)
	default:
		lines = append(lines, "  (details unavailable)")
	}
	return lines
}

// Text renders a projection as indented plain text.
func Text(snap *tree.Snapshot, exp *tree.Expansion, v View) string {
	var b strings.Builder
	if snap.Empty() {
		b.WriteString(EmptyMessage)
		b.WriteByte('\n')
		return b.String()
	}
	for _, r := range Rows(snap, exp, v) {
		b.WriteString(strings.Repeat("  ", r.Depth))
		switch r.Kind {
		case KindFolder, KindSubfolder:
			marker := "▸"
			if r.Expanded {
				marker = "▾"
			}
			fmt.Fprintf(&b, "%s %s [%s]", marker, r.Title, r.ID)
		case KindItem:
			fmt.Fprintf(&b, "• %s", r.Title)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
