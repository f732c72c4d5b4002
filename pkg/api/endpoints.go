package api

import (
	"net/url"
	"strings"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// Route patterns as mounted by the backend. The mock server registers the
// same patterns.
const (
	RouteLogin         = "/login"
	RouteCourseTree    = "/courses/{course_id}"
	RouteAddFolder     = "/courses/{course_id}/add_folder"
	RouteAddSubfolder  = "/courses/{course_id}/{folder_id}/add_sub"
	RouteSubfolder     = "/courses/{course_id}/{folder_id}/{subfolder_id}"
	RouteAddVideo      = "/courses/{course_id}/{folder_id}/{subfolder_id}/add_video"
	RouteAddNotes      = "/courses/{course_id}/{folder_id}/{subfolder_id}/add_notes"
	RouteAddBook       = "/courses/{course_id}/{folder_id}/{subfolder_id}/add_book"
	RouteContentDetail = "/content/{item_type}/{item_id}"
	RouteSubmit        = "/student/courses/{course_id}/submit_asg"
	RouteEvaluation    = "/student/courses/{course_id}/evaluation"
	RouteInstructors   = "/admin/courses/{course_id}/instructors"
	RouteInstructor    = "/admin/courses/{course_id}/instructors/{instructor_id}"
)

func join(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func courseTreePath(course models.ID) string {
	return join("courses", course.String())
}

func addFolderPath(course models.ID) string {
	return join("courses", course.String(), "add_folder")
}

func addSubfolderPath(course, folder models.ID) string {
	return join("courses", course.String(), folder.String(), "add_sub")
}

func subfolderPath(course, folder, sub models.ID) string {
	return join("courses", course.String(), folder.String(), sub.String())
}

func addItemPath(course, folder, sub models.ID, variant models.ItemType) string {
	return join("courses", course.String(), folder.String(), sub.String(), "add_"+string(variant))
}

func contentPath(t models.ItemType, id models.ID) string {
	return join("content", string(t), id.String())
}

func submitPath(course models.ID) string {
	return join("student", "courses", course.String(), "submit_asg")
}

func evaluationPath(course models.ID) string {
	return join("student", "courses", course.String(), "evaluation")
}

func instructorsPath(course models.ID) string {
	return join("admin", "courses", course.String(), "instructors")
}

func instructorPath(course, instructor models.ID) string {
	return join("admin", "courses", course.String(), "instructors", instructor.String())
}
