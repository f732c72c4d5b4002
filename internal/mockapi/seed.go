package mockapi

import (
	"strconv"
	"strings"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// AddUser registers a login and returns its user id.
func (s *Server) AddUser(email, password, role string) int64 {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.userSeq++
	u := &user{ID: s.store.userSeq, Email: email, Password: password, Role: role}
	s.store.users[strings.ToLower(email)] = u
	return u.ID
}

// Token issues a bearer token for a registered user without a login call.
func (s *Server) Token(email string) (string, error) {
	s.store.mu.Lock()
	u, ok := s.store.userByEmail(email)
	s.store.mu.Unlock()
	if !ok {
		return "", errUserNotFound
	}
	return s.issue(u)
}

// AddCourse creates an empty course.
func (s *Server) AddCourse(id, name string) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.courses[id]; ok {
		return
	}
	s.store.courses[id] = &course{ID: id, Name: name, Evaluations: make(map[string]models.Evaluation)}
}

// AddFolder appends a top-level folder.
func (s *Server) AddFolder(courseID, title string) (int64, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	f, err := s.store.addFolder(courseID, title)
	if err != nil {
		return 0, err
	}
	return f.ID, nil
}

// AddSubfolder appends a subfolder.
func (s *Server) AddSubfolder(courseID string, folderID int64, title string) (int64, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	sub, err := s.store.addSubfolder(courseID, folderID, title)
	if err != nil {
		return 0, err
	}
	return sub.ID, nil
}

// AddItem appends an item of any type, assignments included, with the
// fields its detail endpoint returns.
func (s *Server) AddItem(courseID string, folderID, subID int64, itemType models.ItemType, fields map[string]interface{}) (int64, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	item, err := s.store.addItem(courseID, folderID, subID, string(itemType), fields)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(item.ID.String(), 10, 64)
}

// AddInstructor assigns an instructor to a course.
func (s *Server) AddInstructor(courseID string, ins models.Instructor) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(courseID)
	if err != nil {
		return err
	}
	c.Instructors = append(c.Instructors, ins)
	return nil
}

// SetEvaluation records a student's marks and grade.
func (s *Server) SetEvaluation(courseID string, userID int64, eval models.Evaluation) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(courseID)
	if err != nil {
		return err
	}
	c.Evaluations[strconv.FormatInt(userID, 10)] = eval
	return nil
}

// Submissions returns what students submitted to a course.
func (s *Server) Submissions(courseID string) []Submission {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(courseID)
	if err != nil {
		return nil
	}
	return append([]Submission(nil), c.Submissions...)
}

// Seed fills the backend with a small demo course and one login per role.
// All demo passwords are "password".
func (s *Server) Seed() error {
	const course = "C1"
	s.AddCourse(course, "Introduction to Programming")
	s.AddUser("instructor@example.com", "password", "instructor")
	s.AddUser("admin@example.com", "password", "admin")
	s.AddUser("analyst@example.com", "password", "analyst")
	student := s.AddUser("student@example.com", "password", "student")

	intro, err := s.AddFolder(course, "Intro")
	if err != nil {
		return err
	}
	lecture, err := s.AddSubfolder(course, intro, "Lecture 1")
	if err != nil {
		return err
	}
	if _, err := s.AddItem(course, intro, lecture, models.ItemVideo, map[string]interface{}{
		"title": "Intro video", "url_link": "https://example.com/intro.mp4", "duration": 600,
	}); err != nil {
		return err
	}
	if _, err := s.AddItem(course, intro, lecture, models.ItemNotes, map[string]interface{}{
		"title": "Lecture notes", "url_link": "https://example.com/notes.pdf", "document_type": "pdf",
	}); err != nil {
		return err
	}
	if _, err := s.AddItem(course, intro, lecture, models.ItemBook, map[string]interface{}{
		"title": "Structure and Interpretation of Computer Programs", "author": "Abelson, Sussman",
		"publisher": "MIT Press", "edition": "2nd",
	}); err != nil {
		return err
	}
	if _, err := s.AddItem(course, intro, lecture, models.ItemAssignment, map[string]interface{}{
		"title": "Homework 1", "assignment_id": "A1",
	}); err != nil {
		return err
	}
	if _, err := s.AddSubfolder(course, intro, "Lecture 2"); err != nil {
		return err
	}
	if _, err := s.AddFolder(course, "Week 2"); err != nil {
		return err
	}

	if err := s.AddInstructor(course, models.Instructor{ID: models.IntID(1), Name: "Ada Lovelace", Email: "instructor@example.com"}); err != nil {
		return err
	}
	if err := s.AddInstructor(course, models.Instructor{ID: models.IntID(5), Name: "Alan Turing", Email: "turing@example.com"}); err != nil {
		return err
	}
	return s.SetEvaluation(course, student, models.Evaluation{Marks: 87.5, Grade: "A"})
}
