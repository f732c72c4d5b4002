package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

func pathInt(r *http.Request, key string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return n, err == nil
}

func notFound(w http.ResponseWriter, err error) {
	writeError(w, http.StatusNotFound, err.Error())
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.store.mu.Lock()
	u, ok := s.store.userByEmail(body.Email)
	s.store.mu.Unlock()
	if !ok || u.Password != body.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"role":         u.Role,
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(chi.URLParam(r, "course_id"))
	if err != nil {
		notFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.wire())
}

type titleRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleAddFolder(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, "instructor", "admin"); !ok {
		return
	}
	var body titleRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if blank(body.Title) {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.store.mu.Lock()
	f, err := s.store.addFolder(chi.URLParam(r, "course_id"), body.Title)
	s.store.mu.Unlock()
	if err != nil {
		notFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"folder_id": f.ID, "title": f.Title})
}

func (s *Server) handleAddSubfolder(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, "instructor", "admin"); !ok {
		return
	}
	folderID, ok := pathInt(r, "folder_id")
	if !ok {
		notFound(w, errFolderNotFound)
		return
	}
	var body titleRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if blank(body.Title) {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.store.mu.Lock()
	sub, err := s.store.addSubfolder(chi.URLParam(r, "course_id"), folderID, body.Title)
	s.store.mu.Unlock()
	if err != nil {
		notFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub.wire())
}

func (s *Server) handleSubfolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok1 := pathInt(r, "folder_id")
	subID, ok2 := pathInt(r, "subfolder_id")
	if !ok1 || !ok2 {
		notFound(w, errSubfolderNotFound)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	sub, err := s.store.lookupSubfolder(chi.URLParam(r, "course_id"), folderID, subID)
	if err != nil {
		notFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": sub.wire().Items})
}

// requiredFields lists the non-blank body fields per created variant.
var requiredFields = map[string][]string{
	"video": {"title", "url_link"},
	"notes": {"title", "url_link"},
	"book":  {"title"},
}

func (s *Server) handleAddItem(variant string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, "instructor", "admin"); !ok {
			return
		}
		folderID, ok1 := pathInt(r, "folder_id")
		subID, ok2 := pathInt(r, "subfolder_id")
		if !ok1 || !ok2 {
			notFound(w, errSubfolderNotFound)
			return
		}
		var body map[string]interface{}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, field := range requiredFields[variant] {
			if v, _ := body[field].(string); blank(v) {
				writeError(w, http.StatusBadRequest, field+" is required")
				return
			}
		}

		s.store.mu.Lock()
		item, err := s.store.addItem(chi.URLParam(r, "course_id"), folderID, subID, variant, body)
		s.store.mu.Unlock()
		if err != nil {
			notFound(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "item_id")
	if !ok {
		notFound(w, errContentNotFound)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	fields, err := s.store.detail(chi.URLParam(r, "item_type"), id)
	if err != nil {
		notFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, "student")
	if !ok {
		return
	}
	var body Submission
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if blank(body.SubmissionURL) || blank(body.AssignmentID) {
		writeError(w, http.StatusBadRequest, "submission_url and assignment_id are required")
		return
	}
	body.UserID = claims.UserID

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(chi.URLParam(r, "course_id"))
	if err != nil {
		notFound(w, err)
		return
	}
	c.Submissions = append(c.Submissions, body)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Submission recorded"})
}

func (s *Server) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, "student", "analyst")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(chi.URLParam(r, "course_id"))
	if err != nil {
		notFound(w, err)
		return
	}
	eval, ok := c.Evaluations[claims.UserID]
	if !ok {
		writeError(w, http.StatusNotFound, "No evaluation yet")
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func (s *Server) handleListInstructors(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, "admin"); !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(chi.URLParam(r, "course_id"))
	if err != nil {
		notFound(w, err)
		return
	}
	writeJSON(w, http.StatusOK, append([]models.Instructor{}, c.Instructors...))
}

func (s *Server) handleDeassign(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, "admin"); !ok {
		return
	}
	target := chi.URLParam(r, "instructor_id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c, err := s.store.course(chi.URLParam(r, "course_id"))
	if err != nil {
		notFound(w, err)
		return
	}
	for i, ins := range c.Instructors {
		if ins.ID.String() == target {
			c.Instructors = append(c.Instructors[:i], c.Instructors[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Instructor removed"})
			return
		}
	}
	notFound(w, errors.New("instructor not assigned to course"))
}
