package mockapi

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

var (
	errCourseNotFound    = errors.New("course not found")
	errFolderNotFound    = errors.New("folder not found")
	errSubfolderNotFound = errors.New("subfolder not found")
	errContentNotFound   = errors.New("content not found")
	errUserNotFound      = errors.New("user not found")
)

type user struct {
	ID       int64
	Email    string
	Password string
	Role     string
	Name     string
}

type subfolder struct {
	ID    int64
	Title string
	Items []models.Item
}

type folder struct {
	ID         int64
	Title      string
	Subfolders []*subfolder
}

// Submission is a recorded assignment submission.
type Submission struct {
	UserID        string `json:"user_id"`
	AssignmentID  string `json:"assignment_id"`
	SubmissionURL string `json:"submission_url"`
}

type course struct {
	ID          string
	Name        string
	Folders     []*folder
	Instructors []models.Instructor
	Evaluations map[string]models.Evaluation
	Submissions []Submission
}

// store is the backend's data. Folders and subfolders draw ids from one
// sequence, items from another.
type store struct {
	mu        sync.Mutex
	users     map[string]*user
	userSeq   int64
	courses   map[string]*course
	folderSeq int64
	itemSeq   int64
	content   map[string]map[string]interface{}
}

func newStore() *store {
	return &store{
		users:   make(map[string]*user),
		courses: make(map[string]*course),
		content: make(map[string]map[string]interface{}),
	}
}

func contentKey(itemType string, id int64) string {
	return itemType + "/" + strconv.FormatInt(id, 10)
}

func (st *store) course(id string) (*course, error) {
	c, ok := st.courses[id]
	if !ok {
		return nil, errCourseNotFound
	}
	return c, nil
}

func (c *course) folder(id int64) (*folder, error) {
	for _, f := range c.Folders {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, errFolderNotFound
}

func (f *folder) subfolder(id int64) (*subfolder, error) {
	for _, s := range f.Subfolders {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errSubfolderNotFound
}

func (st *store) addFolder(courseID, title string) (*folder, error) {
	c, err := st.course(courseID)
	if err != nil {
		return nil, err
	}
	st.folderSeq++
	f := &folder{ID: st.folderSeq, Title: title}
	c.Folders = append(c.Folders, f)
	return f, nil
}

func (st *store) addSubfolder(courseID string, folderID int64, title string) (*subfolder, error) {
	c, err := st.course(courseID)
	if err != nil {
		return nil, err
	}
	f, err := c.folder(folderID)
	if err != nil {
		return nil, err
	}
	st.folderSeq++
	s := &subfolder{ID: st.folderSeq, Title: title}
	f.Subfolders = append(f.Subfolders, s)
	return s, nil
}

func (st *store) lookupSubfolder(courseID string, folderID, subID int64) (*subfolder, error) {
	c, err := st.course(courseID)
	if err != nil {
		return nil, err
	}
	f, err := c.folder(folderID)
	if err != nil {
		return nil, err
	}
	return f.subfolder(subID)
}

func (st *store) addItem(courseID string, folderID, subID int64, itemType string, fields map[string]interface{}) (models.Item, error) {
	s, err := st.lookupSubfolder(courseID, folderID, subID)
	if err != nil {
		return models.Item{}, err
	}
	st.itemSeq++
	item := models.Item{ID: models.IntID(st.itemSeq), Type: models.ItemType(itemType)}
	s.Items = append(s.Items, item)

	stored := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		stored[k] = v
	}
	st.content[contentKey(itemType, st.itemSeq)] = stored
	return item, nil
}

func (st *store) detail(itemType string, id int64) (map[string]interface{}, error) {
	if itemType == "textbook" {
		itemType = "book"
	}
	fields, ok := st.content[contentKey(itemType, id)]
	if !ok {
		return nil, errContentNotFound
	}
	return fields, nil
}

func (st *store) userByEmail(email string) (*user, bool) {
	u, ok := st.users[strings.ToLower(email)]
	return u, ok
}

// Wire shapes. The tree always carries subfolders and items arrays, empty
// or not.

type subfolderJSON struct {
	FolderID int64         `json:"folder_id"`
	Title    string        `json:"title"`
	Items    []models.Item `json:"items"`
}

type folderJSON struct {
	FolderID   int64           `json:"folder_id"`
	Title      string          `json:"title"`
	Subfolders []subfolderJSON `json:"subfolders"`
}

func (s *subfolder) wire() subfolderJSON {
	items := append([]models.Item{}, s.Items...)
	return subfolderJSON{FolderID: s.ID, Title: s.Title, Items: items}
}

func (c *course) wire() []folderJSON {
	out := make([]folderJSON, 0, len(c.Folders))
	for _, f := range c.Folders {
		fj := folderJSON{FolderID: f.ID, Title: f.Title, Subfolders: []subfolderJSON{}}
		for _, s := range f.Subfolders {
			fj.Subfolders = append(fj.Subfolders, s.wire())
		}
		out = append(out, fj)
	}
	return out
}
