// Package service ties the API client, the session and the per-course tree
// caches together. Every operation the CLI and the browser expose goes
// through a Service.
package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

// Config holds service configuration
type Config struct {
	APIURL            string        `mapstructure:"api_url"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RetryMax          int           `mapstructure:"retry_max"`
	DataDir           string        `mapstructure:"data_dir"`
	LogLevel          string        `mapstructure:"log_level"`
	Course            string        `mapstructure:"course"`
	DetailConcurrency int           `mapstructure:"detail_concurrency"`
}

// Backend is the subset of the API client the service drives.
type Backend interface {
	tree.Fetcher
	CreateFolder(ctx context.Context, course models.ID, title string) (*models.Folder, error)
	CreateSubfolder(ctx context.Context, course, folder models.ID, title string) (*models.Folder, error)
	CreateItem(ctx context.Context, course, folder, sub models.ID, variant models.ItemType, body interface{}) (*models.Item, error)
	FetchSubfolder(ctx context.Context, course, folder, sub models.ID) ([]models.Item, error)
	FetchDetail(ctx context.Context, item models.Item) (models.ResolvedItem, error)
	SubmitAssignment(ctx context.Context, course models.ID, body api.SubmissionRequest) error
	FetchEvaluation(ctx context.Context, course models.ID) (*models.Evaluation, error)
	ListInstructors(ctx context.Context, course models.ID) ([]models.Instructor, error)
	DeassignInstructor(ctx context.Context, course, instructor models.ID) error
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
}

// Service is the client façade.
type Service struct {
	Config   Config
	api      Backend
	sessions *session.Manager
	gate     *Gate
	log      logrus.FieldLogger

	mu     sync.Mutex
	caches map[string]*tree.Cache
}

// New creates a service. The backend should already use sessions as its
// token source.
func New(cfg Config, backend Backend, sessions *session.Manager, log logrus.FieldLogger) *Service {
	if cfg.DetailConcurrency < 1 {
		cfg.DetailConcurrency = 4
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Service{
		Config:   cfg,
		api:      backend,
		sessions: sessions,
		gate:     NewGate(),
		log:      log,
		caches:   make(map[string]*tree.Cache),
	}
}

// DefaultCourse returns the configured course id, zero when unset.
func (s *Service) DefaultCourse() models.ID {
	return models.NewID(s.Config.Course)
}

// Session returns the active session, nil when logged out.
func (s *Service) Session() *session.Session {
	return s.sessions.Current()
}

// Role is the active session's role, empty when logged out.
func (s *Service) Role() session.Role {
	return s.sessions.Role()
}

// Gate exposes the busy gate so views can render in-flight state.
func (s *Service) Gate() *Gate { return s.gate }

// Cache returns the tree cache of a course, creating it on first use.
func (s *Service) Cache(course models.ID) *tree.Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[course.String()]
	if !ok {
		c = tree.NewCache(course, s.api)
		s.caches[course.String()] = c
	}
	return c
}

// LoadTree refreshes the course tree. It fails soft: the returned snapshot
// is never nil and is the previous (possibly empty) tree when the fetch
// fails. The error is returned for callers that want to show a banner.
func (s *Service) LoadTree(ctx context.Context, course models.ID) (*tree.Snapshot, error) {
	cache := s.Cache(course)
	if err := cache.Refresh(ctx); err != nil {
		s.log.WithFields(logrus.Fields{"course_id": course.String(), "op": "load_tree"}).
			WithError(err).Warn("tree load failed, showing cached tree")
		return cache.Snapshot(), err
	}
	return cache.Snapshot(), nil
}

func (s *Service) requireSession() error {
	if s.sessions.Current() == nil {
		return api.ErrAuthMissing
	}
	return nil
}

// refreshAfter re-fetches the tree after a confirmed mutation. Failures
// are logged only; the mutation itself succeeded.
func (s *Service) refreshAfter(ctx context.Context, course models.ID, op string) {
	if err := s.Cache(course).Refresh(ctx); err != nil {
		s.log.WithFields(logrus.Fields{"course_id": course.String(), "op": op}).
			WithError(err).Warn("re-fetch after mutation failed")
	}
}
