// Package mockapi is an in-memory implementation of the course backend's
// REST contract. The test-suite and `mooc mock-server` run against it.
package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Siddaarth-Babu/mooc/pkg/api"
)

// Server is the mock backend. The zero value is not usable; call New.
type Server struct {
	router *chi.Mux
	log    logrus.FieldLogger
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	store  *store
	calls  map[string]int
	faults map[string][]int
	holds  map[string]chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.log = l }
}

// WithSecret sets the HS256 signing key for issued tokens.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// New creates an empty backend.
func New(opts ...Option) *Server {
	s := &Server{
		router: chi.NewRouter(),
		secret: []byte("mooc-mock-secret"),
		ttl:    24 * time.Hour,
		store:  newStore(),
		calls:  make(map[string]int),
		faults: make(map[string][]int),
		holds:  make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.handle(http.MethodPost, api.RouteLogin, false, s.handleLogin)

	s.handle(http.MethodGet, api.RouteCourseTree, false, s.handleTree)
	s.handle(http.MethodPost, api.RouteAddFolder, true, s.handleAddFolder)
	s.handle(http.MethodPost, api.RouteAddSubfolder, true, s.handleAddSubfolder)
	s.handle(http.MethodGet, api.RouteSubfolder, false, s.handleSubfolder)
	s.handle(http.MethodPost, api.RouteAddVideo, true, s.handleAddItem("video"))
	s.handle(http.MethodPost, api.RouteAddNotes, true, s.handleAddItem("notes"))
	s.handle(http.MethodPost, api.RouteAddBook, true, s.handleAddItem("book"))
	s.handle(http.MethodGet, api.RouteContentDetail, false, s.handleDetail)

	s.handle(http.MethodPost, api.RouteSubmit, true, s.handleSubmit)
	s.handle(http.MethodGet, api.RouteEvaluation, true, s.handleEvaluation)

	s.handle(http.MethodGet, api.RouteInstructors, true, s.handleListInstructors)
	s.handle(http.MethodDelete, api.RouteInstructor, true, s.handleDeassign)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func routeKey(method, pattern string) string { return method + " " + pattern }

// handle registers h and wraps it with call counting, holds, injected
// faults and, when auth is set, bearer verification.
func (s *Server) handle(method, pattern string, auth bool, h http.HandlerFunc) {
	key := routeKey(method, pattern)
	s.router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[key]++
		hold := s.holds[key]
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		if status, ok := s.popFault(key); ok {
			writeError(w, status, "injected failure")
			return
		}

		if auth {
			c, err := s.authenticate(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			r = r.WithContext(withClaims(r.Context(), c))
		}
		h(w, r)
	}))
}

// FailNext makes the next request to the route answer with status.
// Repeated calls queue further failures.
func (s *Server) FailNext(method, pattern string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, pattern)
	s.faults[key] = append(s.faults[key], status)
}

func (s *Server) popFault(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.faults[key]
	if len(q) == 0 {
		return 0, false
	}
	s.faults[key] = q[1:]
	return q[0], true
}

// Hold blocks requests to the route until the returned release func is
// called. Requests are counted before they block.
func (s *Server) Hold(method, pattern string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, pattern)
	ch := make(chan struct{})
	s.holds[key] = ch

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.holds[key] == ch {
				delete(s.holds, key)
			}
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns how many requests reached the route.
func (s *Server) Calls(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[routeKey(method, pattern)]
}

// TotalCalls returns the number of requests across all routes.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// ResetCalls zeroes the call counters.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	s.calls = make(map[string]int)
	s.mu.Unlock()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ww.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request_id": r.Header.Get("X-Request-ID"),
			"elapsed":    time.Since(start),
		}).Info("mock request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"detail":%q}`, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
