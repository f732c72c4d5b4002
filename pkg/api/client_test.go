package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

func newTestClient(t *testing.T, h http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/", Tokens: StaticToken(token), RetryMax: 3})
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "://nope"} {
		_, err := New(Options{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}

func TestAuthMissingSendsNothing(t *testing.T) {
	var hits int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}), "")

	_, err := c.CreateFolder(context.Background(), models.NewID("C1"), "Intro")
	assert.ErrorIs(t, err, ErrAuthMissing)
	err = c.SubmitAssignment(context.Background(), models.NewID("C1"), SubmissionRequest{})
	assert.ErrorIs(t, err, ErrAuthMissing)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var auth, reqID, ctype string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get("X-Request-ID")
		ctype = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"folder_id": 1, "title": "Intro"}`))
	}), "tok")

	f, err := c.CreateFolder(context.Background(), models.NewID("C1"), "Intro")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "1", f.ID.String())
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "application/json", ctype)
	assert.Len(t, reqID, 36)
}

func TestStatusErrorCarriesServerText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail", `{"detail":"Folder title taken"}`, "Folder title taken"},
		{"error", `{"error":"nope"}`, "nope"},
		{"plain", "bad things", "bad things"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}), "tok")

			_, err := c.CreateFolder(context.Background(), models.NewID("C1"), "x")
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, http.StatusBadRequest, se.Code)
			assert.Equal(t, tt.want, se.Message)
			assert.True(t, IsStatus(err, http.StatusBadRequest))
		})
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var hits int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"folder_id": "1", "title": "Intro", "subfolders": []}]`))
	}), "")

	folders, err := c.FetchTree(context.Background(), models.NewID("C1"))
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Intro", folders[0].Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"detail":"no such course"}`, http.StatusNotFound)
	}), "")

	_, err := c.FetchTree(context.Background(), models.NewID("C9"))
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestMutationsAreNotRetried(t *testing.T) {
	var hits int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}), "tok")

	_, err := c.CreateSubfolder(context.Background(), models.NewID("C1"), models.IntID(1), "Lecture 1")
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, RetryMax: 1})
	require.NoError(t, err)

	_, err = c.FetchTree(context.Background(), models.NewID("C1"))
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestCreateAckWithoutEntity(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"ok"`))
	}), "tok")

	item, err := c.CreateItem(context.Background(), models.NewID("C1"), models.IntID(1), models.IntID(2),
		models.ItemVideo, map[string]string{"title": "Intro video"})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCreateItemPathsAndDefaults(t *testing.T) {
	var path string
	var body map[string]interface{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"item_id": 5}`))
	}), "tok")

	item, err := c.CreateItem(context.Background(), models.NewID("C1"), models.IntID(1), models.IntID(2),
		models.ItemBook, map[string]string{"title": "SICP"})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "/courses/C1/1/2/add_book", path)
	assert.Equal(t, "SICP", body["title"])
	assert.Equal(t, models.ItemBook, item.Type)

	_, err = c.CreateItem(context.Background(), models.NewID("C1"), models.IntID(1), models.IntID(2),
		models.ItemAssignment, nil)
	assert.Error(t, err)
}

func TestFetchSubfolderShapes(t *testing.T) {
	for name, body := range map[string]string{
		"wrapped": `{"items": [{"item_id": 1, "item_type": "video"}, {"item_id": "2", "item_type": "book"}]}`,
		"bare":    `[{"item_id": 1, "item_type": "video"}, {"item_id": "2", "item_type": "book"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/courses/C1/1/2", r.URL.Path)
				_, _ = w.Write([]byte(body))
			}), "")

			items, err := c.FetchSubfolder(context.Background(), models.NewID("C1"), models.IntID(1), models.IntID(2))
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, models.ItemBook, items[1].Type)
		})
	}
}

func TestFetchDetailWeakTyping(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/content/video/3":
			_, _ = w.Write([]byte(`{"title": "Intro video", "url_link": "https://x", "duration": "120"}`))
		case "/content/book/4":
			_, _ = w.Write([]byte(`{"title": "SICP", "author": "Abelson", "edition": 2}`))
		default:
			http.NotFound(w, r)
		}
	}), "")

	v, err := c.FetchDetail(context.Background(), models.Item{ID: models.IntID(3), Type: models.ItemVideo})
	require.NoError(t, err)
	require.NotNil(t, v.Video)
	assert.Equal(t, 120, v.Video.Duration)
	assert.Equal(t, "https://x", v.URL())

	b, err := c.FetchDetail(context.Background(), models.Item{ID: models.IntID(4), Type: models.ItemBook})
	require.NoError(t, err)
	require.NotNil(t, b.Book)
	assert.Equal(t, "2", b.Book.Edition)
	assert.Equal(t, "", b.URL())

	_, err = c.FetchDetail(context.Background(), models.Item{ID: models.IntID(9), Type: models.ItemNotes})
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestTextbookItemsResolveAsBooks(t *testing.T) {
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/courses/C1":
			_, _ = w.Write([]byte(`[{"folder_id": 1, "title": "Intro", "subfolders": [
				{"folder_id": 2, "title": "Reading", "items": [{"item_id": 7, "item_type": "textbook"}]}]}]`))
		case "/content/book/7":
			_, _ = w.Write([]byte(`{"title": "SICP", "author": "Abelson"}`))
		default:
			http.NotFound(w, r)
		}
	}), "")

	folders, err := c.FetchTree(context.Background(), models.NewID("C1"))
	require.NoError(t, err)
	require.Len(t, folders, 1)
	require.Len(t, folders[0].Subfolders, 1)
	item := folders[0].Subfolders[0].Items[0]
	assert.Equal(t, models.ItemBook, item.Type)

	resolved, err := c.FetchDetail(context.Background(), item)
	require.NoError(t, err)
	require.NotNil(t, resolved.Book)
	assert.Equal(t, "SICP", resolved.Title())
	assert.Equal(t, []string{"/courses/C1", "/content/book/7"}, paths)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, RouteLogin, r.URL.Path)
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "secret" {
			http.Error(w, `{"detail":"Invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access_token": "abc", "token_type": "bearer"}`))
	}), "")

	resp, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.BearerToken())

	_, err = c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "wrong"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Invalid credentials", se.Message)
}

func TestEvaluationAndInstructors(t *testing.T) {
	var deleted string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/student/courses/C1/evaluation":
			_, _ = w.Write([]byte(`{"marks": 87.5, "grade": "A"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/admin/courses/C1/instructors":
			_, _ = w.Write([]byte(`[{"instructor_id": 3, "name": "Ada", "email": "ada@x"}]`))
		case r.Method == http.MethodDelete:
			deleted = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}), "tok")
	ctx := context.Background()

	eval, err := c.FetchEvaluation(ctx, models.NewID("C1"))
	require.NoError(t, err)
	assert.Equal(t, "A", eval.Grade)
	assert.InDelta(t, 87.5, eval.Marks, 0.001)

	ins, err := c.ListInstructors(ctx, models.NewID("C1"))
	require.NoError(t, err)
	require.Len(t, ins, 1)
	assert.Equal(t, "Ada", ins[0].Name)

	require.NoError(t, c.DeassignInstructor(ctx, models.NewID("C1"), models.IntID(3)))
	assert.Equal(t, "/admin/courses/C1/instructors/3", deleted)
}
