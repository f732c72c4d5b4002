package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siddaarth-Babu/mooc/internal/mockapi"
	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
)

var c1 = models.NewID("C1")

func newEnv(t *testing.T, role string) (*Service, *mockapi.Server) {
	t.Helper()
	mock := mockapi.New()
	mock.AddCourse("C1", "Course 1")
	mock.AddUser("user@example.com", "pw", role)
	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)

	sessions, err := session.NewManager(nil)
	require.NoError(t, err)
	client, err := api.New(api.Options{BaseURL: srv.URL, Tokens: sessions, RetryMax: 1, Timeout: 5 * time.Second})
	require.NoError(t, err)

	svc := New(Config{Course: "C1"}, client, sessions, nil)
	sess, err := svc.Login(context.Background(), "user@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, session.Role(role), sess.Role)
	mock.ResetCalls()
	return svc, mock
}

func TestCreateFolderScenario(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()

	snap, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)
	require.True(t, snap.Empty())

	created, err := svc.CreateFolder(ctx, c1, "Intro")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "1", created.ID.String())

	snap = svc.Cache(c1).Snapshot()
	folders := snap.Folders()
	require.Len(t, folders, 1)
	assert.Equal(t, "Intro", folders[0].Title)
	assert.Empty(t, folders[0].Subfolders)
	assert.Equal(t, 2, mock.Calls(http.MethodGet, api.RouteCourseTree), "one load plus one re-fetch")
}

func TestCreateFolderAddsExactlyOne(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()
	_, err := mock.AddFolder("C1", "Existing")
	require.NoError(t, err)

	before, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, c1, "Week 1")
	require.NoError(t, err)
	after := svc.Cache(c1).Snapshot()

	assert.Equal(t, before.Counts().Folders+1, after.Counts().Folders)
	folders := after.Folders()
	assert.Equal(t, "Week 1", folders[len(folders)-1].Title)
}

func TestCreateSubfolderAndItemScenario(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, c1, "Intro")
	require.NoError(t, err)
	sub, err := svc.CreateSubfolder(ctx, c1, models.IntID(1), "Lecture 1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "2", sub.ID.String())

	snap := svc.Cache(c1).Snapshot()
	parent, ok := snap.FolderOf(models.IntID(2))
	require.True(t, ok)
	assert.Equal(t, "1", parent.String())
	lecture, ok := snap.Subfolder(models.IntID(2))
	require.True(t, ok)
	assert.Equal(t, "Lecture 1", lecture.Title)
	assert.Empty(t, lecture.Items)

	item, err := svc.CreateItem(ctx, ItemTarget{CourseID: c1, SubfolderID: models.IntID(2)},
		VideoInput{Title: "Intro video", URLLink: "https://x"})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 1, mock.Calls(http.MethodPost, api.RouteAddVideo))

	lecture, _ = svc.Cache(c1).Snapshot().Subfolder(models.IntID(2))
	require.Len(t, lecture.Items, 1)
	assert.Equal(t, models.ItemVideo, lecture.Items[0].Type)
	assert.True(t, lecture.Items[0].ID.Equal(item.ID))

	detail, err := svc.ItemDetail(ctx, lecture.Items[0])
	require.NoError(t, err)
	assert.Equal(t, "Intro video", detail.Title())
	assert.Equal(t, "https://x", detail.URL())
}

func TestCreateItemUnresolvedFolderSendsNothing(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()
	_, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)
	mock.ResetCalls()

	_, err = svc.CreateItem(ctx, ItemTarget{CourseID: c1, SubfolderID: models.IntID(99)},
		BookInput{Title: "SICP"})
	assert.ErrorIs(t, err, ErrUnresolvedFolder)
	assert.Equal(t, "could not resolve folder path", err.Error())
	assert.Equal(t, 0, mock.TotalCalls())
}

func TestLoadTreeFailsSoft(t *testing.T) {
	svc, mock := newEnv(t, "student")
	mock.FailNext(http.MethodGet, api.RouteCourseTree, http.StatusInternalServerError)

	var snap interface{ Empty() bool }
	assert.NotPanics(t, func() {
		s, err := svc.LoadTree(context.Background(), c1)
		assert.Error(t, err)
		snap = s
	})
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())
}

func TestLoadTreeFailureKeepsPreviousTree(t *testing.T) {
	svc, mock := newEnv(t, "student")
	ctx := context.Background()
	_, _ = mock.AddFolder("C1", "Intro")

	first, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)
	mock.FailNext(http.MethodGet, api.RouteCourseTree, http.StatusServiceUnavailable)
	second, err := svc.LoadTree(ctx, c1)
	assert.Error(t, err)
	assert.Same(t, first, second)
}

func TestDeassignIsBusyGated(t *testing.T) {
	svc, mock := newEnv(t, "admin")
	ctx := context.Background()
	require.NoError(t, mock.AddInstructor("C1", models.Instructor{ID: models.IntID(3), Name: "Ada"}))

	release := mock.Hold(http.MethodDelete, api.RouteInstructor)
	done := make(chan error, 1)
	go func() { done <- svc.DeassignInstructor(ctx, c1, models.IntID(3)) }()

	require.Eventually(t, func() bool {
		return mock.Calls(http.MethodDelete, api.RouteInstructor) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, svc.Gate().Busy(DeassignKey(c1, models.IntID(3))))

	err := svc.DeassignInstructor(ctx, c1, models.IntID(3))
	assert.ErrorIs(t, err, ErrBusy)

	release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, mock.Calls(http.MethodDelete, api.RouteInstructor))
	assert.False(t, svc.Gate().Busy(DeassignKey(c1, models.IntID(3))))
}

func TestBlankSubfolderTitleSendsNothing(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()
	_, _ = mock.AddFolder("C1", "Intro")
	before, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)
	mock.ResetCalls()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateSubfolder(ctx, c1, models.IntID(1), title)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.ErrorIs(t, err, ErrInvalidInput)
		fe, ok := ve.Field("title")
		require.True(t, ok)
		assert.Equal(t, "title cannot be blank", fe.Message)
	}
	assert.Equal(t, 0, mock.TotalCalls())
	assert.Same(t, before, svc.Cache(c1).Snapshot())
}

func TestItemInputValidation(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()
	target := ItemTarget{CourseID: c1, FolderID: models.IntID(1), SubfolderID: models.IntID(2)}

	tests := []struct {
		name  string
		in    ItemInput
		field string
	}{
		{"video without link", VideoInput{Title: "v"}, "url_link"},
		{"video blank link", VideoInput{Title: "v", URLLink: "  "}, "url_link"},
		{"notes blank title", NotesInput{Title: " ", URLLink: "https://x"}, "title"},
		{"book blank title", BookInput{}, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, target, tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			_, ok := ve.Field(tt.field)
			assert.True(t, ok, ve.Error())
		})
	}
	assert.Equal(t, 0, mock.TotalCalls())

	// Links are passed through as typed; only blank ones are rejected.
	folder, err := mock.AddFolder("C1", "Intro")
	require.NoError(t, err)
	sub, err := mock.AddSubfolder("C1", folder, "Lecture 1")
	require.NoError(t, err)
	target = ItemTarget{CourseID: c1, FolderID: models.IntID(folder), SubfolderID: models.IntID(sub)}
	created, err := svc.CreateItem(ctx, target, VideoInput{Title: "Short link", URLLink: "youtu.be/x"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 1, mock.Calls(http.MethodPost, api.RouteAddVideo))
}

func TestMutationWithoutSessionSendsNothing(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	require.NoError(t, svc.Logout())

	_, err := svc.CreateFolder(context.Background(), c1, "Intro")
	assert.ErrorIs(t, err, api.ErrAuthMissing)
	err = svc.DeassignInstructor(context.Background(), c1, models.IntID(1))
	assert.ErrorIs(t, err, api.ErrAuthMissing)
	assert.Equal(t, 0, mock.TotalCalls())
}

func TestRejectedMutationDoesNotRefresh(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	ctx := context.Background()
	before, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)
	mock.FailNext(http.MethodPost, api.RouteAddFolder, http.StatusBadRequest)

	_, err = svc.CreateFolder(ctx, c1, "Intro")
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "injected failure", UserMessage(err))
	assert.Equal(t, 1, mock.Calls(http.MethodGet, api.RouteCourseTree))
	assert.Same(t, before, svc.Cache(c1).Snapshot())
}

func TestSubfolderContentsKeepsFailedItems(t *testing.T) {
	svc, mock := newEnv(t, "student")
	ctx := context.Background()
	folder, _ := mock.AddFolder("C1", "Intro")
	sub, _ := mock.AddSubfolder("C1", folder, "Lecture 1")
	video, _ := mock.AddItem("C1", folder, sub, models.ItemVideo, map[string]interface{}{"title": "V", "url_link": "https://v"})
	_, _ = mock.AddItem("C1", folder, sub, models.ItemBook, map[string]interface{}{"title": "B"})
	_, _ = mock.AddItem("C1", folder, sub, models.ItemAssignment, map[string]interface{}{"title": "HW", "assignment_id": "A1"})
	_, err := svc.LoadTree(ctx, c1)
	require.NoError(t, err)

	// Detail requests run concurrently, so exactly one of them fails but
	// which one is not fixed.
	mock.FailNext(http.MethodGet, api.RouteContentDetail, http.StatusInternalServerError)
	items, err := svc.SubfolderContents(ctx, c1, models.ID{}, models.IntID(sub))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.True(t, items[0].ID.Equal(models.IntID(video)))
	assert.Equal(t, models.ItemVideo, items[0].Type)
	assert.Equal(t, models.ItemBook, items[1].Type)
	assert.Equal(t, models.ItemAssignment, items[2].Type)

	unresolved := 0
	for _, it := range items {
		if !it.Resolved() {
			unresolved++
		}
	}
	assert.Equal(t, 1, unresolved)
}

func TestSubmitAssignment(t *testing.T) {
	svc, mock := newEnv(t, "student")
	ctx := context.Background()

	err := svc.SubmitAssignment(ctx, c1, "A1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, mock.TotalCalls())

	require.NoError(t, svc.SubmitAssignment(ctx, c1, "A1", "https://github.com/me/hw1"))
	subs := mock.Submissions("C1")
	require.Len(t, subs, 1)
	assert.Equal(t, "A1", subs[0].AssignmentID)
	assert.Equal(t, 0, mock.Calls(http.MethodGet, api.RouteCourseTree))
}

func TestEvaluation(t *testing.T) {
	svc, mock := newEnv(t, "student")
	_, err := svc.Evaluation(context.Background(), c1)
	assert.True(t, api.IsStatus(err, http.StatusNotFound))

	require.NoError(t, mock.SetEvaluation("C1", 1, models.Evaluation{Marks: 91, Grade: "A"}))
	eval, err := svc.Evaluation(context.Background(), c1)
	require.NoError(t, err)
	assert.Equal(t, "A", eval.Grade)
}

func TestNoCourse(t *testing.T) {
	svc, mock := newEnv(t, "instructor")
	_, err := svc.CreateFolder(context.Background(), models.ID{}, "x")
	assert.ErrorIs(t, err, ErrNoCourse)
	_, err = svc.LoadTree(context.Background(), models.ID{})
	assert.ErrorIs(t, err, ErrNoCourse)
	assert.Equal(t, 0, mock.TotalCalls())
}

func TestGateKeysAreIndependent(t *testing.T) {
	g := NewGate()
	releaseA, err := g.Acquire(Key("deassign", "C1", "1"))
	require.NoError(t, err)
	releaseB, err := g.Acquire(Key("deassign", "C1", "2"))
	require.NoError(t, err)

	_, err = g.Acquire(Key("deassign", "C1", "1"))
	assert.ErrorIs(t, err, ErrBusy)

	releaseA()
	releaseA()
	_, err = g.Acquire(Key("deassign", "C1", "1"))
	assert.NoError(t, err)
	releaseB()
	assert.False(t, g.Busy(Key("deassign", "C1", "2")))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&api.StatusError{Code: 400, Message: "Folder exists"}, "Folder exists"},
		{&api.StatusError{Code: 502}, "request failed: 502 Bad Gateway"},
		{&api.TransportError{Err: errors.New("dial tcp: refused")}, "network error: could not reach the server"},
		{ErrUnresolvedFolder, "could not resolve folder path"},
		{&ValidationError{Fields: []FieldError{{Field: "title", Message: "title cannot be blank"}}}, "invalid input: title cannot be blank"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err))
	}
}
