package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Siddaarth-Babu/mooc/internal/mockapi"
	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
)

func newTestService(t *testing.T, email string) (*service.Service, *mockapi.Server) {
	t.Helper()
	mock := mockapi.New()
	require.NoError(t, mock.Seed())
	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)

	sessions, err := session.NewManager(nil)
	require.NoError(t, err)
	client, err := api.New(api.Options{BaseURL: srv.URL, Tokens: sessions, RetryMax: 1, Timeout: 5 * time.Second})
	require.NoError(t, err)

	svc := service.New(service.Config{Course: "C1"}, client, sessions, nil)
	if email != "" {
		_, err = svc.Login(context.Background(), email, "password")
		require.NoError(t, err)
	}
	return svc, mock
}

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)
	c.SilenceUsage = true
	c.SilenceErrors = true
	err := c.Execute()
	return out.String(), err
}

func TestTreeCmd(t *testing.T) {
	svc, _ := newTestService(t, "instructor@example.com")

	out, err := run(t, NewTreeCmd(&svc))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"▾ Intro [1]",
		"  ▾ Lecture 1 [2]",
		"    • Video #1",
		"    • Notes #2",
		"    • Book #3",
		"    • Assignment #4",
		"  ▾ Lecture 2 [3]",
		"▾ Week 2 [4]",
		"",
	}, "\n"), out)

	out, err = run(t, NewTreeCmd(&svc), "--collapsed")
	require.NoError(t, err)
	assert.Equal(t, "▸ Intro [1]\n▸ Week 2 [4]\n", out)
}

func TestTreeCmdStructured(t *testing.T) {
	svc, _ := newTestService(t, "")

	out, err := run(t, NewTreeCmd(&svc), "--json")
	require.NoError(t, err)
	var folders []models.Folder
	require.NoError(t, json.Unmarshal([]byte(out), &folders))
	require.Len(t, folders, 2)
	assert.Equal(t, "Intro", folders[0].Title)

	out, err = run(t, NewTreeCmd(&svc), "--yaml")
	require.NoError(t, err)
	var raw []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "Week 2", raw[1]["title"])
}

func TestFolderAndSubfolderAdd(t *testing.T) {
	svc, _ := newTestService(t, "instructor@example.com")

	out, err := run(t, NewFolderCmd(&svc), "add", "Week 3")
	require.NoError(t, err)
	assert.Equal(t, "Created folder \"Week 3\" [5]\n", out)

	out, err = run(t, NewSubfolderCmd(&svc), "add", "5", "Lab")
	require.NoError(t, err)
	assert.Contains(t, out, `"Lab"`)

	snap := svc.Cache(models.NewID("C1")).Snapshot()
	assert.Equal(t, 3, snap.Counts().Folders)
}

func TestItemAddResolvesFolder(t *testing.T) {
	svc, mock := newTestService(t, "instructor@example.com")

	_, err := run(t, NewItemCmd(&svc), "add", "video", "2",
		"--title", "Recap", "--url", "https://example.com/recap.mp4", "--duration", "60")
	require.NoError(t, err)

	sub, ok := svc.Cache(models.NewID("C1")).Snapshot().Subfolder(models.NewID("2"))
	require.True(t, ok)
	assert.Len(t, sub.Items, 5)

	mock.ResetCalls()
	_, err = run(t, NewItemCmd(&svc), "add", "book", "999", "--title", "Lost")
	assert.ErrorIs(t, err, service.ErrUnresolvedFolder)
	assert.Equal(t, 1, mock.TotalCalls(), "only the tree load")

	_, err = run(t, NewItemCmd(&svc), "add", "assignment", "2", "--title", "HW")
	assert.Error(t, err)
}

func TestOpenAndShow(t *testing.T) {
	svc, _ := newTestService(t, "student@example.com")

	out, err := run(t, NewOpenCmd(&svc), "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Intro video")
	assert.Contains(t, out, "https://example.com/notes.pdf")
	assert.Contains(t, out, "mooc submit A1")

	out, err = run(t, NewOpenCmd(&svc), "3")
	require.NoError(t, err)
	assert.Equal(t, "No content yet\n", out)

	out, err = run(t, NewItemCmd(&svc), "show", "textbook", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Publisher: MIT Press")
}

func TestSubmitAndEvaluation(t *testing.T) {
	svc, mock := newTestService(t, "student@example.com")

	out, err := run(t, NewSubmitCmd(&svc), "A1", "https://github.com/me/hw1")
	require.NoError(t, err)
	assert.Equal(t, "Submitted assignment A1\n", out)
	assert.Len(t, mock.Submissions("C1"), 1)

	out, err = run(t, NewEvaluationCmd(&svc))
	require.NoError(t, err)
	assert.Equal(t, "Marks: 87.5  Grade: A\n", out)
}

func TestInstructorCmd(t *testing.T) {
	svc, _ := newTestService(t, "admin@example.com")

	out, err := run(t, NewInstructorCmd(&svc), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Alan Turing")

	_, err = run(t, NewInstructorCmd(&svc), "deassign", "5")
	require.NoError(t, err)

	out, err = run(t, NewInstructorCmd(&svc), "list", "--json")
	require.NoError(t, err)
	var instructors []models.Instructor
	require.NoError(t, json.Unmarshal([]byte(out), &instructors))
	require.Len(t, instructors, 1)
	assert.Equal(t, "1", instructors[0].ID.String())
}

func TestCommandsNeedCourse(t *testing.T) {
	svc, _ := newTestService(t, "instructor@example.com")
	svc.Config.Course = ""

	_, err := run(t, NewFolderCmd(&svc), "add", "X")
	assert.ErrorIs(t, err, service.ErrNoCourse)
}

func TestWhoami(t *testing.T) {
	svc, _ := newTestService(t, "")
	out, err := run(t, NewWhoamiCmd(&svc))
	require.NoError(t, err)
	assert.Equal(t, "Not logged in\n", out)

	_, err = svc.Login(context.Background(), "analyst@example.com", "password")
	require.NoError(t, err)
	out, err = run(t, NewWhoamiCmd(&svc))
	require.NoError(t, err)
	assert.Contains(t, out, "Role:    analyst")
}

func TestLoginCmdPromptsForPassword(t *testing.T) {
	svc, _ := newTestService(t, "")
	c := NewLoginCmd(&svc)
	c.SetIn(strings.NewReader("password\n"))

	out, err := run(t, c, "--email", "student@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as student@example.com (student)\n", out)
	assert.Equal(t, session.RoleStudent, svc.Role())
}
