package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/user"
	"github.com/peerclass/peerclass/core/workspace"
	inmemdb "github.com/peerclass/peerclass/storage/inmem"
	testutil "github.com/peerclass/peerclass/tests"
)

const testPassword = "s3cret"

var errBadCredentials = errors.New("authentication failed")

type fakeClient struct {
	db *inmemdb.DB
}

func (c *fakeClient) Login(ctx context.Context, username, password string) (user.User, error) {
	if password != testPassword {
		return user.User{}, errBadCredentials
	}
	users, err := c.db.Repositories().Users.QueryAllUsers(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if usr.Username == username && usr.IsActive {
			return usr, nil
		}
	}
	return user.User{}, errBadCredentials
}

func (c *fakeClient) Repositories() workspace.Repositories { return c.db.Repositories() }

type testCLI struct {
	cli     *commandLine
	out     *bytes.Buffer
	db      *inmemdb.DB
	teacher user.User
	student user.User
	taskID  int
}

func setup(t *testing.T) *testCLI {
	db := testutil.PrepareDB()
	teacher := testutil.CreateUser(db, "Jane Doe", user.RoleTeacher, true)
	student := testutil.CreateUser(db, "Awe Mfoka", user.RoleStudent, true)
	cat := testutil.CreateCategory(db, "Science")
	crs := testutil.CreateCourse(db, "Algebra", cat.ID, teacher.ID, true)
	tsk := testutil.CreateTask(db, "Linear equations", crs.ID, true)
	testutil.CreateEnrollment(db, student.ID, crs.ID, teacher.ID, true)

	out := new(bytes.Buffer)
	cli := newCommandLine(&core.Config{TestMode: true}, out)
	cli.newClient = func() platformClient { return &fakeClient{db: db} }

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(testPassword), nil }

	return &testCLI{cli: cli, out: out, db: db, teacher: teacher, student: student, taskID: tsk.ID}
}

func TestCommandLine_help(t *testing.T) {
	fix := setup(t)

	tests := []struct {
		name string
		args []string
		pwd  string
	}{
		{name: "no command", args: []string{}},
		{name: "unknown command", args: []string{"lol"}},
		{name: "tasks without username", args: []string{"tasks"}},
		{name: "tasks with bad status", args: []string{"tasks", "-username", "awe", "-status", "studying"}},
		{name: "complete without task", args: []string{"complete", "-username", "awe"}},
		{name: "approve without completion", args: []string{"approve", "-username", "jane"}},
		{name: "empty password", args: []string{"tasks", "-username", "awe"}, pwd: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pwd == "empty" {
				readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }
				defer func() { readPasswordFunc = func(fd int) ([]byte, error) { return []byte(testPassword), nil } }()
			}
			args := append([]string{"board"}, tt.args...)
			if err := fix.cli.run(args); err != errHelp {
				t.Errorf("cli.run() error = %v, want errHelp", err)
			}
		})
	}
}

func TestCommandLine_badCredentials(t *testing.T) {
	fix := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("nope"), nil }

	if err := fix.cli.run([]string{"board", "tasks", "-username", "awe"}); err != errBadCredentials {
		t.Errorf("cli.run() error = %v, want bad credentials", err)
	}
}

func TestCommandLine_tasks(t *testing.T) {
	fix := setup(t)

	if err := fix.cli.run([]string{"board", "tasks", "-username", "awe"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	got := fix.out.String()
	for _, want := range []string{"Linear equations", "Algebra", "notStarted", "Jane Doe"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCommandLine_completionFlow(t *testing.T) {
	fix := setup(t)

	// student submits
	if err := fix.cli.run([]string{"board", "complete", "-username", "awe", "-task", strconv.Itoa(fix.taskID)}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// teacher reviews
	fix.out.Reset()
	if err := fix.cli.run([]string{"board", "reviews", "-username", "jane"}); err != nil {
		t.Fatalf("reviews: %v", err)
	}
	if got := fix.out.String(); !strings.Contains(got, "Awe Mfoka") {
		t.Fatalf("reviews output missing the student:\n%s", got)
	}

	// teacher approves
	completions, err := fix.db.Repositories().Completions.QueryAllTaskCompletions(context.Background())
	if err != nil || len(completions) != 1 {
		t.Fatalf("completions = %v, %v", completions, err)
	}
	if err := fix.cli.run([]string{"board", "approve", "-username", "jane", "-completion", strconv.Itoa(completions[0].ID)}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// progress shows one of one done
	fix.out.Reset()
	if err := fix.cli.run([]string{"board", "progress", "-username", "awe"}); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if got := fix.out.String(); !strings.Contains(got, "Algebra") {
		t.Errorf("progress output missing the course:\n%s", got)
	}

	fix.out.Reset()
	if err := fix.cli.run([]string{"board", "tasks", "-username", "awe", "-status", "completed"}); err != nil {
		t.Fatalf("tasks -status completed: %v", err)
	}
	if got := fix.out.String(); !strings.Contains(got, "Linear equations") {
		t.Errorf("completed tasks output missing the task:\n%s", got)
	}
}

func TestCommandLine_courses(t *testing.T) {
	fix := setup(t)

	if err := fix.cli.run([]string{"board", "courses", "-username", "awe", "-search", "algbra"}); err != nil {
		t.Fatalf("courses: %v", err)
	}
	if got := fix.out.String(); !strings.Contains(got, "Algebra") {
		t.Errorf("courses output missing the match:\n%s", got)
	}
}
