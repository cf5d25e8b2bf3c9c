package cli

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestApp(t)

	out := env.mustRun(t, "register", "alice", "--password", "secret-alice")
	assert.Equal(t, "Registered alice (user id 1)\n", out)

	out = env.mustRun(t, "login", "alice", "--password", "secret-alice")
	assert.Equal(t, "Login successful. User id: 1\n", out)

	_, err := env.run("login", "alice", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "failed to log in: invalid credentials", err.Error())

	_, err = env.run("register", "alice", "--password", "another")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register: user already exists: alice")
}

func TestLogin_PasswordFromEnvironment(t *testing.T) {
	env := setupTestApp(t)
	t.Setenv(EnvPassword, "from-env")

	env.mustRun(t, "register", "bob")
	out := env.mustRun(t, "login", "bob")
	assert.Contains(t, out, "User id: 1")
}

func TestRegister_RequiresUsernameArgument(t *testing.T) {
	env := setupTestApp(t)

	_, err := env.run("register")
	assert.Error(t, err)
}

func TestTasks_AddAndList(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)

	out := env.mustRun(t, "tasks", "add", "--user", "1", "--title", "SQL joins")
	assert.Equal(t, "Created task 2: SQL joins [low]\n", out)

	out = env.mustRun(t, "tasks", "list", "--user", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "SUBTOPICS")
	// newest first
	assert.Contains(t, lines[2], "SQL joins")
	assert.Contains(t, lines[3], "Go generics")
	assert.Contains(t, lines[3], "high")
	assert.Contains(t, lines[3], "todo")
	assert.Contains(t, lines[3], "0/0")
	assert.Contains(t, lines[3], "0m")

	out = env.mustRun(t, "tasks", "list", "--user", "1", "--category", "go")
	assert.Contains(t, out, "Go generics")
	assert.NotContains(t, out, "SQL joins")

	out = env.mustRun(t, "tasks", "list", "--user", "1", "--category", "rust")
	assert.Equal(t, "No tasks found\n", out)
}

func TestTasks_UserFlagRequired(t *testing.T) {
	env := setupTestApp(t)

	for _, args := range [][]string{
		{"tasks", "list"},
		{"tasks", "add", "--title", "x"},
		{"sessions", "current"},
		{"timeline"},
		{"stats"},
	} {
		_, err := env.run(args...)
		require.Error(t, err, "lt %v", args)
		assert.Contains(t, err.Error(), "--user is required", "lt %v", args)
	}
}

func TestTasks_AddValidation(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)

	_, err := env.run("tasks", "add", "--user", "1", "--title", "   ")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to create task: "))

	_, err = env.run("tasks", "add", "--user", "1", "--title", "x", "--priority", "7")
	require.Error(t, err)

	_, err = env.run("tasks", "add", "--user", "99", "--title", "orphan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTasks_Lifecycle(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)

	out := env.mustRun(t, "tasks", "start", "1")
	assert.True(t, strings.HasPrefix(out, "Started task 1: Go generics (since "))

	out = env.mustRun(t, "tasks", "list", "--user", "1")
	assert.Contains(t, out, "active")

	out = env.mustRun(t, "tasks", "complete", "1")
	assert.Equal(t, "Completed task 1: Go generics\n", out)

	out = env.mustRun(t, "tasks", "list", "--user", "1")
	assert.Contains(t, out, "done")
}

func TestTasks_InvalidID(t *testing.T) {
	env := setupTestApp(t)

	for _, args := range [][]string{
		{"tasks", "show", "abc"},
		{"tasks", "start", "0"},
		{"tasks", "complete", "1.5"},
	} {
		_, err := env.run(args...)
		require.Error(t, err)
		assert.Equal(t, "invalid input for task id: must be a positive integer", err.Error())
	}

	_, err := env.run("tasks", "show", "42")
	require.Error(t, err)
	assert.Equal(t, "failed to show task: task not found: 42", err.Error())
}

func TestTasks_Delete(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)
	env.mustRun(t, "subtopics", "add", "1", "--title", "Type sets")

	out, err := env.run("tasks", "delete", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Equal(t, "Task 1 (Go generics) has 1 subtopic(s) and 0 session(s).\n", out)

	out = env.mustRun(t, "tasks", "delete", "1", "--yes")
	assert.Equal(t, "Deleted task 1: Go generics\n", out)

	_, err = env.run("tasks", "show", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubtopics(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)

	out := env.mustRun(t, "subtopics", "list", "1")
	assert.Equal(t, "No subtopics\n", out)

	out = env.mustRun(t, "subtopics", "add", "1", "--title", "Constraints", "--order", "2")
	assert.Equal(t, "Added subtopic 1 to task 1: Constraints\n", out)
	env.mustRun(t, "subtopics", "add", "1", "--title", "Type sets", "--order", "1")

	out = env.mustRun(t, "subtopics", "list", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Type sets")
	assert.Contains(t, lines[3], "Constraints")

	out = env.mustRun(t, "subtopics", "done", "2")
	assert.Equal(t, "Subtopic 2 (Type sets) marked done\n", out)

	out = env.mustRun(t, "tasks", "show", "1")
	assert.Contains(t, out, "50% (1/2 subtopics)")

	out = env.mustRun(t, "subtopics", "done", "2", "--undo")
	assert.Equal(t, "Subtopic 2 (Type sets) marked not done\n", out)

	_, err := env.run("subtopics", "add", "7", "--title", "nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add subtopic")

	_, err = env.run("subtopics", "done", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtopic id")
}

func TestSessions_StartEndCurrent(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)

	out := env.mustRun(t, "sessions", "current", "--user", "1")
	assert.Equal(t, "No open sessions\n", out)

	out = env.mustRun(t, "sessions", "start", "1")
	assert.True(t, strings.HasPrefix(out, "Started session 1 on task 1 at "))

	_, err := env.run("sessions", "start", "1")
	require.Error(t, err)
	assert.Equal(t, "failed to start session: task 1: session 1 is still open", err.Error())

	env.advance(45 * time.Minute)

	out = env.mustRun(t, "sessions", "current", "--user", "1")
	assert.Contains(t, out, "Go generics")
	assert.Contains(t, out, "running for 45m")

	out = env.mustRun(t, "sessions", "end", "1", "--notes", "read the proposal", "--studied", "type sets")
	assert.Equal(t, "Ended session 1 after 45m\n", out)

	_, err = env.run("sessions", "end", "1")
	require.Error(t, err)
	assert.Equal(t, "failed to end session: session 1: already ended", err.Error())

	out = env.mustRun(t, "sessions", "current", "--user", "1")
	assert.Equal(t, "No open sessions\n", out)

	out = env.mustRun(t, "tasks", "show", "1")
	assert.Contains(t, out, "45m over 1 session(s)")
	assert.Contains(t, out, "read the proposal")
}

func TestTasksShow_OpenSession(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)
	env.mustRun(t, "sessions", "start", "1")
	env.advance(90 * time.Minute)

	out := env.mustRun(t, "tasks", "show", "1")
	assert.True(t, strings.HasPrefix(out, "#1 Go generics\n"))
	assert.Contains(t, out, "category: go  priority: high  status: todo")
	assert.Contains(t, out, "session 1 open, running for 1h 30m")
	assert.Contains(t, out, "0% (0/0 subtopics)")
}

func TestTimeline(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)

	out := env.mustRun(t, "timeline", "--user", "1")
	assert.Equal(t, "No sessions yet\n", out)

	env.mustRun(t, "sessions", "start", "1")
	env.advance(30 * time.Minute)
	env.mustRun(t, "sessions", "end", "1", "--studied", "type sets")
	env.advance(time.Hour)
	env.mustRun(t, "sessions", "start", "1")

	out = env.mustRun(t, "timeline", "--user", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "STARTED")
	assert.Contains(t, lines[2], "running for 0m")
	assert.Contains(t, lines[3], "30m")
	assert.Contains(t, lines[3], "type sets")

	out = env.mustRun(t, "timeline", "--user", "1", "--format", "csv")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "session_id", records[0][0])
	assert.Equal(t, []string{"2", "1", "Go generics", "go", "2024-03-04T11:30:00Z", "", "", "", ""}, records[1])
	assert.Equal(t, []string{"1", "1", "Go generics", "go", "2024-03-04T10:00:00Z", "2024-03-04T10:30:00Z", "30", "type sets", ""}, records[2])

	_, err = env.run("timeline", "--user", "1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestStats(t *testing.T) {
	env := setupTestApp(t)
	env.seedTask(t)
	env.mustRun(t, "tasks", "add", "--user", "1", "--title", "Essay")
	env.mustRun(t, "tasks", "start", "1")
	env.mustRun(t, "sessions", "start", "1")
	env.advance(20 * time.Minute)
	env.mustRun(t, "sessions", "end", "1")
	env.mustRun(t, "tasks", "complete", "2")

	out := env.mustRun(t, "stats", "--user", "1")
	assert.Contains(t, out, "tasks: 2 (1 completed, 1 in progress)")
	assert.Contains(t, out, "studied: 20m over 1 session(s)")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "go")
}

func TestVersion(t *testing.T) {
	env := setupTestApp(t)

	out := env.mustRun(t, "version")
	assert.Equal(t, "lt dev\n", out)
}
