// Package repositorytest holds the behaviour every repository backend must
// share. Backends call RunContract from their own tests.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
)

// Factory returns a fresh, empty repository. Cleanup is the factory's job.
type Factory func(t *testing.T) repository.Repository

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// RunContract runs the shared repository suite against newRepo
func RunContract(t *testing.T, newRepo Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newRepo(t)) })
	t.Run("Tasks", func(t *testing.T) { testTasks(t, newRepo(t)) })
	t.Run("TaskOrdering", func(t *testing.T) { testTaskOrdering(t, newRepo(t)) })
	t.Run("Subtopics", func(t *testing.T) { testSubtopics(t, newRepo(t)) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, newRepo(t)) })
	t.Run("OneOpenSessionPerTask", func(t *testing.T) { testOneOpenSessionPerTask(t, newRepo(t)) })
	t.Run("DeleteTaskCascades", func(t *testing.T) { testDeleteTaskCascades(t, newRepo(t)) })
	t.Run("Timeline", func(t *testing.T) { testTimeline(t, newRepo(t)) })
	t.Run("TimelineSessionColumns", func(t *testing.T) { testTimelineSessionColumns(t, newRepo(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newRepo(t)) })
}

// SeedUser inserts a user with a placeholder hash
func SeedUser(t *testing.T, repo repository.Repository, username string) *repository.User {
	t.Helper()
	user := &repository.User{Username: username, PasswordHash: "hash:" + username, CreatedAt: base}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// SeedTask inserts an incomplete task for userID created at the given offset from a fixed base time
func SeedTask(t *testing.T, repo repository.Repository, userID int64, title string, offset time.Duration) *repository.Task {
	t.Helper()
	task := &repository.Task{
		UserID:    userID,
		Title:     title,
		CreatedAt: base.Add(offset),
		Priority:  1,
	}
	require.NoError(t, repo.CreateTask(context.Background(), task))
	return task
}

func testUsers(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	user := SeedUser(t, repo, "alice")
	assert.Greater(t, user.ID, int64(0))

	byID, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "hash:alice", byID.PasswordHash)
	assert.True(t, base.Equal(byID.CreatedAt))

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	// Lookups are exact
	_, err = repo.GetUserByUsername(ctx, "Alice")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	dup := &repository.User{Username: "alice", PasswordHash: "other", CreatedAt: base}
	err = repo.CreateUser(ctx, dup)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict), "got %v", err)
}

func testTasks(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	user := SeedUser(t, repo, "alice")

	task := SeedTask(t, repo, user.ID, "Learn Go", 0)
	assert.Greater(t, task.ID, int64(0))

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", got.Title)
	assert.Equal(t, user.ID, got.UserID)
	assert.False(t, got.IsCompleted)
	assert.Nil(t, got.StartedAt)
	assert.Nil(t, got.CompletedAt)

	started := base.Add(time.Hour)
	completed := base.Add(2 * time.Hour)
	got.Description = "concurrency first"
	got.Category = "languages"
	got.Priority = 3
	got.StartedAt = &started
	got.CompletedAt = &completed
	got.IsCompleted = true
	require.NoError(t, repo.UpdateTask(ctx, got))

	updated, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "concurrency first", updated.Description)
	assert.Equal(t, "languages", updated.Category)
	assert.Equal(t, 3, updated.Priority)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.StartedAt)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, started.Equal(*updated.StartedAt))
	assert.True(t, completed.Equal(*updated.CompletedAt))

	// Clearing a nullable column round-trips as nil
	updated.CompletedAt = nil
	updated.IsCompleted = false
	require.NoError(t, repo.UpdateTask(ctx, updated))
	cleared, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.CompletedAt)
}

func testTaskOrdering(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	alice := SeedUser(t, repo, "alice")
	bob := SeedUser(t, repo, "bob")

	SeedTask(t, repo, alice.ID, "oldest", 0)
	SeedTask(t, repo, alice.ID, "newest", 2*time.Hour)
	SeedTask(t, repo, alice.ID, "middle", time.Hour)
	SeedTask(t, repo, bob.ID, "bob's", 3*time.Hour)

	tasks, err := repo.ListTasksByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "newest", tasks[0].Title)
	assert.Equal(t, "middle", tasks[1].Title)
	assert.Equal(t, "oldest", tasks[2].Title)

	none, err := repo.ListTasksByUser(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testSubtopics(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	user := SeedUser(t, repo, "alice")
	task := SeedTask(t, repo, user.ID, "Learn Go", 0)

	for i, title := range []string{"Channels", "Goroutines", "Select"} {
		order := []int{2, 1, 2}[i]
		st := &repository.Subtopic{TaskID: task.ID, Title: title, CreatedAt: base, Order: order}
		require.NoError(t, repo.CreateSubtopic(ctx, st))
		assert.Greater(t, st.ID, int64(0))
	}

	subtopics, err := repo.ListSubtopicsByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, subtopics, 3)
	assert.Equal(t, "Goroutines", subtopics[0].Title)
	assert.Equal(t, "Channels", subtopics[1].Title)
	assert.Equal(t, "Select", subtopics[2].Title)

	first := subtopics[0]
	done := base.Add(time.Hour)
	first.IsCompleted = true
	first.CompletedAt = &done
	require.NoError(t, repo.UpdateSubtopic(ctx, first))

	got, err := repo.GetSubtopic(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))

	require.NoError(t, repo.DeleteSubtopic(ctx, first.ID))
	_, err = repo.GetSubtopic(ctx, first.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func testSessions(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	user := SeedUser(t, repo, "alice")
	task := SeedTask(t, repo, user.ID, "Learn Go", 0)

	firstEnd := base.Add(2 * time.Hour)
	early := &repository.Session{TaskID: task.ID, StartedAt: base.Add(time.Hour), EndedAt: &firstEnd, DurationMinutes: 60}
	late := &repository.Session{TaskID: task.ID, StartedAt: base.Add(3 * time.Hour)}
	require.NoError(t, repo.CreateSession(ctx, early))
	require.NoError(t, repo.CreateSession(ctx, late))

	sessions, err := repo.ListSessionsByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, late.ID, sessions[0].ID)
	assert.Equal(t, early.ID, sessions[1].ID)
	assert.Nil(t, sessions[0].EndedAt)

	ended := early.StartedAt.Add(45 * time.Minute)
	early.EndedAt = &ended
	early.DurationMinutes = 45
	early.Notes = "read the proposal"
	early.SubtopicsStudied = "Channels, Select"
	early.SubtopicsStudiedAt = &ended
	require.NoError(t, repo.UpdateSession(ctx, early))

	got, err := repo.GetSession(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, "read the proposal", got.Notes)
	assert.Equal(t, "Channels, Select", got.SubtopicsStudied)
	require.NotNil(t, got.EndedAt)
	assert.True(t, ended.Equal(*got.EndedAt))

	require.NoError(t, repo.DeleteSession(ctx, late.ID))
	sessions, err = repo.ListSessionsByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func testOneOpenSessionPerTask(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	user := SeedUser(t, repo, "alice")
	task := SeedTask(t, repo, user.ID, "Learn Go", 0)
	other := SeedTask(t, repo, user.ID, "Learn SQL", time.Minute)

	open := &repository.Session{TaskID: task.ID, StartedAt: base}
	require.NoError(t, repo.CreateSession(ctx, open))

	err := repo.CreateSession(ctx, &repository.Session{TaskID: task.ID, StartedAt: base.Add(time.Minute)})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidState))

	require.NoError(t, repo.CreateSession(ctx, &repository.Session{TaskID: other.ID, StartedAt: base}))

	ended := base.Add(30 * time.Minute)
	open.EndedAt = &ended
	open.DurationMinutes = 30
	require.NoError(t, repo.UpdateSession(ctx, open))

	next := &repository.Session{TaskID: task.ID, StartedAt: base.Add(time.Hour)}
	require.NoError(t, repo.CreateSession(ctx, next))

	sessions, err := repo.ListSessionsByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func testDeleteTaskCascades(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	user := SeedUser(t, repo, "alice")
	doomed := SeedTask(t, repo, user.ID, "doomed", 0)
	kept := SeedTask(t, repo, user.ID, "kept", time.Minute)

	st := &repository.Subtopic{TaskID: doomed.ID, Title: "child", CreatedAt: base}
	require.NoError(t, repo.CreateSubtopic(ctx, st))
	session := &repository.Session{TaskID: doomed.ID, StartedAt: base}
	require.NoError(t, repo.CreateSession(ctx, session))
	keptSession := &repository.Session{TaskID: kept.ID, StartedAt: base}
	require.NoError(t, repo.CreateSession(ctx, keptSession))

	require.NoError(t, repo.DeleteTask(ctx, doomed.ID))

	_, err := repo.GetTask(ctx, doomed.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = repo.GetSubtopic(ctx, st.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = repo.GetSession(ctx, session.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = repo.GetSession(ctx, keptSession.ID)
	assert.NoError(t, err)

	err = repo.DeleteTask(ctx, doomed.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func testTimeline(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	alice := SeedUser(t, repo, "alice")
	bob := SeedUser(t, repo, "bob")

	goTask := SeedTask(t, repo, alice.ID, "Go", 0)
	goTask.Category = "lang"
	require.NoError(t, repo.UpdateTask(ctx, goTask))
	sqlTask := SeedTask(t, repo, alice.ID, "SQL", time.Minute)
	bobTask := SeedTask(t, repo, bob.ID, "Bob", 0)

	goEnd := base.Add(90 * time.Minute)
	require.NoError(t, repo.CreateSession(ctx, &repository.Session{TaskID: goTask.ID, StartedAt: base.Add(time.Hour), EndedAt: &goEnd}))
	require.NoError(t, repo.CreateSession(ctx, &repository.Session{TaskID: sqlTask.ID, StartedAt: base.Add(3 * time.Hour)}))
	require.NoError(t, repo.CreateSession(ctx, &repository.Session{TaskID: goTask.ID, StartedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.CreateSession(ctx, &repository.Session{TaskID: bobTask.ID, StartedAt: base.Add(4 * time.Hour)}))

	rows, err := repo.ListTimeline(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "SQL", rows[0].TaskTitle)
	assert.Equal(t, "Go", rows[1].TaskTitle)
	assert.Equal(t, "lang", rows[1].TaskCategory)
	assert.True(t, base.Add(2*time.Hour).Equal(rows[1].StartedAt))
	assert.Equal(t, "Go", rows[2].TaskTitle)

	empty, err := repo.ListTimeline(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func testTimelineSessionColumns(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	user := SeedUser(t, repo, "dana")
	task := SeedTask(t, repo, user.ID, "Go", 0)

	ended := base.Add(45 * time.Minute)
	session := &repository.Session{
		TaskID:             task.ID,
		StartedAt:          base,
		EndedAt:            &ended,
		DurationMinutes:    45,
		Notes:              "n",
		SubtopicsStudied:   "channels",
		SubtopicsStudiedAt: &ended,
	}
	require.NoError(t, repo.CreateSession(ctx, session))

	rows, err := repo.ListTimeline(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, session.ID, row.ID)
	assert.Equal(t, task.ID, row.TaskID)
	assert.True(t, base.Equal(row.StartedAt))
	require.NotNil(t, row.EndedAt)
	assert.True(t, ended.Equal(*row.EndedAt))
	assert.Equal(t, 45, row.DurationMinutes)
	assert.Equal(t, "n", row.Notes)
	assert.Equal(t, "channels", row.SubtopicsStudied)
	require.NotNil(t, row.SubtopicsStudiedAt)
	assert.True(t, ended.Equal(*row.SubtopicsStudiedAt))
	assert.Equal(t, "Go", row.TaskTitle)
}

func testNotFound(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	_, err := repo.GetUser(ctx, 42)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = repo.GetTask(ctx, 42)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = repo.GetSession(ctx, 42)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = repo.UpdateTask(ctx, &repository.Task{ID: 42, Title: "ghost", CreatedAt: base})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	err = repo.UpdateSubtopic(ctx, &repository.Subtopic{ID: 42, Title: "ghost"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	err = repo.UpdateSession(ctx, &repository.Session{ID: 42, StartedAt: base})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	err = repo.DeleteSession(ctx, 42)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	err = repo.DeleteSubtopic(ctx, 42)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
