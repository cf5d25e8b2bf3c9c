package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
)

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name             string
		input            CreateTaskInput
		expectedPriority domain.Priority
		errorType        *errors.ErrorType
	}{
		{
			name:             "should create task with explicit priority",
			input:            CreateTaskInput{Title: "Go generics", Category: "go", Priority: 3},
			expectedPriority: domain.PriorityHigh,
		},
		{
			name:             "should default zero priority to low",
			input:            CreateTaskInput{Title: "SQL joins"},
			expectedPriority: domain.PriorityLow,
		},
		{
			name:      "should reject blank title",
			input:     CreateTaskInput{Title: "   ", Priority: 1},
			errorType: ptrType(errors.ErrorTypeValidation),
		},
		{
			name:      "should reject priority above high",
			input:     CreateTaskInput{Title: "Rust", Priority: 4},
			errorType: ptrType(errors.ErrorTypeValidation),
		},
		{
			name:      "should reject negative priority",
			input:     CreateTaskInput{Title: "Rust", Priority: -1},
			errorType: ptrType(errors.ErrorTypeValidation),
		},
		{
			name:      "should reject over-long title",
			input:     CreateTaskInput{Title: strings.Repeat("x", 201)},
			errorType: ptrType(errors.ErrorTypeValidation),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupServices(t)
			tt.input.UserID = env.registerUser(t, "alice")

			task, err := env.services.TaskService.CreateTask(env.ctx, tt.input)

			if tt.errorType != nil {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, *tt.errorType))
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Greater(t, task.ID, int64(0))
			assert.Equal(t, tt.input.Title, task.Title)
			assert.Equal(t, tt.expectedPriority, task.Priority)
			assert.False(t, task.IsCompleted)
			assert.Nil(t, task.StartedAt)
			assert.Nil(t, task.CompletedAt)
			assert.True(t, testStart.Equal(task.CreatedAt))
			assert.NotNil(t, task.Subtopics)
			assert.NotNil(t, task.Sessions)
		})
	}
}

func TestTaskService_CreateTask_UnknownUser(t *testing.T) {
	env := setupServices(t)

	_, err := env.services.TaskService.CreateTask(env.ctx, CreateTaskInput{UserID: 42, Title: "Orphan"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_ListTasks(t *testing.T) {
	env := setupServices(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	first := env.createTask(t, alice, "First")
	env.clock.Advance(time.Minute)
	second := env.createTask(t, alice, "Second")
	env.createTask(t, bob, "Bob's task")

	_, err := env.services.SubtopicService.AddSubtopic(env.ctx, first, SubtopicInput{Title: "later", Order: 2})
	require.NoError(t, err)
	_, err = env.services.SubtopicService.AddSubtopic(env.ctx, first, SubtopicInput{Title: "sooner", Order: 1})
	require.NoError(t, err)

	tasks, err := env.services.TaskService.ListTasks(env.ctx, alice)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, second, tasks[0].ID, "newest task first")
	assert.Equal(t, first, tasks[1].ID)
	assert.Empty(t, tasks[0].Subtopics)
	require.Len(t, tasks[1].Subtopics, 2)
	assert.Equal(t, "sooner", tasks[1].Subtopics[0].Title)
	assert.Equal(t, "later", tasks[1].Subtopics[1].Title)
}

func TestTaskService_ListTasks_Empty(t *testing.T) {
	env := setupServices(t)
	alice := env.registerUser(t, "alice")

	tasks, err := env.services.TaskService.ListTasks(env.ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	_, err = env.services.TaskService.ListTasks(env.ctx, 0)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestTaskService_StartTask(t *testing.T) {
	env := setupServices(t)
	id := env.createTask(t, env.registerUser(t, "alice"), "Kubernetes")

	env.clock.Advance(5 * time.Minute)
	started, err := env.services.TaskService.StartTask(env.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)
	firstStart := *started.StartedAt
	assert.True(t, testStart.Add(5*time.Minute).Equal(firstStart))

	env.clock.Advance(time.Hour)
	again, err := env.services.TaskService.StartTask(env.ctx, id)
	require.NoError(t, err)
	assert.True(t, firstStart.Equal(*again.StartedAt), "second start keeps the first timestamp")

	_, err = env.services.TaskService.StartTask(env.ctx, id+100)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_CompleteTask(t *testing.T) {
	env := setupServices(t)
	id := env.createTask(t, env.registerUser(t, "alice"), "Kubernetes")

	env.clock.Advance(time.Minute)
	done, err := env.services.TaskService.CompleteTask(env.ctx, id)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)
	firstCompletion := *done.CompletedAt

	env.clock.Advance(time.Minute)
	again, err := env.services.TaskService.CompleteTask(env.ctx, id)
	require.NoError(t, err)
	assert.True(t, again.CompletedAt.After(firstCompletion), "completing again overwrites completedAt")

	_, err = env.services.TaskService.CompleteTask(env.ctx, id+100)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_UpdateTask(t *testing.T) {
	env := setupServices(t)
	id := env.createTask(t, env.registerUser(t, "alice"), "Draft")

	env.clock.Advance(time.Minute)
	updated, err := env.services.TaskService.UpdateTask(env.ctx, id, UpdateTaskInput{
		Title:       " Final ",
		Description: "notes",
		Category:    "cloud",
		Priority:    3,
		IsCompleted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "notes", updated.Description)
	assert.Equal(t, "cloud", updated.Category)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.CompletedAt)
	stamped := *updated.CompletedAt

	env.clock.Advance(time.Minute)
	stillDone, err := env.services.TaskService.UpdateTask(env.ctx, id, UpdateTaskInput{Title: "Final", Priority: 3, IsCompleted: true})
	require.NoError(t, err)
	assert.True(t, stamped.Equal(*stillDone.CompletedAt), "update keeps an existing completion time")

	reopened, err := env.services.TaskService.UpdateTask(env.ctx, id, UpdateTaskInput{Title: "Final", Priority: 3})
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
	assert.Nil(t, reopened.CompletedAt)

	persisted, err := env.services.TaskService.GetTask(env.ctx, id)
	require.NoError(t, err)
	assert.Nil(t, persisted.CompletedAt)
}

func TestTaskService_UpdateTask_Errors(t *testing.T) {
	env := setupServices(t)
	id := env.createTask(t, env.registerUser(t, "alice"), "Draft")

	_, err := env.services.TaskService.UpdateTask(env.ctx, id, UpdateTaskInput{Title: ""})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	_, err = env.services.TaskService.UpdateTask(env.ctx, id, UpdateTaskInput{Title: "ok", Priority: 9})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	_, err = env.services.TaskService.UpdateTask(env.ctx, id+100, UpdateTaskInput{Title: "ok"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_DeleteTask(t *testing.T) {
	env := setupServices(t)
	id := env.createTask(t, env.registerUser(t, "alice"), "Doomed")

	subtopic, err := env.services.SubtopicService.AddSubtopic(env.ctx, id, SubtopicInput{Title: "part"})
	require.NoError(t, err)
	session, err := env.services.SessionService.StartSession(env.ctx, id)
	require.NoError(t, err)

	require.NoError(t, env.services.TaskService.DeleteTask(env.ctx, id))

	_, err = env.services.TaskService.GetTask(env.ctx, id)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = env.services.SubtopicService.GetSubtopic(env.ctx, subtopic.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = env.services.SessionService.GetSession(env.ctx, session.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = env.services.TaskService.DeleteTask(env.ctx, id)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
