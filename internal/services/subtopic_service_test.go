package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-tracker/internal/errors"
)

func TestSubtopicService_AddSubtopic(t *testing.T) {
	env := setupServices(t)
	taskID := env.createTask(t, env.registerUser(t, "alice"), "Networking")

	subtopic, err := env.services.SubtopicService.AddSubtopic(env.ctx, taskID, SubtopicInput{
		Title:       "TCP handshake",
		Description: "SYN, SYN-ACK, ACK",
		IsCompleted: true,
		Order:       1,
	})
	require.NoError(t, err)
	assert.Greater(t, subtopic.ID, int64(0))
	assert.Equal(t, taskID, subtopic.TaskID)
	assert.Equal(t, "TCP handshake", subtopic.Title)
	assert.Equal(t, 1, subtopic.Order)
	assert.False(t, subtopic.IsCompleted, "new subtopics start incomplete")
	assert.Nil(t, subtopic.CompletedAt)
}

func TestSubtopicService_AddSubtopic_Errors(t *testing.T) {
	env := setupServices(t)
	taskID := env.createTask(t, env.registerUser(t, "alice"), "Networking")

	tests := []struct {
		name      string
		taskID    int64
		input     SubtopicInput
		errorType errors.ErrorType
	}{
		{name: "blank title", taskID: taskID, input: SubtopicInput{Title: ""}, errorType: errors.ErrorTypeValidation},
		{name: "negative order", taskID: taskID, input: SubtopicInput{Title: "x", Order: -1}, errorType: errors.ErrorTypeValidation},
		{name: "missing task", taskID: taskID + 100, input: SubtopicInput{Title: "x"}, errorType: errors.ErrorTypeNotFound},
		{name: "invalid task id", taskID: 0, input: SubtopicInput{Title: "x"}, errorType: errors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.SubtopicService.AddSubtopic(env.ctx, tt.taskID, tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, tt.errorType), "got %v", err)
		})
	}
}

func TestSubtopicService_ListSubtopics_Order(t *testing.T) {
	env := setupServices(t)
	taskID := env.createTask(t, env.registerUser(t, "alice"), "Networking")

	for _, in := range []SubtopicInput{
		{Title: "c", Order: 2},
		{Title: "a", Order: 0},
		{Title: "b1", Order: 1},
		{Title: "b2", Order: 1},
	} {
		_, err := env.services.SubtopicService.AddSubtopic(env.ctx, taskID, in)
		require.NoError(t, err)
	}

	subtopics, err := env.services.SubtopicService.ListSubtopics(env.ctx, taskID)
	require.NoError(t, err)

	titles := make([]string, 0, len(subtopics))
	for _, s := range subtopics {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, titles)

	_, err = env.services.SubtopicService.ListSubtopics(env.ctx, taskID+100)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSubtopicService_UpdateSubtopic(t *testing.T) {
	env := setupServices(t)
	taskID := env.createTask(t, env.registerUser(t, "alice"), "Networking")
	created, err := env.services.SubtopicService.AddSubtopic(env.ctx, taskID, SubtopicInput{Title: "UDP"})
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	done, err := env.services.SubtopicService.UpdateSubtopic(env.ctx, created.ID, SubtopicInput{
		Title:       "UDP basics",
		Description: "connectionless",
		IsCompleted: true,
		Order:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, "UDP basics", done.Title)
	assert.Equal(t, 3, done.Order)
	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, testStart.Add(10*time.Minute).Equal(*done.CompletedAt))

	env.clock.Advance(time.Minute)
	undone, err := env.services.SubtopicService.UpdateSubtopic(env.ctx, created.ID, SubtopicInput{Title: "UDP basics", Order: 3})
	require.NoError(t, err)
	assert.False(t, undone.IsCompleted)
	assert.Nil(t, undone.CompletedAt)

	stored, err := env.services.SubtopicService.GetSubtopic(env.ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Description, "update is a full overwrite")
	assert.Nil(t, stored.CompletedAt)

	_, err = env.services.SubtopicService.UpdateSubtopic(env.ctx, created.ID+100, SubtopicInput{Title: "x"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSubtopicService_DeleteSubtopic(t *testing.T) {
	env := setupServices(t)
	taskID := env.createTask(t, env.registerUser(t, "alice"), "Networking")
	created, err := env.services.SubtopicService.AddSubtopic(env.ctx, taskID, SubtopicInput{Title: "ICMP"})
	require.NoError(t, err)

	require.NoError(t, env.services.SubtopicService.DeleteSubtopic(env.ctx, created.ID))

	_, err = env.services.SubtopicService.GetSubtopic(env.ctx, created.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = env.services.SubtopicService.DeleteSubtopic(env.ctx, created.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = env.services.SubtopicService.DeleteSubtopic(env.ctx, -1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
