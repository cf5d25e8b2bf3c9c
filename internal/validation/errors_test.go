package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		contains string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be positive"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			assert.Contains(t, ve.Error(), tt.contains)
		})
	}
}

func TestValidationError_OrNil(t *testing.T) {
	ve := NewValidationError()
	assert.NoError(t, ve.OrNil())

	ve.AddRequiredError("title")
	err := ve.OrNil()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidationError_Merge(t *testing.T) {
	first := NewValidationError()
	first.AddRequiredError("title")

	second := NewValidationError()
	second.AddInvalidRangeError("order", -1, "must not be negative")

	first.Merge(second)
	first.Merge(fmt.Errorf("not a validation error"))
	first.Merge(nil)

	require.Len(t, first.Errors, 2)
	assert.Equal(t, "order", first.Errors[1].Field)
}

func TestValidationError_AddHelpers(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("username")
	ve.AddInvalidLengthError("title", "x", 2, 5)
	ve.AddInvalidLengthError("notes", nil, 0, 10)
	ve.AddInvalidLengthError("code", nil, 3, 0)
	ve.AddInvalidValueError("task_id", int64(-1), "must be a positive integer")
	ve.AddInvalidRangeError("priority", 9, "must be 0-3")

	require.Len(t, ve.Errors, 6)
	assert.Equal(t, ErrorTypeRequired, ve.Errors[0].Type)
	assert.Equal(t, "username is required", ve.Errors[0].Message)
	assert.Equal(t, "title must be between 2 and 5 characters long", ve.Errors[1].Message)
	assert.Equal(t, "notes must be at most 10 characters long", ve.Errors[2].Message)
	assert.Equal(t, "code must be at least 3 characters long", ve.Errors[3].Message)
	assert.Equal(t, ErrorTypeInvalidValue, ve.Errors[4].Type)
	assert.Equal(t, ErrorTypeInvalidRange, ve.Errors[5].Type)
	assert.Equal(t, 9, ve.Errors[5].Value)
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidRangeError("order", -1, "must not be negative")
	ve.AddInvalidLengthError("title", "x", 2, 5)

	assert.Len(t, ve.GetFieldErrors("title"), 2)
	assert.Len(t, ve.GetFieldErrors("order"), 1)
	assert.Empty(t, ve.GetFieldErrors("missing"))
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	assert.Equal(t, "Input validation failed", NewValidationError().GetUserFriendlyMessage())

	ve := NewValidationError()
	ve.AddRequiredError("username")
	ve.AddRequiredError("password")
	assert.Equal(t, "username is required; password is required", ve.GetUserFriendlyMessage())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError()))
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", NewValidationError())))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
	assert.False(t, IsValidationError(nil))
}
