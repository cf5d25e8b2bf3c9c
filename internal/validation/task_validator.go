package validation

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTaskInput validates the caller-supplied fields of a task
func (tv *TaskValidator) ValidateTaskInput(title, description, category string, priority int) error {
	ve := NewValidationError()

	tv.validator.checkTitle(ve, "title", title)
	tv.validator.checkText(ve, "description", description)
	if !tv.validator.IsValidStringLength(category, 0, tv.validator.Limits().TitleMaxLength) {
		ve.AddInvalidLengthError("category", category, 0, tv.validator.Limits().TitleMaxLength)
	}
	if !tv.validator.IsValidPriority(priority) {
		ve.AddInvalidRangeError("priority", priority, "must be 0 (default), 1 (low), 2 (medium) or 3 (high)")
	}

	return ve.OrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	return validateID(tv.validator, "task_id", id)
}

// ValidateUserID validates the owning user ID
func (tv *TaskValidator) ValidateUserID(id int64) error {
	return validateID(tv.validator, "user_id", id)
}

func validateID(v *Validator, field string, id int64) error {
	if !v.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError(field, id, "must be a positive integer")
		return ve
	}
	return nil
}
