package validation

// SubtopicValidator checks subtopic input
type SubtopicValidator struct {
	validator *Validator
}

// NewSubtopicValidator creates a subtopic validator on top of v
func NewSubtopicValidator(v *Validator) *SubtopicValidator {
	if v == nil {
		v = NewValidator()
	}
	return &SubtopicValidator{validator: v}
}

// ValidateSubtopicInput validates title, notes and display order
func (sv *SubtopicValidator) ValidateSubtopicInput(title, description string, order int) error {
	ve := NewValidationError()

	sv.validator.checkTitle(ve, "title", title)
	sv.validator.checkText(ve, "description", description)
	if !sv.validator.IsValidOrder(order) {
		ve.AddInvalidRangeError("order", order, "must not be negative")
	}

	return ve.OrNil()
}

// SessionValidator checks the fields supplied when ending a session
type SessionValidator struct {
	validator *Validator
}

// NewSessionValidator creates a session validator on top of v
func NewSessionValidator(v *Validator) *SessionValidator {
	if v == nil {
		v = NewValidator()
	}
	return &SessionValidator{validator: v}
}

// ValidateSessionEnd limits the size of notes and the studied list
func (sv *SessionValidator) ValidateSessionEnd(notes, subtopicsStudied string) error {
	ve := NewValidationError()
	sv.validator.checkText(ve, "notes", notes)
	sv.validator.checkText(ve, "subTopicsStudied", subtopicsStudied)
	return ve.OrNil()
}
