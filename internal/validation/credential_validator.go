package validation

// CredentialValidator checks registration and login input
type CredentialValidator struct {
	validator *Validator
}

// NewCredentialValidator creates a credential validator on top of v
func NewCredentialValidator(v *Validator) *CredentialValidator {
	if v == nil {
		v = NewValidator()
	}
	return &CredentialValidator{validator: v}
}

// ValidateCredentials rejects blank or over-long usernames and passwords.
// Passwords are measured in bytes and never echoed back in the error.
func (cv *CredentialValidator) ValidateCredentials(username, password string) error {
	ve := NewValidationError()
	limits := cv.validator.Limits()

	if !cv.validator.IsNonEmptyString(username) {
		ve.AddRequiredError("username")
	} else if !cv.validator.IsValidStringLength(username, limits.UsernameMinLength, limits.UsernameMaxLength) {
		ve.AddInvalidLengthError("username", username, limits.UsernameMinLength, limits.UsernameMaxLength)
	}

	if !cv.validator.IsNonEmptyString(password) {
		ve.AddRequiredError("password")
	} else if !cv.validator.IsWithinByteLimit(password, limits.PasswordMinLength, limits.PasswordMaxLength) {
		ve.AddInvalidLengthError("password", nil, limits.PasswordMinLength, limits.PasswordMaxLength)
	}

	return ve.OrNil()
}
