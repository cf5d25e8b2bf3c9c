package services

import (
	"context"

	"learning-tracker/internal/auth"
	"learning-tracker/internal/domain"
	"learning-tracker/internal/errors"
	"learning-tracker/internal/repository"
	"learning-tracker/internal/validation"
)

// credentialServiceImpl implements the CredentialService interface
type credentialServiceImpl struct {
	repo      repository.Repository
	hasher    auth.Hasher
	validator *validation.CredentialValidator
	mapper    *domain.Mapper
	clock     Clock
}

// NewCredentialService creates a new CredentialService instance
func NewCredentialService(repo repository.Repository, hasher auth.Hasher, v *validation.Validator, clock Clock) CredentialService {
	return &credentialServiceImpl{
		repo:      repo,
		hasher:    hasher,
		validator: validation.NewCredentialValidator(v),
		mapper:    domain.NewMapper(),
		clock:     clock,
	}
}

// Register creates a user with a bcrypt-hashed password
func (c *credentialServiceImpl) Register(ctx context.Context, username, password string) (int64, error) {
	if err := c.validator.ValidateCredentials(username, password); err != nil {
		return 0, errors.NewValidationError("invalid registration", err)
	}

	existing, err := c.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return 0, err
	}
	if existing != nil {
		return 0, errors.NewConflictError("user", username)
	}

	hash, err := c.hasher.Hash(password)
	if err != nil {
		return 0, errors.WrapError(err, errors.ErrorTypeValidation, "password cannot be hashed")
	}

	user := &repository.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    c.clock.Now(),
	}
	// The unique index still guards a registration racing this one.
	if err := c.repo.CreateUser(ctx, user); err != nil {
		return 0, err
	}

	return user.ID, nil
}

// Authenticate returns the user id when the password verifies. Unknown users
// and wrong passwords fail identically.
func (c *credentialServiceImpl) Authenticate(ctx context.Context, username, password string) (int64, error) {
	ve := validation.NewValidationError()
	if username == "" {
		ve.AddRequiredError("username")
	}
	if password == "" {
		ve.AddRequiredError("password")
	}
	if ve.HasErrors() {
		return 0, errors.NewValidationError("invalid login", ve)
	}

	user, err := c.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return 0, errors.NewUnauthorizedError()
		}
		return 0, err
	}

	ok, err := c.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return 0, errors.WrapError(err, errors.ErrorTypeDatabase, "stored password hash is unreadable")
	}
	if !ok {
		return 0, errors.NewUnauthorizedError()
	}

	return user.ID, nil
}

// GetUser returns the public view of a user
func (c *credentialServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, errors.NewInvalidInputError("user_id", id, "must be a positive integer")
	}

	dbUser, err := c.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user := c.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}
