package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns user lifecycle, identity uniqueness and the follow edges
// of the social graph.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput is the payload for updating an existing account.
type UpdateProfileInput struct {
	UserID uint
	Name   string
	Email  string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user with empty relationship sets and a hashed
// password. Username and email collisions (case-sensitive exact match) fail
// with a conflict error and leave the store untouched.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and hash
// mismatches are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	return user, nil
}

// ListUsers returns public profiles (email stripped).
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Public()
	}
	return users, nil
}

// GetUserByID returns the public profile for the given user.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetPublicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the caller's own record, email included.
func (s *UserService) Profile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ToggleFollow flips the follow edge between caller and target and returns
// the updated target. The edge is stored on both endpoints
// (caller.Following and target.Followers) and both sides are persisted in one
// transaction. Self-follows are not rejected.
func (s *UserService) ToggleFollow(ctx context.Context, callerID, targetID uint) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	caller := target
	if callerID != targetID {
		caller, err = s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
	}

	toggleSymmetricEdge(&caller.Following, target.ID, &target.Followers, caller.ID)

	if err := s.userRepo.SaveBoth(ctx, caller, target); err != nil {
		return nil, err
	}
	return target, nil
}

// UpdateProfile changes name and/or email. Setting a field to its current
// value is a no-op; if nothing changes, no write is issued. An email already
// used by a different user fails with a conflict error.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	changed := false

	if in.Name != "" && in.Name != user.Name {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
		changed = true
	}

	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		other, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, models.NewConflictError("Username or email already taken")
		}
		user.Email = in.Email
		changed = true
	}

	if !changed {
		return user, nil
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user. The user's posts are cascade-deleted and
// dangling references to the user are purged from the rest of the graph.
func (s *UserService) DeleteAccount(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user)
}
