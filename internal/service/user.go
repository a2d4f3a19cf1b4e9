package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
)

var ErrAlreadyDeleted = errors.New("user is already deleted")

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

// Info returns the caller's profile row. A missing row yields
// repository.ErrUserNotFound; handlers treat that as an empty result since it
// should not occur for a valid token.
func (s *UserService) Info(userID string) (*model.User, error) {
	return s.userRepository.ByID(userID)
}

// UpdateProfileInput mirrors the full-overwrite update contract: omitted
// fields are nil and are written to the store as NULL, so callers must
// resend the complete profile.
type UpdateProfileInput struct {
	Username       *string
	Email          *string
	Nickname       *string
	School         *string
	Major          *string
	ProfilePicture *string
}

func (s *UserService) Update(userID string, in UpdateProfileInput) error {
	user := &model.User{
		ID:             userID,
		Username:       in.Username,
		Email:          in.Email,
		Nickname:       in.Nickname,
		School:         in.School,
		Major:          in.Major,
		ProfilePicture: in.ProfilePicture,
	}

	err := s.userRepository.UpdateProfile(user)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// Delete soft-deletes the account: personal fields are nulled, the deletion
// flag set, and the user's posts inactivated, all in one transaction.
func (s *UserService) Delete(userID string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsDeleted {
		return ErrAlreadyDeleted
	}

	err = s.userRepository.SoftDelete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user soft deleted", "user_id", userID)
	return nil
}
