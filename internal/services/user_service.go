package services

import (
	"errors"
	"fmt"

	"agency/internal/models"
	"agency/internal/repositories"
)

// UserService handles business logic for user administration and profile
// management.
type UserService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		events:   events,
	}
}

// ProfileUpdate carries the caller-editable profile fields. Empty fields are
// left untouched.
type ProfileUpdate struct {
	FirstName    string `json:"firstName" validate:"omitempty,max=100"`
	LastName     string `json:"lastName" validate:"omitempty,max=100"`
	Gender       string `json:"gender" validate:"omitempty,max=20"`
	ProfileImage string `json:"profileImage" validate:"omitempty,max=500"`
}

// AdminUserUpdate carries the fields an admin may change on any user record.
// Role is a pointer so an omitted role is distinguishable from an explicit
// demotion to the empty role.
type AdminUserUpdate struct {
	FirstName    string  `json:"firstName" validate:"omitempty,max=100"`
	LastName     string  `json:"lastName" validate:"omitempty,max=100"`
	Role         *string `json:"role" validate:"omitempty,max=50"`
	Gender       string  `json:"gender" validate:"omitempty,max=20"`
	ProfileImage string  `json:"profileImage" validate:"omitempty,max=500"`
}

// GetAllUsers returns every user with the password hash blanked.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// UpdateProfile applies the caller's own profile changes, identified by the
// email from their verified token. Applying the same update twice converges
// to the same stored record.
func (s *UserService) UpdateProfile(email string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if upd.FirstName != "" {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		user.LastName = upd.LastName
	}
	if upd.Gender != "" {
		user.Gender = upd.Gender
	}
	if upd.ProfileImage != "" {
		user.ProfileImage = upd.ProfileImage
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Password = ""
	return user, nil
}

// UpdateUser applies an admin edit to the user with the given ID. Email and
// password are not editable through this path; role changes take effect on
// the target's next privileged request.
func (s *UserService) UpdateUser(id string, upd AdminUserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != "" {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		user.LastName = upd.LastName
	}
	if upd.Gender != "" {
		user.Gender = upd.Gender
	}
	if upd.ProfileImage != "" {
		user.ProfileImage = upd.ProfileImage
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	publishEvent(s.events, "user.updated", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	user.Password = ""
	return user, nil
}

// DeleteUser removes a user by ID.
func (s *UserService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	publishEvent(s.events, "user.deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}
