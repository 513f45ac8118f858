package services

import (
	"errors"
	"fmt"

	"github.com/mkotelnikov/tasktree-api/internal/models"
	"github.com/mkotelnikov/tasktree-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email is already in use")
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Name       string
	Surname    string
	Patronymic *string
	Email      string
	Position   *string
}

// CreateUser creates a user, enforcing email uniqueness
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	_, err := s.userRepo.FindByEmail(input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Name:       input.Name,
		Surname:    input.Surname,
		Patronymic: input.Patronymic,
		Email:      input.Email,
		Position:   input.Position,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index is the authority; the pre-check above only
		// produces a nicer error for the common case.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListUsers returns all users in insertion order
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
