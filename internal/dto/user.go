package dto

import (
	"github.com/mkotelnikov/tasktree-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// AuthorDTO represents a user embedded in a task response
type AuthorDTO struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:      user.ID,
		Name:    user.Name,
		Surname: user.Surname,
		Email:   user.Email,
	}
}

// ToAuthorDTO converts a User model to AuthorDTO
func ToAuthorDTO(user models.User) AuthorDTO {
	return AuthorDTO{
		Name:    user.Name,
		Surname: user.Surname,
		Email:   user.Email,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	result := make([]UserDTO, len(users))
	for i, user := range users {
		result[i] = ToUserDTO(user)
	}
	return result
}
