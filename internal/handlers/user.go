package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkotelnikov/tasktree-api/internal/dto"
	apperrors "github.com/mkotelnikov/tasktree-api/internal/errors"
	"github.com/mkotelnikov/tasktree-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all users with their basic fields
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name       string  `json:"name" binding:"required,max=30"`
		Surname    string  `json:"surname" binding:"required,max=50"`
		Patronymic *string `json:"patronymic" binding:"omitempty,max=50"`
		Email      string  `json:"email" binding:"required,email,max=100"`
		Position   *string `json:"position" binding:"omitempty,max=200"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Name:       req.Name,
		Surname:    req.Surname,
		Patronymic: req.Patronymic,
		Email:      req.Email,
		Position:   req.Position,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			apperrors.Conflict(c, "Email is already in use")
			return
		}
		apperrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}
