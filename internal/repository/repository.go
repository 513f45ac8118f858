package repository

import (
	"github.com/mkotelnikov/tasktree-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignees creates a task and its initial assignments
	// within a single transaction.
	CreateWithAssignees(task *models.Task, assigneeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListAll retrieves every task with optional preloading,
	// in insertion (ID) order.
	ListAll(preload ...string) ([]models.Task, error)

	// SaveWithAssignees persists field changes to a task and, when
	// replaceAssignees is set, swaps the full assignment set for the
	// given user IDs, all within a single transaction.
	SaveWithAssignees(task *models.Task, replaceAssignees bool, assigneeIDs []uint64) error

	// SubtreeIDs returns the IDs of a task and all of its transitive
	// descendants.
	SubtreeIDs(id uint64) ([]uint64, error)

	// CascadeDelete deletes a task, its descendant tasks, and every
	// assignment referencing any of them, atomically.
	CascadeDelete(id uint64) error

	// ListAssignees returns the assignment rows of a task with users preloaded
	ListAssignees(taskID uint64) ([]models.TaskAssignee, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves all users in insertion (ID) order
	List() ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// Any reports whether at least one user row exists
	Any() (bool, error)
}
