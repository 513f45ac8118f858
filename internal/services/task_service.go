package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkotelnikov/tasktree-api/internal/models"
	"github.com/mkotelnikov/tasktree-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAuthorNotFound   = errors.New("author not found")
	ErrParentNotFound   = errors.New("parent task not found")
	ErrAssigneeNotFound = errors.New("one or more assignees do not exist")
	ErrParentCycle      = errors.New("task cannot be its own ancestor")
)

// taskDetailPreloads are the relations loaded for a single-task view.
var taskDetailPreloads = []string{"Author", "Assignees", "Assignees.User"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	EndDate     time.Time
	AuthorID    uint64
	ParentID    *uint64
	AssigneeIDs []uint64
}

// UpdateTaskInput represents input for partially updating a task. A nil
// pointer means the field was not supplied and must stay untouched;
// ClearParent marks an explicit null parent, which detaches the task from
// its parent and turns it into a root.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	EndDate     *time.Time
	Status      *models.TaskStatus
	ParentID    *uint64
	ClearParent bool
	AssigneeIDs []uint64
}

// ListRootTasks returns every task without a parent, each carrying its
// recursively assembled subtree, author, and assignees, in insertion order.
func (s *TaskService) ListRootTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll(taskDetailPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return assembleForest(tasks), nil
}

// GetTask returns a task with its author and assignees
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskDetailPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a task after resolving its author, parent, and
// assignees. The task row and its assignment rows persist atomically.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if _, err := s.userRepo.FindByID(input.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	if input.ParentID != nil {
		if _, err := s.taskRepo.FindByID(*input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to resolve parent: %w", err)
		}
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if err := s.verifyAssignees(assigneeIDs); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		EndDate:     input.EndDate,
		Status:      models.TaskStatusPending,
		ParentID:    input.ParentID,
		AuthorID:    input.AuthorID,
	}

	if err := s.taskRepo.CreateWithAssignees(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// UpdateTask applies a partial update. Only fields present in the input are
// touched; a non-empty assignee list replaces the whole assignment set,
// while an empty or absent list leaves existing assignments as they are.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if input.ClearParent {
		task.ParentID = nil
	} else if input.ParentID != nil {
		if err := s.verifyParent(taskID, *input.ParentID); err != nil {
			return nil, err
		}
		task.ParentID = input.ParentID
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	replace := len(assigneeIDs) > 0
	if replace {
		if err := s.verifyAssignees(assigneeIDs); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.SaveWithAssignees(task, replace, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// DeleteTask deletes a task together with its subtree and assignments
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.CascadeDelete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// verifyParent checks that a prospective parent exists and that attaching to
// it keeps the tree acyclic: the parent must not be the task itself or any
// task inside its subtree.
func (s *TaskService) verifyParent(taskID, parentID uint64) error {
	if parentID == taskID {
		return ErrParentCycle
	}

	if _, err := s.taskRepo.FindByID(parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return fmt.Errorf("failed to resolve parent: %w", err)
	}

	subtree, err := s.taskRepo.SubtreeIDs(taskID)
	if err != nil {
		return fmt.Errorf("failed to collect subtree: %w", err)
	}
	for _, id := range subtree {
		if id == parentID {
			return ErrParentCycle
		}
	}

	return nil
}

// verifyAssignees checks that every referenced user exists
func (s *TaskService) verifyAssignees(userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	count, err := s.userRepo.CountByIDs(userIDs)
	if err != nil {
		return fmt.Errorf("failed to verify assignees: %w", err)
	}
	if int(count) != len(userIDs) {
		return ErrAssigneeNotFound
	}

	return nil
}

// assembleForest rebuilds the parent/child tree in memory from a flat task
// list and returns the root tasks. Children keep the insertion order of the
// input slice.
func assembleForest(tasks []models.Task) []models.Task {
	childrenOf := make(map[uint64][]*models.Task)
	for i := range tasks {
		t := &tasks[i]
		if t.ParentID != nil {
			childrenOf[*t.ParentID] = append(childrenOf[*t.ParentID], t)
		}
	}

	var attach func(t *models.Task) models.Task
	attach = func(t *models.Task) models.Task {
		node := *t
		kids := childrenOf[t.ID]
		node.Children = make([]models.Task, 0, len(kids))
		for _, kid := range kids {
			node.Children = append(node.Children, attach(kid))
		}
		return node
	}

	roots := make([]models.Task, 0)
	for i := range tasks {
		if tasks[i].ParentID == nil {
			roots = append(roots, attach(&tasks[i]))
		}
	}

	return roots
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
