package dto

import (
	"github.com/mkotelnikov/tasktree-api/internal/models"
)

// AssigneeDTO represents a task assignment in API responses
type AssigneeDTO struct {
	User           AuthorDTO `json:"user"`
	AssigneeStatus string    `json:"assignee_status"`
}

// TaskDTO represents a task aggregate in list responses, subtree included
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ParentID    *uint64           `json:"parent_id"`
	Children    []TaskDTO         `json:"children"`
	CreatedAt   DateTime          `json:"created_at"`
	EndDate     DateTime          `json:"end_date"`
	Author      AuthorDTO         `json:"author"`
	Status      models.TaskStatus `json:"status"`
	Assignees   []AssigneeDTO     `json:"assignees"`
}

// TaskDetailDTO represents a single task in detail responses. It carries the
// author and assignees but, unlike TaskDTO, not the subtree.
type TaskDetailDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ParentID    *uint64           `json:"parent_id"`
	CreatedAt   DateTime          `json:"created_at"`
	EndDate     DateTime          `json:"end_date"`
	Status      models.TaskStatus `json:"status"`
	Author      AuthorDTO         `json:"author"`
	Assignees   []AssigneeDTO     `json:"assignees"`
}

// ToAssigneeDTO converts a TaskAssignee model to AssigneeDTO
func ToAssigneeDTO(assignee models.TaskAssignee) AssigneeDTO {
	return AssigneeDTO{
		User:           ToAuthorDTO(assignee.User),
		AssigneeStatus: string(assignee.AssigneeStatus),
	}
}

// ToTaskDTO converts a Task model, children included, to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ParentID:    task.ParentID,
		Children:    make([]TaskDTO, 0, len(task.Children)),
		CreatedAt:   NewDateTime(task.CreatedAt),
		EndDate:     NewDateTime(task.EndDate),
		Author:      ToAuthorDTO(task.Author),
		Status:      task.Status,
		Assignees:   make([]AssigneeDTO, 0, len(task.Assignees)),
	}

	for _, child := range task.Children {
		dto.Children = append(dto.Children, ToTaskDTO(child))
	}
	for _, assignee := range task.Assignees {
		dto.Assignees = append(dto.Assignees, ToAssigneeDTO(assignee))
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	result := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		result[i] = ToTaskDTO(task)
	}
	return result
}

// ToTaskDetailDTO converts a Task model to TaskDetailDTO
func ToTaskDetailDTO(task models.Task) TaskDetailDTO {
	dto := TaskDetailDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ParentID:    task.ParentID,
		CreatedAt:   NewDateTime(task.CreatedAt),
		EndDate:     NewDateTime(task.EndDate),
		Status:      task.Status,
		Author:      ToAuthorDTO(task.Author),
		Assignees:   make([]AssigneeDTO, 0, len(task.Assignees)),
	}

	for _, assignee := range task.Assignees {
		dto.Assignees = append(dto.Assignees, ToAssigneeDTO(assignee))
	}

	return dto
}
