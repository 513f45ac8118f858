package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkotelnikov/tasktree-api/internal/dto"
	apperrors "github.com/mkotelnikov/tasktree-api/internal/errors"
	"github.com/mkotelnikov/tasktree-api/internal/models"
	"github.com/mkotelnikov/tasktree-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every root task with its subtree, author, and assignees
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListRootTasks()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task with its author and assignees
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*task))
}

// CreateTask creates a new task, optionally nested and pre-assigned
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title           string       `json:"title" binding:"required,max=50"`
		Description     string       `json:"description" binding:"required,max=500"`
		EndDate         dto.DateTime `json:"end_date" binding:"required"`
		ParentID        *uint64      `json:"parent_id"`
		AuthorID        uint64       `json:"author_id" binding:"required"`
		AssigneeUserIDs []uint64     `json:"assignee_user_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		EndDate:     req.EndDate.Time(),
		AuthorID:    req.AuthorID,
		ParentID:    req.ParentID,
		AssigneeIDs: req.AssigneeUserIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDetailDTO(*task))
}

// UpdateTask partially updates a task. The raw JSON is inspected so that an
// omitted field, which must stay untouched, can be told apart from a field
// explicitly set to null (parent_id: null detaches the task from its parent).
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if title, ok := rawReq["title"]; ok {
		titleStr, ok := title.(string)
		if !ok || titleStr == "" || len(titleStr) > 50 {
			apperrors.BadRequest(c, "Invalid title")
			return
		}
		input.Title = &titleStr
	}
	if description, ok := rawReq["description"]; ok {
		descStr, ok := description.(string)
		if !ok || len(descStr) > 500 {
			apperrors.BadRequest(c, "Invalid description")
			return
		}
		input.Description = &descStr
	}
	if endDate, ok := rawReq["end_date"]; ok {
		endDateStr, ok := endDate.(string)
		if !ok {
			apperrors.BadRequest(c, "Invalid end_date")
			return
		}
		parsed, err := time.Parse(dto.DateTimeLayout, endDateStr)
		if err != nil {
			apperrors.BadRequest(c, "end_date must use the YYYY-MM-DD HH:MM format")
			return
		}
		input.EndDate = &parsed
	}
	if status, ok := rawReq["status"]; ok {
		statusStr, ok := status.(string)
		if !ok || statusStr == "" {
			apperrors.BadRequest(c, "Invalid status")
			return
		}
		taskStatus := models.TaskStatus(statusStr)
		input.Status = &taskStatus
	}
	if parentID, ok := rawReq["parent_id"]; ok {
		if parentID == nil {
			input.ClearParent = true
		} else {
			parentNum, ok := parentID.(float64)
			if !ok || parentNum <= 0 {
				apperrors.BadRequest(c, "Invalid parent_id")
				return
			}
			id := uint64(parentNum)
			input.ParentID = &id
		}
	}
	if assignees, ok := rawReq["assignee_user_ids"]; ok && assignees != nil {
		list, ok := assignees.([]any)
		if !ok {
			apperrors.BadRequest(c, "Invalid assignee_user_ids")
			return
		}
		for _, item := range list {
			num, ok := item.(float64)
			if !ok || num <= 0 {
				apperrors.BadRequest(c, "Invalid assignee_user_ids")
				return
			}
			input.AssigneeIDs = append(input.AssigneeIDs, uint64(num))
		}
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*task))
}

// DeleteTask deletes a task together with its subtree and assignments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apperrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAuthorNotFound):
		apperrors.NotFound(c, "Author not found")
	case errors.Is(err, services.ErrParentNotFound):
		apperrors.NotFound(c, "Parent task not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apperrors.NotFound(c, "One or more assignees do not exist")
	case errors.Is(err, services.ErrParentCycle):
		apperrors.BadRequest(c, "A task cannot be its own ancestor")
	default:
		apperrors.InternalError(c, "")
	}
}
