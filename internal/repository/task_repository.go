package repository

import (
	"github.com/mkotelnikov/tasktree-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithAssignees creates a task and one assignment row per user ID
// atomically. A failure on any insert rolls back the whole operation.
func (r *GormTaskRepository) CreateWithAssignees(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		return createAssignees(tx, task.ID, assigneeIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListAll retrieves every task in insertion order with optional preloading
func (r *GormTaskRepository) ListAll(preload ...string) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Order("tasks.id").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// SaveWithAssignees saves a task and optionally replaces its assignment set.
// Replacement is delete-then-insert: every existing row for the task is
// removed and fresh rows with a pending status are created, so an assignee
// kept across the replacement still loses any previous status.
func (r *GormTaskRepository) SaveWithAssignees(task *models.Task, replaceAssignees bool, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if !replaceAssignees {
			return nil
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		return createAssignees(tx, task.ID, assigneeIDs)
	})
}

// SubtreeIDs returns the IDs of a task and all of its transitive descendants
func (r *GormTaskRepository) SubtreeIDs(id uint64) ([]uint64, error) {
	return subtreeIDs(r.db, id)
}

// CascadeDelete deletes a task subtree and every assignment referencing it.
// Assignment rows go first so no row ever references a missing task.
func (r *GormTaskRepository) CascadeDelete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids, err := subtreeIDs(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).Delete(&models.Task{}).Error
	})
}

// ListAssignees returns the assignment rows of a task with users preloaded
func (r *GormTaskRepository) ListAssignees(taskID uint64) ([]models.TaskAssignee, error) {
	var assignees []models.TaskAssignee
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Find(&assignees).Error; err != nil {
		return nil, err
	}
	return assignees, nil
}

// subtreeIDs walks the parent/child adjacency level by level. The root ID is
// always included, so the result is never empty.
func subtreeIDs(tx *gorm.DB, rootID uint64) ([]uint64, error) {
	ids := []uint64{rootID}
	frontier := []uint64{rootID}

	for len(frontier) > 0 {
		var next []uint64
		if err := tx.Model(&models.Task{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error; err != nil {
			return nil, err
		}
		ids = append(ids, next...)
		frontier = next
	}

	return ids, nil
}

func createAssignees(tx *gorm.DB, taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	assignees := make([]models.TaskAssignee, len(userIDs))
	for i, userID := range userIDs {
		assignees[i] = models.TaskAssignee{
			TaskID:         taskID,
			UserID:         userID,
			AssigneeStatus: models.AssigneeStatusPending,
		}
	}

	return tx.Create(&assignees).Error
}
