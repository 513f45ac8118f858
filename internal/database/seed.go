package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mkotelnikov/tasktree-api/internal/models"
	"gorm.io/gorm"
)

// Seed populates an empty database with demo users, a three-level task tree,
// and a few assignments. The guard is the user table: as soon as any user row
// exists the whole routine is a no-op, so repeated startups never duplicate
// rows.
func Seed(db *gorm.DB) error {
	var user models.User
	err := db.Select("id").Limit(1).Take(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}

	log.Println("Empty database, seeding demo data...")
	return populate(db)
}

func populate(db *gorm.DB) error {
	endDate := time.Date(2025, 5, 20, 12, 30, 0, 0, time.UTC)

	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{Name: "John", Surname: "Doe", Email: "john@example.com"},
			{Name: "Maria", Surname: "Ivanova", Email: "maria@example.com"},
			{Name: "Alex", Surname: "Smith", Email: "alex@example.com"},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		mainTasks := []models.Task{
			{Title: "Test Task 1", Description: "Test Title 1", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[0].ID},
			{Title: "Test Task 2", Description: "Test Title 2", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[0].ID},
			{Title: "Test Task 3", Description: "Test Title 3", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[0].ID},
		}
		if err := tx.Create(&mainTasks).Error; err != nil {
			return err
		}

		subtasks := []models.Task{
			{Title: "Sub Task 1", Description: "Sub Title 1", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[1].ID, ParentID: &mainTasks[0].ID},
			{Title: "Sub Task 2", Description: "Sub Title 2", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[1].ID, ParentID: &mainTasks[1].ID},
			{Title: "Sub Task 3", Description: "Sub Title 1", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[1].ID, ParentID: &mainTasks[1].ID},
		}
		if err := tx.Create(&subtasks).Error; err != nil {
			return err
		}

		nested := []models.Task{
			{Title: "Sub for Sub Task 1", Description: "Sub for Sub Title 1", EndDate: endDate, Status: models.TaskStatusPending, AuthorID: users[1].ID, ParentID: &subtasks[0].ID},
		}
		if err := tx.Create(&nested).Error; err != nil {
			return err
		}

		assignees := []models.TaskAssignee{
			{UserID: users[1].ID, TaskID: mainTasks[0].ID, AssigneeStatus: models.AssigneeStatusPending},
			{UserID: users[2].ID, TaskID: mainTasks[1].ID, AssigneeStatus: models.AssigneeStatusPending},
			{UserID: users[0].ID, TaskID: subtasks[1].ID, AssigneeStatus: models.AssigneeStatusPending},
		}
		return tx.Create(&assignees).Error
	})
}
