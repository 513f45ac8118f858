package models

import "time"

type AssigneeStatus string

const (
	AssigneeStatusPending AssigneeStatus = "pending"
	AssigneeStatusDone    AssigneeStatus = "done"
)

// TaskAssignee links one user to one task. Its status is tracked per
// assignment, independently of the task's own status.
type TaskAssignee struct {
	UserID         uint64         `gorm:"primarykey" json:"user_id"`
	TaskID         uint64         `gorm:"primarykey;index" json:"task_id"`
	AssigneeStatus AssigneeStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"assignee_status"`
	AssignedAt     time.Time      `gorm:"autoCreateTime" json:"assigned_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
