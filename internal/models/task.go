package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(50);not null" json:"title"`
	Description string     `gorm:"type:varchar(500);not null" json:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	EndDate     time.Time  `gorm:"not null" json:"end_date"`
	Status      TaskStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	ParentID    *uint64    `gorm:"index" json:"parent_id"`
	AuthorID    uint64     `gorm:"not null;index" json:"author_id"`

	// Relations
	Parent    *Task          `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children  []Task         `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignees []TaskAssignee `gorm:"foreignKey:TaskID" json:"assignees,omitempty"`
}
