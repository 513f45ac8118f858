package models

type User struct {
	ID         uint64  `gorm:"primarykey" json:"id"`
	Name       string  `gorm:"type:varchar(30);not null" json:"name"`
	Surname    string  `gorm:"type:varchar(50);not null" json:"surname"`
	Patronymic *string `gorm:"type:varchar(50)" json:"patronymic,omitempty"`
	Email      string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Position   *string `gorm:"type:varchar(200)" json:"position,omitempty"`

	// Relations
	CreatedTasks  []Task         `gorm:"foreignKey:AuthorID" json:"-"`
	AssignedTasks []TaskAssignee `gorm:"foreignKey:UserID" json:"-"`
}
