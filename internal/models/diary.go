package models

import (
	"time"
)

// Diary is a dated journal entry owned by a user.
type Diary struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DiaryDate Date   `gorm:"type:date;index" json:"diaryDate"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text" json:"content"`
	UserID    uint   `gorm:"not null;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
