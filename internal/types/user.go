package types

import (
	"time"
)

type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Email         string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	LearningStyle *string   `gorm:"column:learning_style" json:"learning_style,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "user" }
