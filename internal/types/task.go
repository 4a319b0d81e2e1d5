package types

import (
	"time"
)

type Task struct {
	ID     uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	GoalID uint  `gorm:"column:goal_id;not null;index" json:"goal_id"`
	Goal   *Goal `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	// MilestoneID is null only when the goal had no incomplete milestone at
	// creation time.
	MilestoneID *uint      `gorm:"column:milestone_id;index" json:"milestone_id,omitempty"`
	Milestone   *Milestone `gorm:"foreignKey:MilestoneID;references:ID" json:"milestone,omitempty"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Status      TaskStatus `gorm:"column:status;not null;default:'incomplete';index" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Task) TableName() string { return "task" }
