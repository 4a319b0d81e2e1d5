package types

import (
	"time"
)

type Milestone struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	GoalID      uint   `gorm:"column:goal_id;not null;index:idx_milestone_goal_order,unique,priority:1" json:"goal_id"`
	Goal        *Goal  `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	// Order is the 1-based roadmap position, fixed at goal creation and
	// never renumbered afterwards.
	Order       int        `gorm:"column:order;not null;index:idx_milestone_goal_order,unique,priority:2" json:"order"`
	IsComplete  bool       `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Milestone) TableName() string { return "milestone" }
