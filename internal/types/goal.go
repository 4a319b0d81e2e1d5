package types

import (
	"time"

	"gorm.io/datatypes"
)

type Goal struct {
	ID        uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint  `gorm:"column:user_id;not null;index" json:"user_id"`
	User      *User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SkillName string `gorm:"column:skill_name;not null" json:"skill_name"`
	// Timeline is the goal horizon in days.
	Timeline   int            `gorm:"column:timeline;not null" json:"timeline"`
	CoachNotes datatypes.JSON `gorm:"column:coach_notes" json:"coach_notes,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Goal) TableName() string { return "goal" }
