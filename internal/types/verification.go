package types

import (
	"time"

	"gorm.io/datatypes"
)

// Verification is the completion-criteria artifact generated alongside a
// task, exactly one per task, written in the same transaction.
type Verification struct {
	ID               uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID           uint             `gorm:"column:task_id;not null;uniqueIndex" json:"task_id"`
	Task             *Task            `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	VerificationType VerificationType `gorm:"column:verification_type;not null;default:'text'" json:"verification_type"`
	Content          datatypes.JSON   `gorm:"column:content" json:"content"`
	Requirements     datatypes.JSON   `gorm:"column:requirements" json:"requirements"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
}

func (Verification) TableName() string { return "verification" }
