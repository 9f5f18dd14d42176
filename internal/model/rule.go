package model

import (
	"time"

	"github.com/google/uuid"
)

// Rule is a trading checklist item. System rules have no owner and are
// shared by every user.
type Rule struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description,omitempty"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	IsSystem    bool       `gorm:"not null" json:"is_system"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Rule) TableName() string {
	return "rules"
}
