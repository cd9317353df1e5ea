package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TaskTypeDevelopment = "development"
	TaskTypeManagement  = "management"
)

// Task is a reusable template. Assignments reference it by ID, so edits
// show up in every project that uses it.
type Task struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Type          string          `gorm:"type:varchar(50);not null" json:"type"`
	BaseTimeHours decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"base_time_hours"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
