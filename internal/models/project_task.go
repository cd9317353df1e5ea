package models

import "time"

const DefaultProjectTaskStatus = "pending"

// ProjectTask assigns a template Task to a Stage, optionally bound to a Programmer.
type ProjectTask struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	StageID      uint64    `gorm:"not null" json:"stage_id"`
	TaskID       uint64    `gorm:"not null" json:"task_id"`
	ProgrammerID *uint64   `json:"programmer_id"`
	Status       string    `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Task       *Task       `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Programmer *Programmer `gorm:"foreignKey:ProgrammerID" json:"programmer,omitempty"`
}
