package models

import "time"

type Stage struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ProjectID   uint64    `gorm:"not null" json:"project_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OrderIndex  int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	ProjectTasks []ProjectTask `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE" json:"project_tasks,omitempty"`
}
