package models

import "time"

type Project struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	StartDate     *time.Time `gorm:"type:date" json:"start_date"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date"`
	ResponsibleID *uint64    `json:"responsible_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Responsible *Programmer `gorm:"foreignKey:ResponsibleID" json:"responsible,omitempty"`
	Stages      []Stage     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}
