package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Programmer struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Seniority   string          `gorm:"type:varchar(50);not null" json:"seniority"`
	Coefficient decimal.Decimal `gorm:"type:decimal(3,2);not null" json:"coefficient"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
