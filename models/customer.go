package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Name             string  `gorm:"size:100;not null" json:"name"`
	Phone            *string `gorm:"size:20" json:"phone,omitempty"`
	RepresentativeID *uint   `gorm:"index" json:"representative_id,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
