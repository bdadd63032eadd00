package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"size:100" json:"name"`
	Role     string `gorm:"type:enum('admin','representative','customer');default:'customer'" json:"role"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	RoleAdmin          = "admin"
	RoleRepresentative = "representative"
	RoleCustomer       = "customer"
)
