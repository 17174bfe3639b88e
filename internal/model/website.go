package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	WebsiteStatusPending     = "pending"
	WebsiteStatusDevelopment = "development"
	WebsiteStatusPublished   = "published"
)

type ClientWebsite struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	URL         string     `json:"url"`
	Status      string     `json:"status" gorm:"default:'pending'"`
	AssignedAt  *time.Time `json:"assigned_at"`
	PublishedAt *time.Time `json:"published_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
