package model

import (
	"gorm.io/gorm"
)

const (
	ContactFormStatusNew        = "new"
	ContactFormStatusInProgress = "in_progress"
	ContactFormStatusCompleted  = "completed"
)

type ContactForm struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"not null"`
	Phone        string `json:"phone" gorm:"not null"`
	BusinessType string `json:"business_type"`
	Message      string `json:"message"`
	Status       string `json:"status" gorm:"default:'new'"`
	Notes        string `json:"notes"`
}
