package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityLog struct {
	gorm.Model
	UserID      *uint          `json:"user_id" gorm:"index"`
	Action      string         `json:"action" gorm:"not null"`
	Description string         `json:"description"`
	Metadata    datatypes.JSON `json:"metadata"`
}
