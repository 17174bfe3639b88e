package model

import (
	"gorm.io/gorm"
)

const (
	CategoryTypePrimary   = "primary"
	CategoryTypeSecondary = "secondary"

	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// ServiceCategory is a two-level tree: primary categories at the root,
// secondary categories attached through ParentID.
type ServiceCategory struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Callout     string `json:"callout"`
	Icon        string `json:"icon"` // named identifier from the icon set, resolved by the frontend
	Type        string `json:"type" gorm:"not null"`
	ParentID    *uint  `json:"parent_id" gorm:"index"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	DemoSlug    string `json:"demo_slug"`
	Status      string `json:"status" gorm:"default:'active'"`

	Children []ServiceCategory `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}
