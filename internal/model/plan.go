package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Plan struct {
	gorm.Model
	Name          string         `json:"name" gorm:"not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;not null"`
	PriceMXN      float64        `json:"price_mxn" gorm:"not null"`
	StripePriceID string         `json:"stripe_price_id"`
	Features      datatypes.JSON `json:"features"` // ordered list of feature strings
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`

	Subscriptions []Subscription `json:"-"`
}
