package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Testimonial struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	BusinessName string `json:"business_name"`
	Rating       int    `json:"rating" gorm:"default:5"`
	Quote        string `json:"quote" gorm:"not null"`
	ImageURL     string `json:"image_url"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
}

type FAQ struct {
	gorm.Model
	Question   string `json:"question" gorm:"not null"`
	Answer     string `json:"answer" gorm:"not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
}

type ClientLogo struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	LogoURL    string `json:"logo_url" gorm:"not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
}

// SiteConfig holds keyed JSON blobs (contact info, social media, SEO defaults).
type SiteConfig struct {
	gorm.Model
	Key   string         `json:"key" gorm:"uniqueIndex;not null"`
	Value datatypes.JSON `json:"value"`
}
