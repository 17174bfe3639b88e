package model

import (
	"gorm.io/gorm"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	FullName string `json:"full_name" gorm:"not null"`
	Role     string `json:"role" gorm:"default:'client'"`
	Phone    string `json:"phone"`

	// Onboarding fields, filled from the dashboard after signup
	BusinessType        string `json:"business_type"`
	BusinessSubsector   string `json:"business_subsector"`
	BusinessDescription string `json:"business_description"`

	Subscription *Subscription  `json:"-" gorm:"foreignKey:UserID"`
	Website      *ClientWebsite `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":                   u.ID,
		"email":                u.Email,
		"full_name":            u.FullName,
		"role":                 u.Role,
		"phone":                u.Phone,
		"business_type":        u.BusinessType,
		"business_subsector":   u.BusinessSubsector,
		"business_description": u.BusinessDescription,
	}
}
