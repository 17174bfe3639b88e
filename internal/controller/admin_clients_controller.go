package controller

import (
	"github.com/gofiber/fiber/v2"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
)

type ClientSummary struct {
	ID           uint   `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`

	SubscriptionStatus string `json:"subscription_status,omitempty"`
	PlanName           string `json:"plan_name,omitempty"`
	WebsiteStatus      string `json:"website_status,omitempty"`
	WebsiteURL         string `json:"website_url,omitempty"`
}

// ListClients returns all client accounts with their subscription and
// website state for the admin clients page.
func ListClients(c *fiber.Ctx) error {
	db := database.GetDB()

	var users []model.User
	err := db.Where("role = ?", model.RoleClient).
		Preload("Subscription").
		Preload("Subscription.Plan").
		Preload("Website").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch clients",
		})
	}

	clients := make([]ClientSummary, 0, len(users))
	for _, u := range users {
		summary := ClientSummary{
			ID:           u.ID,
			FullName:     u.FullName,
			Email:        u.Email,
			Phone:        u.Phone,
			BusinessType: u.BusinessType,
		}
		if u.Subscription != nil {
			summary.SubscriptionStatus = u.Subscription.Status
			summary.PlanName = u.Subscription.Plan.Name
		}
		if u.Website != nil {
			summary.WebsiteStatus = u.Website.Status
			summary.WebsiteURL = u.Website.URL
		}
		clients = append(clients, summary)
	}

	return c.JSON(fiber.Map{
		"clients": clients,
	})
}
