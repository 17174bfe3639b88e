package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
)

type AdminStats struct {
	TotalClients        int64   `json:"total_clients"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	PublishedWebsites   int64   `json:"published_websites"`
	PendingForms        int64   `json:"pending_forms"`
	NewClientsThisMonth int64   `json:"new_clients_this_month"`
}

type RecentClient struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAdminStats aggregates the admin dashboard numbers. Revenue sums the
// effective monthly price of active subscriptions: the admin override when
// set, otherwise the plan list price.
func GetAdminStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var stats AdminStats

	db.Model(&model.User{}).
		Where("role = ?", model.RoleClient).
		Count(&stats.TotalClients)

	db.Model(&model.Subscription{}).
		Where("status = ?", model.SubscriptionStatusActive).
		Count(&stats.ActiveSubscriptions)

	var activeSubs []model.Subscription
	db.Where("status = ?", model.SubscriptionStatusActive).
		Preload("Plan").
		Find(&activeSubs)
	for _, sub := range activeSubs {
		stats.MonthlyRevenue += sub.EffectiveMonthlyPrice(sub.Plan.PriceMXN)
	}

	db.Model(&model.ClientWebsite{}).
		Where("status = ?", model.WebsiteStatusPublished).
		Count(&stats.PublishedWebsites)

	db.Model(&model.ContactForm{}).
		Where("status = ?", model.ContactFormStatusNew).
		Count(&stats.PendingForms)

	startOfMonth := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	db.Model(&model.User{}).
		Where("role = ? AND created_at >= ?", model.RoleClient, startOfMonth).
		Count(&stats.NewClientsThisMonth)

	var recentUsers []model.User
	db.Where("role = ?", model.RoleClient).
		Order("created_at DESC").
		Limit(5).
		Find(&recentUsers)

	recentClients := make([]RecentClient, 0, len(recentUsers))
	for _, u := range recentUsers {
		recentClients = append(recentClients, RecentClient{
			ID:        u.ID,
			FullName:  u.FullName,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"stats":          stats,
		"recent_clients": recentClients,
	})
}
