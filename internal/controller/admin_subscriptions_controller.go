package controller

import (
	"github.com/gofiber/fiber/v2"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
	"devri_backend/pkg/utils/jwt"
)

// ListSubscriptions returns every subscription with plan and client details
// for the admin subscriptions page.
func ListSubscriptions(c *fiber.Ctx) error {
	var subs []model.Subscription
	err := database.GetDB().
		Preload("Plan").
		Preload("User").
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscriptions",
		})
	}

	enriched := make([]fiber.Map, 0, len(subs))
	for _, sub := range subs {
		enriched = append(enriched, fiber.Map{
			"subscription":    sub,
			"client_name":     sub.User.FullName,
			"client_email":    sub.User.Email,
			"effective_price": sub.EffectiveMonthlyPrice(sub.Plan.PriceMXN),
		})
	}

	return c.JSON(fiber.Map{
		"subscriptions": enriched,
	})
}

type SubscriptionAdminInput struct {
	ActualMonthlyPrice *float64 `json:"actual_monthly_price"`
	Note               *string  `json:"note"`
}

// UpdateSubscription lets an admin adjust the negotiated price and note.
// Only these two fields are admin-editable; everything else is owned by the
// webhook reconciler.
func UpdateSubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	if err := database.GetDB().First(&sub, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found",
		})
	}

	input := new(SubscriptionAdminInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{}
	if input.ActualMonthlyPrice != nil {
		updates["actual_monthly_price"] = *input.ActualMonthlyPrice
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.GetDB().Model(&sub).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update subscription",
		})
	}

	logActivity(&claims.UserID, "subscription.admin_update", "Subscription fields adjusted", map[string]interface{}{
		"subscription_id": sub.ID,
	})

	return c.JSON(fiber.Map{
		"success":      true,
		"subscription": sub,
	})
}
