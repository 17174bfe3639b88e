package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
	"devri_backend/pkg/subscription"
	"devri_backend/pkg/utils/jwt"
)

// GetMySubscription returns the caller's subscription with plan details and
// the feature entitlements of the plan tier.
func GetMySubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	err := database.GetDB().
		Where("user_id = ?", claims.UserID).
		Preload("Plan").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No subscription found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscription",
		})
	}

	tier := subscription.TierFromSlug(sub.Plan.Slug)
	limits := subscription.GetTierLimits(tier)

	return c.JSON(fiber.Map{
		"subscription": sub,
		"entitlements": fiber.Map{
			"tier":              tier,
			"max_pages":         limits.MaxPages,
			"monthly_revisions": limits.MonthlyRevisions,
			"features":          limits.AllowedFeatures,
		},
	})
}

func GetMyWebsite(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var website model.ClientWebsite
	err := database.GetDB().Where("user_id = ?", claims.UserID).First(&website).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No website found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch website",
		})
	}

	return c.JSON(website)
}

type ProfileUpdateInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(ProfileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{}
	if input.FullName != "" {
		updates["full_name"] = input.FullName
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update profile",
			})
		}
	}

	return c.JSON(user.GetPublicProfile())
}

type OnboardingInput struct {
	BusinessType        string `json:"business_type" validate:"required"`
	BusinessSubsector   string `json:"business_subsector"`
	BusinessDescription string `json:"business_description"`
}

func CompleteOnboarding(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(OnboardingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.BusinessType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Business type is required",
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	err := database.GetDB().Model(&user).Updates(map[string]interface{}{
		"business_type":        input.BusinessType,
		"business_subsector":   input.BusinessSubsector,
		"business_description": input.BusinessDescription,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save onboarding data",
		})
	}

	logActivity(&user.ID, "user.onboarded", "Onboarding completed", map[string]interface{}{
		"business_type": input.BusinessType,
	})

	return c.JSON(user.GetPublicProfile())
}
