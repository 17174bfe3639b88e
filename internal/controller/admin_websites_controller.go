package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
	"devri_backend/pkg/utils/jwt"
)

type WebsiteUpdateInput struct {
	URL    *string `json:"url"`
	Status *string `json:"status"`
}

func validWebsiteStatus(status string) bool {
	switch status {
	case model.WebsiteStatusPending, model.WebsiteStatusDevelopment, model.WebsiteStatusPublished:
		return true
	}
	return false
}

// UpsertClientWebsite creates or updates a client's website record. The
// first transition to published stamps PublishedAt.
func UpsertClientWebsite(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, c.Params("userId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	input := new(WebsiteUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.URL == nil && input.Status == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}
	if input.Status != nil && !validWebsiteStatus(*input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid website status",
		})
	}

	db := database.GetDB()
	now := time.Now().UTC()

	var website model.ClientWebsite
	err := db.Where("user_id = ?", user.ID).First(&website).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		website = model.ClientWebsite{
			UserID:     user.ID,
			Status:     model.WebsiteStatusPending,
			AssignedAt: &now,
		}
		if input.URL != nil {
			website.URL = *input.URL
		}
		if input.Status != nil {
			website.Status = *input.Status
			if *input.Status == model.WebsiteStatusPublished {
				website.PublishedAt = &now
			}
		}
		if err := db.Create(&website).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create website record",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch website record",
		})
	} else {
		updates := map[string]interface{}{}
		if input.URL != nil {
			updates["url"] = *input.URL
		}
		if input.Status != nil {
			updates["status"] = *input.Status
			if *input.Status == model.WebsiteStatusPublished && website.PublishedAt == nil {
				updates["published_at"] = &now
			}
		}
		if err := db.Model(&website).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update website record",
			})
		}
	}

	logActivity(&claims.UserID, "website.admin_update", "Client website updated", map[string]interface{}{
		"client_id": user.ID,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"website": website,
	})
}
