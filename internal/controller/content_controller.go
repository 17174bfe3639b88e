package controller

import (
	"github.com/gofiber/fiber/v2"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
)

// GetServiceCategories returns active categories organized as a two-level
// tree: primary categories with their secondary children nested.
func GetServiceCategories(c *fiber.Ctx) error {
	var categories []model.ServiceCategory
	err := database.GetDB().
		Where("status = ?", model.CategoryStatusActive).
		Order("order_index ASC").
		Find(&categories).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch service categories",
		})
	}

	return c.JSON(BuildCategoryTree(categories))
}

// BuildCategoryTree nests secondary categories under their primary parent.
// Secondary rows with a missing or inactive parent are dropped.
func BuildCategoryTree(categories []model.ServiceCategory) []model.ServiceCategory {
	primaries := make([]model.ServiceCategory, 0)
	children := make(map[uint][]model.ServiceCategory)

	for _, cat := range categories {
		if cat.Type == model.CategoryTypeSecondary && cat.ParentID != nil {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat)
		}
	}
	for _, cat := range categories {
		if cat.Type == model.CategoryTypePrimary {
			cat.Children = children[cat.ID]
			primaries = append(primaries, cat)
		}
	}
	return primaries
}

func ListPlans(c *fiber.Ctx) error {
	var plans []model.Plan
	err := database.GetDB().
		Where("is_active = ?", true).
		Order("order_index ASC").
		Find(&plans).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscription plans",
		})
	}

	return c.JSON(plans)
}

func GetFAQs(c *fiber.Ctx) error {
	var faqs []model.FAQ
	err := database.GetDB().
		Where("is_active = ?", true).
		Order("order_index ASC").
		Find(&faqs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch FAQs",
		})
	}

	return c.JSON(faqs)
}

func GetTestimonials(c *fiber.Ctx) error {
	var testimonials []model.Testimonial
	err := database.GetDB().
		Where("is_active = ?", true).
		Order("order_index ASC").
		Find(&testimonials).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch testimonials",
		})
	}

	return c.JSON(testimonials)
}

func GetClientLogos(c *fiber.Ctx) error {
	var logos []model.ClientLogo
	err := database.GetDB().
		Where("is_active = ?", true).
		Order("order_index ASC").
		Find(&logos).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch client logos",
		})
	}

	return c.JSON(logos)
}

func GetSiteConfig(c *fiber.Ctx) error {
	key := c.Params("key")

	var config model.SiteConfig
	if err := database.GetDB().Where("key = ?", key).First(&config).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Config key not found",
		})
	}

	return c.JSON(fiber.Map{
		"key":   config.Key,
		"value": config.Value,
	})
}
