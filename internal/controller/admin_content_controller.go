package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
)

// Service category management

type ServiceCategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Callout     string `json:"callout"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	ParentID    *uint  `json:"parent_id"`
	OrderIndex  int    `json:"order_index"`
	DemoSlug    string `json:"demo_slug"`
	Status      string `json:"status"`
}

func AdminListServiceCategories(c *fiber.Ctx) error {
	var categories []model.ServiceCategory
	if err := database.GetDB().Order("order_index ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch service categories",
		})
	}
	return c.JSON(categories)
}

func AdminCreateServiceCategory(c *fiber.Ctx) error {
	input := new(ServiceCategoryInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and type are required",
		})
	}
	if input.Type != model.CategoryTypePrimary && input.Type != model.CategoryTypeSecondary {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type must be primary or secondary",
		})
	}
	if input.Type == model.CategoryTypeSecondary && input.ParentID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Secondary categories require a parent",
		})
	}

	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(input.Name)
	}
	status := input.Status
	if status == "" {
		status = model.CategoryStatusActive
	}

	category := model.ServiceCategory{
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		Callout:     input.Callout,
		Icon:        input.Icon,
		Type:        input.Type,
		ParentID:    input.ParentID,
		OrderIndex:  input.OrderIndex,
		DemoSlug:    input.DemoSlug,
		Status:      status,
	}

	if err := database.GetDB().Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func AdminUpdateServiceCategory(c *fiber.Ctx) error {
	var category model.ServiceCategory
	if err := database.GetDB().First(&category, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	input := new(ServiceCategoryInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"slug":        input.Slug,
		"description": input.Description,
		"callout":     input.Callout,
		"icon":        input.Icon,
		"type":        input.Type,
		"parent_id":   input.ParentID,
		"order_index": input.OrderIndex,
		"demo_slug":   input.DemoSlug,
		"status":      input.Status,
	}

	if err := database.GetDB().Model(&category).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update category",
		})
	}

	return c.JSON(category)
}

func AdminDeleteServiceCategory(c *fiber.Ctx) error {
	var category model.ServiceCategory
	if err := database.GetDB().First(&category, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	if err := database.GetDB().Delete(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete category",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// FAQ management

func AdminListFAQs(c *fiber.Ctx) error {
	var faqs []model.FAQ
	if err := database.GetDB().Order("order_index ASC").Find(&faqs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch FAQs",
		})
	}
	return c.JSON(faqs)
}

func AdminCreateFAQ(c *fiber.Ctx) error {
	faq := new(model.FAQ)
	if err := c.BodyParser(faq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if faq.Question == "" || faq.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question and answer are required",
		})
	}

	if err := database.GetDB().Create(faq).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create FAQ",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

func AdminUpdateFAQ(c *fiber.Ctx) error {
	var faq model.FAQ
	if err := database.GetDB().First(&faq, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "FAQ not found",
		})
	}

	input := new(model.FAQ)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	err := database.GetDB().Model(&faq).Updates(map[string]interface{}{
		"question":    input.Question,
		"answer":      input.Answer,
		"order_index": input.OrderIndex,
		"is_active":   input.IsActive,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update FAQ",
		})
	}
	return c.JSON(faq)
}

func AdminDeleteFAQ(c *fiber.Ctx) error {
	if err := database.GetDB().Delete(&model.FAQ{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete FAQ",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Testimonial management

func AdminListTestimonials(c *fiber.Ctx) error {
	var testimonials []model.Testimonial
	if err := database.GetDB().Order("order_index ASC").Find(&testimonials).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch testimonials",
		})
	}
	return c.JSON(testimonials)
}

func AdminCreateTestimonial(c *fiber.Ctx) error {
	testimonial := new(model.Testimonial)
	if err := c.BodyParser(testimonial); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if testimonial.Name == "" || testimonial.Quote == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and quote are required",
		})
	}
	if testimonial.Rating < 1 || testimonial.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	if err := database.GetDB().Create(testimonial).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create testimonial",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(testimonial)
}

func AdminUpdateTestimonial(c *fiber.Ctx) error {
	var testimonial model.Testimonial
	if err := database.GetDB().First(&testimonial, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Testimonial not found",
		})
	}

	input := new(model.Testimonial)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	err := database.GetDB().Model(&testimonial).Updates(map[string]interface{}{
		"name":          input.Name,
		"business_name": input.BusinessName,
		"rating":        input.Rating,
		"quote":         input.Quote,
		"image_url":     input.ImageURL,
		"order_index":   input.OrderIndex,
		"is_active":     input.IsActive,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update testimonial",
		})
	}
	return c.JSON(testimonial)
}

func AdminDeleteTestimonial(c *fiber.Ctx) error {
	if err := database.GetDB().Delete(&model.Testimonial{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete testimonial",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Client logo management

func AdminListClientLogos(c *fiber.Ctx) error {
	var logos []model.ClientLogo
	if err := database.GetDB().Order("order_index ASC").Find(&logos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch client logos",
		})
	}
	return c.JSON(logos)
}

func AdminCreateClientLogo(c *fiber.Ctx) error {
	logo := new(model.ClientLogo)
	if err := c.BodyParser(logo); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if logo.Name == "" || logo.LogoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and logo URL are required",
		})
	}

	if err := database.GetDB().Create(logo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create client logo",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(logo)
}

func AdminDeleteClientLogo(c *fiber.Ctx) error {
	if err := database.GetDB().Delete(&model.ClientLogo{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete client logo",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Site config management

type SiteConfigInput struct {
	Value datatypes.JSON `json:"value"`
}

func AdminUpsertSiteConfig(c *fiber.Ctx) error {
	key := c.Params("key")

	input := new(SiteConfigInput)
	if err := c.BodyParser(input); err != nil || len(input.Value) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Value is required",
		})
	}

	db := database.GetDB()

	var config model.SiteConfig
	if err := db.Where("key = ?", key).First(&config).Error; err != nil {
		config = model.SiteConfig{Key: key, Value: input.Value}
		if err := db.Create(&config).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save config",
			})
		}
	} else {
		if err := db.Model(&config).Update("value", input.Value).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save config",
			})
		}
	}

	return c.JSON(fiber.Map{
		"key":   config.Key,
		"value": config.Value,
	})
}
