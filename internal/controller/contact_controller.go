package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
	"devri_backend/pkg/email"
)

type ContactFormInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	BusinessType string `json:"business_type"`
	Message      string `json:"message"`
}

func SubmitContactForm(c *fiber.Ctx) error {
	input := new(ContactFormInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	message := input.Message
	if message == "" {
		message = "Sin mensaje"
	}

	form := model.ContactForm{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		BusinessType: input.BusinessType,
		Message:      message,
		Status:       model.ContactFormStatusNew,
	}

	if err := database.GetDB().Create(&form).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save contact form",
		})
	}

	// Notification must not fail the submission
	if email.GlobalEmailService != nil {
		err := email.GlobalEmailService.SendContactFormNotification(email.ContactFormNotificationData{
			Name:         input.Name,
			Email:        input.Email,
			Phone:        input.Phone,
			BusinessType: input.BusinessType,
			Message:      message,
		})
		if err != nil {
			log.Printf("Could not send contact form notification: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Contact form submitted successfully",
		"data":    form,
	})
}

// Admin triage endpoints

func ListContactForms(c *fiber.Ctx) error {
	var forms []model.ContactForm
	query := database.GetDB().Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&forms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch contact forms",
		})
	}

	return c.JSON(forms)
}

type ContactFormUpdateInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func UpdateContactForm(c *fiber.Ctx) error {
	input := new(ContactFormUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var form model.ContactForm
	if err := database.GetDB().First(&form, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Contact form not found",
		})
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.GetDB().Model(&form).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update contact form",
		})
	}

	return c.JSON(form)
}
