package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"devri_backend/pkg/utils/cloudflare"
	"devri_backend/pkg/utils/image"
)

var allowedUploadFolders = map[string]bool{
	"testimonials": true,
	"logos":        true,
}

// UploadContentImage receives an admin image upload (testimonial photos,
// client logos), re-encodes it and stores it in R2.
func UploadContentImage(c *fiber.Ctx) error {
	folder := c.FormValue("folder")
	if !allowedUploadFolders[folder] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Folder must be one of: testimonials, logos",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	processed, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := cloudflare.UploadContentImage(cloudflare.UploadImageConfig{
		Body:        processed,
		ContentType: contentType,
		Filename:    file.Filename,
		Folder:      folder,
	})
	if err != nil {
		log.Printf("Could not upload content image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	return c.JSON(fiber.Map{
		"url": result.URL,
	})
}
