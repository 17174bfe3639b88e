package controller

import (
	"encoding/json"
	"log"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
)

// logActivity records an audit entry. Best effort: a failed insert is logged
// and never fails the request that triggered it.
func logActivity(userID *uint, action, description string, metadata map[string]interface{}) {
	entry := model.ActivityLog{
		UserID:      userID,
		Action:      action,
		Description: description,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = raw
		}
	}

	if err := database.GetDB().Create(&entry).Error; err != nil {
		log.Printf("Could not record activity %q: %v", action, err)
	}
}
