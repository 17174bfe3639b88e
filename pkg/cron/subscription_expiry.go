package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"devri_backend/internal/model"
	"devri_backend/pkg/database"
	"devri_backend/pkg/email"
)

func InitSubscriptionExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		checkEndingSubscriptions()
		remindPastDueSubscriptions()
	})

	if err != nil {
		log.Printf("Could not initialize subscription expiry cron: %v", err)
		return
	}

	c.Start()
}

// checkEndingSubscriptions warns clients whose subscription is set to cancel
// at the end of the current period.
func checkEndingSubscriptions() {
	log.Println("Checking for subscriptions ending soon...")

	warningDays := []int{7, 3}

	for _, days := range warningDays {
		dayStart := time.Now().UTC().AddDate(0, 0, days).Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)

		var subs []model.Subscription
		err := database.DB.
			Where("cancel_at_period_end = ? AND status = ?", true, model.SubscriptionStatusActive).
			Where("current_period_end >= ? AND current_period_end < ?", dayStart, dayEnd).
			Preload("User").
			Preload("Plan").
			Find(&subs).Error
		if err != nil {
			log.Printf("Error fetching ending subscriptions: %v", err)
			continue
		}

		log.Printf("Found %d subscriptions ending in %d days", len(subs), days)

		for _, sub := range subs {
			if email.GlobalEmailService == nil || sub.CurrentPeriodEnd == nil {
				continue
			}
			err := email.GlobalEmailService.SendSubscriptionExpiryWarning(
				sub.User.Email,
				sub.User.FullName,
				sub.Plan.Name,
				*sub.CurrentPeriodEnd,
				days,
			)
			if err != nil {
				log.Printf("Error sending expiry warning to %s: %v", sub.User.Email, err)
			}
		}
	}
}

// remindPastDueSubscriptions nudges clients whose latest payment failed.
// Stripe keeps retrying the charge; this is just a heads-up.
func remindPastDueSubscriptions() {
	var subs []model.Subscription
	err := database.DB.
		Where("status = ?", model.SubscriptionStatusPastDue).
		Preload("User").
		Preload("Plan").
		Find(&subs).Error
	if err != nil {
		log.Printf("Error fetching past due subscriptions: %v", err)
		return
	}

	log.Printf("Found %d past due subscriptions", len(subs))

	for _, sub := range subs {
		if email.GlobalEmailService == nil || sub.CurrentPeriodEnd == nil {
			continue
		}
		err := email.GlobalEmailService.SendSubscriptionExpiryWarning(
			sub.User.Email,
			sub.User.FullName,
			sub.Plan.Name,
			*sub.CurrentPeriodEnd,
			0,
		)
		if err != nil {
			log.Printf("Error sending past due reminder to %s: %v", sub.User.Email, err)
		}
	}
}
