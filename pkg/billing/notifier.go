package billing

import (
	"log"

	"gorm.io/gorm"

	"devri_backend/internal/model"
	"devri_backend/pkg/email"
)

// EmailNotifier sends subscription lifecycle emails. All failures are logged
// and swallowed so a broken mail provider never fails reconciliation.
type EmailNotifier struct {
	db     *gorm.DB
	emails *email.EmailService
}

func NewEmailNotifier(db *gorm.DB, emails *email.EmailService) *EmailNotifier {
	return &EmailNotifier{db: db, emails: emails}
}

func (n *EmailNotifier) SubscriptionStarted(sub *model.Subscription, plan *model.Plan) {
	if n.emails == nil {
		return
	}

	var user model.User
	if err := n.db.First(&user, sub.UserID).Error; err != nil {
		log.Printf("Could not load user %d for subscription email: %v", sub.UserID, err)
		return
	}

	price := sub.EffectiveMonthlyPrice(plan.PriceMXN)
	if err := n.emails.SendSubscriptionStartedEmail(user.Email, user.FullName, plan.Name, price, sub.CurrentPeriodEnd); err != nil {
		log.Printf("Could not send subscription started email to %s: %v", user.Email, err)
	}
}

func (n *EmailNotifier) SubscriptionCanceled(sub *model.Subscription) {
	if n.emails == nil {
		return
	}

	var user model.User
	if err := n.db.First(&user, sub.UserID).Error; err != nil {
		log.Printf("Could not load user %d for cancellation email: %v", sub.UserID, err)
		return
	}

	var plan model.Plan
	planName := ""
	if err := n.db.First(&plan, sub.PlanID).Error; err == nil {
		planName = plan.Name
	}

	if err := n.emails.SendSubscriptionCanceledEmail(user.Email, user.FullName, planName, sub.CurrentPeriodEnd); err != nil {
		log.Printf("Could not send cancellation email to %s: %v", user.Email, err)
	}
}
