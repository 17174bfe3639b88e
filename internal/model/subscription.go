package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusIncomplete = "incomplete"
	SubscriptionStatusTrialing   = "trialing"
)

// Subscription mirrors the Stripe-side subscription for a user. One row per
// user; cancellation is a status transition, the row is never removed.
type Subscription struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	PlanID uint `json:"plan_id" gorm:"not null"`

	StripeSubscriptionID string `json:"stripe_subscription_id" gorm:"index"`
	StripeCustomerID     string `json:"stripe_customer_id"`

	Status             string     `json:"status" gorm:"default:'incomplete'"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end" gorm:"default:false"`
	CanceledAt         *time.Time `json:"canceled_at"`

	// Admin-negotiated price override; when set it wins over the plan's
	// list price for revenue reporting and display.
	ActualMonthlyPrice *float64 `json:"actual_monthly_price"`
	Note               *string  `json:"note"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Plan Plan `json:"plan" gorm:"foreignKey:PlanID"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}

// EffectiveMonthlyPrice returns the price used for revenue reporting:
// the admin override when present, otherwise the plan list price.
func (s *Subscription) EffectiveMonthlyPrice(planListPrice float64) float64 {
	if s.ActualMonthlyPrice != nil {
		return *s.ActualMonthlyPrice
	}
	return planListPrice
}
