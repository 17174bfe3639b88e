package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"devri_backend/internal/model"
	"devri_backend/pkg/billing"
	"devri_backend/pkg/utils/jwt"
)

// BillingController owns the Stripe-facing endpoints. The Stripe client and
// reconciler are constructed at startup and injected, so tests can substitute
// fakes and no package-global billing state exists.
type BillingController struct {
	db            *gorm.DB
	stripe        *billing.Client
	reconciler    *billing.Reconciler
	webhookSecret string
	appURL        string
}

func NewBillingController(db *gorm.DB, stripeClient *billing.Client, reconciler *billing.Reconciler, webhookSecret, appURL string) *BillingController {
	return &BillingController{
		db:            db,
		stripe:        stripeClient,
		reconciler:    reconciler,
		webhookSecret: webhookSecret,
		appURL:        appURL,
	}
}

type CheckoutSessionInput struct {
	PlanID uint `json:"plan_id" validate:"required"`
}

// CreateCheckoutSession starts a Stripe checkout for the chosen plan. The
// internal user and plan ids are attached as metadata; the webhook relies on
// them to correlate the resulting subscription.
func (bc *BillingController) CreateCheckoutSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CheckoutSessionInput)
	if err := c.BodyParser(input); err != nil || input.PlanID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Plan ID is required",
		})
	}

	var plan model.Plan
	if err := bc.db.Where("id = ? AND is_active = ?", input.PlanID, true).First(&plan).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription plan not found",
		})
	}
	if plan.StripePriceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Plan is not available for online checkout",
		})
	}

	var user model.User
	if err := bc.db.First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	session, err := bc.stripe.CreateCheckoutSession(billing.CheckoutSessionInput{
		PriceID:       plan.StripePriceID,
		CustomerEmail: user.Email,
		SuccessURL:    bc.appURL + "/dashboard/subscription?success=true",
		CancelURL:     bc.appURL + "/dashboard/subscription?canceled=true",
		Metadata: map[string]string{
			"userId": fmt.Sprintf("%d", user.ID),
			"planId": fmt.Sprintf("%d", plan.ID),
		},
	})
	if err != nil {
		log.Printf("Could not create checkout session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"session_id": session.ID,
		"url":        session.URL,
	})
}

// CreatePortalSession opens the Stripe billing portal for the caller so they
// can manage payment methods and cancellation themselves.
func (bc *BillingController) CreatePortalSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	err := bc.db.Where("user_id = ?", claims.UserID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && sub.StripeCustomerID == "") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No billing account found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscription",
		})
	}

	session, err := bc.stripe.CreatePortalSession(sub.StripeCustomerID, bc.appURL+"/dashboard/subscription")
	if err != nil {
		log.Printf("Could not create portal session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create portal session",
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}

// HandleStripeWebhook terminates Stripe event deliveries. The raw body is
// handed to signature verification untouched; a re-serialized payload would
// not match the signature.
func (bc *BillingController) HandleStripeWebhook(c *fiber.Ctx) error {
	if bc.webhookSecret == "" {
		// Fail closed instead of processing unverified events
		log.Println("STRIPE_WEBHOOK_SECRET is not configured, rejecting event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook secret not configured",
		})
	}

	payload := c.Body()
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No signature found",
		})
	}

	event, err := webhook.ConstructEvent(payload, signature, bc.webhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	if err := bc.reconciler.HandleEvent(event); err != nil {
		// 500 signals Stripe to redeliver
		log.Printf("Error processing webhook %s: %v", event.Type, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook handler failed",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
