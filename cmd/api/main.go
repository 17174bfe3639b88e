package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"devri_backend/internal/controller"
	"devri_backend/internal/middleware"
	"devri_backend/internal/model"
	"devri_backend/pkg/billing"
	"devri_backend/pkg/config"
	"devri_backend/pkg/cron"
	"devri_backend/pkg/database"
	"devri_backend/pkg/email"
	"devri_backend/pkg/seed"
)

func setupRoutes(app *fiber.App, billingCtrl *controller.BillingController) {
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	api.Get("/me", middleware.AuthMiddleware(), controller.GetMe)

	// Public marketing content
	content := api.Group("/content")
	content.Get("/services", controller.GetServiceCategories)
	content.Get("/plans", controller.ListPlans)
	content.Get("/faqs", controller.GetFAQs)
	content.Get("/testimonials", controller.GetTestimonials)
	content.Get("/logos", controller.GetClientLogos)
	content.Get("/config/:key", controller.GetSiteConfig)

	api.Post("/contact", controller.SubmitContactForm)

	// Client dashboard
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/subscription", controller.GetMySubscription)
	dashboard.Get("/website", controller.GetMyWebsite)
	dashboard.Put("/profile", controller.UpdateProfile)
	dashboard.Post("/onboarding", controller.CompleteOnboarding)

	// Billing
	billingRoutes := api.Group("/billing", middleware.AuthMiddleware())
	billingRoutes.Post("/create-checkout-session", billingCtrl.CreateCheckoutSession)
	billingRoutes.Post("/create-portal-session", billingCtrl.CreatePortalSession)

	// Stripe webhook (unauthenticated; verified by signature)
	api.Post("/webhook", billingCtrl.HandleStripeWebhook)

	// Admin panel
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
	admin.Get("/stats", controller.GetAdminStats)
	admin.Get("/clients", controller.ListClients)

	admin.Get("/services", controller.AdminListServiceCategories)
	admin.Post("/services", controller.AdminCreateServiceCategory)
	admin.Put("/services/:id", controller.AdminUpdateServiceCategory)
	admin.Delete("/services/:id", controller.AdminDeleteServiceCategory)

	admin.Get("/faqs", controller.AdminListFAQs)
	admin.Post("/faqs", controller.AdminCreateFAQ)
	admin.Put("/faqs/:id", controller.AdminUpdateFAQ)
	admin.Delete("/faqs/:id", controller.AdminDeleteFAQ)

	admin.Get("/testimonials", controller.AdminListTestimonials)
	admin.Post("/testimonials", controller.AdminCreateTestimonial)
	admin.Put("/testimonials/:id", controller.AdminUpdateTestimonial)
	admin.Delete("/testimonials/:id", controller.AdminDeleteTestimonial)

	admin.Get("/logos", controller.AdminListClientLogos)
	admin.Post("/logos", controller.AdminCreateClientLogo)
	admin.Delete("/logos/:id", controller.AdminDeleteClientLogo)

	admin.Put("/config/:key", controller.AdminUpsertSiteConfig)

	admin.Get("/subscriptions", controller.ListSubscriptions)
	admin.Patch("/subscriptions/:id", controller.UpdateSubscription)

	admin.Patch("/websites/:userId", controller.UpsertClientWebsite)

	admin.Get("/contact-forms", controller.ListContactForms)
	admin.Patch("/contact-forms/:id", controller.UpdateContactForm)

	admin.Post("/uploads/content-image", controller.UploadContentImage)
}

func main() {
	cfg := config.Load()

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.AdminInbox); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, emails disabled")
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Plan{},
		&model.Subscription{},
		&model.ServiceCategory{},
		&model.ClientWebsite{},
		&model.ContactForm{},
		&model.Testimonial{},
		&model.FAQ{},
		&model.ClientLogo{},
		&model.SiteConfig{},
		&model.ActivityLog{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	db := database.GetDB()
	seed.SeedPlans(db)
	seed.SeedServiceCategories(db)
	seed.SeedSiteConfig(db)

	// Billing wiring: explicit clients, no package-global Stripe state
	stripeClient := billing.NewClient(cfg.Stripe.SecretKey)
	reconciler := billing.NewReconciler(
		billing.NewSubscriptionStore(db),
		billing.NewPlanStore(db),
		stripeClient,
		billing.NewEmailNotifier(db, email.GlobalEmailService),
	)
	billingCtrl := controller.NewBillingController(db, stripeClient, reconciler, cfg.Stripe.WebhookSecret, cfg.AppURL)

	cron.InitSubscriptionExpiryCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, billingCtrl)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
