package controller

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devri_backend/internal/model"
	"devri_backend/pkg/billing"
)

const testWebhookSecret = "whsec_test_secret"

func openControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Plan{}, &model.Subscription{}))
	return db
}

func newWebhookApp(t *testing.T, db *gorm.DB, secret string) *fiber.App {
	t.Helper()
	reconciler := billing.NewReconciler(
		billing.NewSubscriptionStore(db),
		billing.NewPlanStore(db),
		nil,
		nil,
	)
	bc := NewBillingController(db, nil, reconciler, secret, "https://devri.com.mx")

	app := fiber.New()
	app.Post("/api/webhook", bc.HandleStripeWebhook)
	return app
}

// signedRequest builds a webhook delivery carrying a valid Stripe-Signature
// header for the given payload and secret.
func signedRequest(payload []byte, secret string) *http.Request {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig))
	return req
}

func eventPayload(eventType, raw string) []byte {
	return []byte(fmt.Sprintf(`{"id":"evt_test_1","api_version":"2022-11-15","type":"%s","data":{"object":%s}}`, eventType, raw))
}

func TestWebhookAcceptsSignedEvent(t *testing.T) {
	app := newWebhookApp(t, openControllerTestDB(t), testWebhookSecret)

	payload := eventPayload("payment_method.updated", `{"id":"pm_1"}`)
	resp, err := app.Test(signedRequest(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"received":true}`, string(body))
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	app := newWebhookApp(t, openControllerTestDB(t), testWebhookSecret)

	payload := eventPayload("payment_method.updated", `{"id":"pm_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	app := newWebhookApp(t, openControllerTestDB(t), testWebhookSecret)

	payload := eventPayload("payment_method.updated", `{"id":"pm_1"}`)
	req := signedRequest(payload, testWebhookSecret)

	// Swap the body after signing; verification must fail
	tampered := eventPayload("customer.subscription.deleted", `{"id":"sub_1"}`)
	req.Body = io.NopCloser(bytes.NewReader(tampered))
	req.ContentLength = int64(len(tampered))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	app := newWebhookApp(t, openControllerTestDB(t), testWebhookSecret)

	payload := eventPayload("payment_method.updated", `{"id":"pm_1"}`)
	resp, err := app.Test(signedRequest(payload, "whsec_other_secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhookFailsClosedWithoutSecret(t *testing.T) {
	app := newWebhookApp(t, openControllerTestDB(t), "")

	payload := eventPayload("payment_method.updated", `{"id":"pm_1"}`)
	resp, err := app.Test(signedRequest(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWebhookReturns500OnReconcilerFailure(t *testing.T) {
	// A database without migrated tables makes the store lookup fail,
	// which must surface as a 500 so Stripe redelivers.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	app := newWebhookApp(t, db, testWebhookSecret)

	payload := eventPayload("customer.subscription.updated", `{"id":"sub_1","status":"past_due"}`)
	resp, err := app.Test(signedRequest(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWebhookProcessesSubscriptionDeleted(t *testing.T) {
	db := openControllerTestDB(t)
	user := model.User{Email: "cliente@example.com", Password: "x", FullName: "Cliente", Role: model.RoleClient}
	require.NoError(t, db.Create(&user).Error)
	plan := model.Plan{Name: "Básico", Slug: "basico", PriceMXN: 500, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	sub := model.Subscription{
		UserID:               user.ID,
		PlanID:               plan.ID,
		StripeSubscriptionID: "sub_del_1",
		Status:               model.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(&sub).Error)

	app := newWebhookApp(t, db, testWebhookSecret)

	payload := eventPayload("customer.subscription.deleted", `{"id":"sub_del_1","status":"canceled"}`)
	resp, err := app.Test(signedRequest(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, model.SubscriptionStatusCanceled, got.Status)
	assert.NotNil(t, got.CanceledAt)
}
