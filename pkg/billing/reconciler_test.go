package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"

	"devri_backend/internal/model"
)

type fakeRetriever struct {
	sub *stripe.Subscription
	err error
}

func (f *fakeRetriever) GetSubscription(id string) (*stripe.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

type recordingNotifier struct {
	started  int
	canceled int
}

func (n *recordingNotifier) SubscriptionStarted(sub *model.Subscription, plan *model.Plan) {
	n.started++
}

func (n *recordingNotifier) SubscriptionCanceled(sub *model.Subscription) {
	n.canceled++
}

type failingStore struct{}

func (failingStore) FindByStripeID(string) (*model.Subscription, error) {
	return nil, errors.New("store unreachable")
}
func (failingStore) FindByUserAndPlan(uint, uint) (*model.Subscription, error) {
	return nil, errors.New("store unreachable")
}
func (failingStore) Create(*model.Subscription) error { return errors.New("store unreachable") }
func (failingStore) Update(uint, map[string]interface{}) error {
	return errors.New("store unreachable")
}

func makeEvent(t *testing.T, eventType string, payload interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return stripe.Event{
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func seedPlan(t *testing.T, db *gorm.DB, price float64) model.Plan {
	t.Helper()
	plan := model.Plan{Name: "Básico", Slug: fmt.Sprintf("basico-%.0f", price), PriceMXN: price, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

func seedUser(t *testing.T, db *gorm.DB) model.User {
	t.Helper()
	user := model.User{Email: "cliente@example.com", Password: "x", FullName: "Cliente Uno", Role: model.RoleClient}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newTestReconciler(t *testing.T, db *gorm.DB, retriever SubscriptionRetriever, notifier Notifier) *Reconciler {
	t.Helper()
	return NewReconciler(NewSubscriptionStore(db), NewPlanStore(db), retriever, notifier)
}

func checkoutEvent(t *testing.T, userID, planID uint) stripe.Event {
	return makeEvent(t, EventCheckoutCompleted, map[string]interface{}{
		"id":           "cs_test_1",
		"subscription": "sub_123",
		"metadata": map[string]string{
			"userId": fmt.Sprintf("%d", userID),
			"planId": fmt.Sprintf("%d", planID),
		},
	})
}

func stripeSubscription(status string) *stripe.Subscription {
	return &stripe.Subscription{
		ID:                 "sub_123",
		Customer:           &stripe.Customer{ID: "cus_123"},
		Status:             stripe.SubscriptionStatus(status),
		CurrentPeriodStart: 1700000000,
		CurrentPeriodEnd:   1702592000,
	}
}

func TestCheckoutCompletedCreatesSubscription(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	notifier := &recordingNotifier{}
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, notifier)

	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	var sub model.Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
	assert.Equal(t, plan.ID, sub.PlanID)
	assert.Equal(t, "sub_123", sub.StripeSubscriptionID)
	assert.Equal(t, "cus_123", sub.StripeCustomerID)
	assert.Equal(t, model.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.CurrentPeriodStart)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.True(t, sub.CurrentPeriodEnd.After(*sub.CurrentPeriodStart))
	require.NotNil(t, sub.ActualMonthlyPrice)
	assert.Equal(t, 500.0, *sub.ActualMonthlyPrice)
	assert.Equal(t, 1, notifier.started)
}

func TestCheckoutCompletedMissingMetadataSkips(t *testing.T) {
	db := openTestDB(t)
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, nil)

	event := makeEvent(t, EventCheckoutCompleted, map[string]interface{}{
		"id":           "cs_test_1",
		"subscription": "sub_123",
		"metadata":     map[string]string{},
	})
	require.NoError(t, r.HandleEvent(event))

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutCompletedUnknownPlanSkips(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, nil)

	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, 999)))

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutCompletedRetrieverFailurePropagates(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	r := newTestReconciler(t, db, &fakeRetriever{err: errors.New("stripe down")}, nil)

	assert.Error(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))
}

func TestCheckoutCompletedReplayKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, nil)

	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))
	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var sub model.Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
	assert.Equal(t, "sub_123", sub.StripeSubscriptionID)
	require.NotNil(t, sub.ActualMonthlyPrice)
	assert.Equal(t, 500.0, *sub.ActualMonthlyPrice)
}

func updatedEvent(t *testing.T, id string) stripe.Event {
	return makeEvent(t, EventSubscriptionUpdated, map[string]interface{}{
		"id":                   id,
		"status":               "past_due",
		"current_period_start": 1702592000,
		"current_period_end":   1705270400,
		"cancel_at_period_end": true,
	})
}

func TestSubscriptionUpdatedAppliesFields(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, nil)
	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	require.NoError(t, r.HandleEvent(updatedEvent(t, "sub_123")))

	var sub model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&sub).Error)
	assert.Equal(t, model.SubscriptionStatusPastDue, sub.Status)
	assert.True(t, sub.CancelAtPeriodEnd)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, int64(1705270400), sub.CurrentPeriodEnd.Unix())
}

func TestSubscriptionUpdatedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, nil)
	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	require.NoError(t, r.HandleEvent(updatedEvent(t, "sub_123")))
	var first model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&first).Error)

	require.NoError(t, r.HandleEvent(updatedEvent(t, "sub_123")))
	var second model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&second).Error)

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.CurrentPeriodStart.Unix(), second.CurrentPeriodStart.Unix())
	assert.Equal(t, first.CurrentPeriodEnd.Unix(), second.CurrentPeriodEnd.Unix())
	assert.Equal(t, first.CancelAtPeriodEnd, second.CancelAtPeriodEnd)
}

func TestSubscriptionUpdatedOrphanSkips(t *testing.T) {
	db := openTestDB(t)
	r := newTestReconciler(t, db, &fakeRetriever{}, nil)

	require.NoError(t, r.HandleEvent(updatedEvent(t, "sub_orphan")))

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	assert.Zero(t, count)
}

func deletedEvent(t *testing.T, id string) stripe.Event {
	return makeEvent(t, EventSubscriptionDeleted, map[string]interface{}{
		"id":     id,
		"status": "canceled",
	})
}

func TestSubscriptionDeletedCancels(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	notifier := &recordingNotifier{}
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, notifier)
	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	var before model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&before).Error)

	require.NoError(t, r.HandleEvent(deletedEvent(t, "sub_123")))

	var sub model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&sub).Error)
	assert.Equal(t, model.SubscriptionStatusCanceled, sub.Status)
	require.NotNil(t, sub.CanceledAt)
	// the billing period is not touched by cancellation
	assert.Equal(t, before.CurrentPeriodEnd.Unix(), sub.CurrentPeriodEnd.Unix())
	assert.Equal(t, 1, notifier.canceled)
}

func TestSubscriptionDeletedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	notifier := &recordingNotifier{}
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, notifier)
	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	require.NoError(t, r.HandleEvent(deletedEvent(t, "sub_123")))
	var first model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&first).Error)

	require.NoError(t, r.HandleEvent(deletedEvent(t, "sub_123")))
	var second model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&second).Error)

	assert.Equal(t, model.SubscriptionStatusCanceled, second.Status)
	require.NotNil(t, second.CanceledAt)
	assert.Equal(t, first.CanceledAt.Unix(), second.CanceledAt.Unix())
	assert.Equal(t, 1, notifier.canceled)
}

func TestSubscriptionDeletedOrphanSkips(t *testing.T) {
	db := openTestDB(t)
	r := newTestReconciler(t, db, &fakeRetriever{}, nil)

	require.NoError(t, r.HandleEvent(deletedEvent(t, "sub_orphan")))
}

func TestInvoiceEventsDoNotMutateState(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, 500)
	r := newTestReconciler(t, db, &fakeRetriever{sub: stripeSubscription("active")}, nil)
	require.NoError(t, r.HandleEvent(checkoutEvent(t, user.ID, plan.ID)))

	var before model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&before).Error)

	invoice := map[string]interface{}{"id": "in_123", "subscription": "sub_123"}
	require.NoError(t, r.HandleEvent(makeEvent(t, EventInvoicePaymentSuccess, invoice)))
	require.NoError(t, r.HandleEvent(makeEvent(t, EventInvoicePaymentFailed, invoice)))

	var after model.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_123").First(&after).Error)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.UpdatedAt.Unix(), after.UpdatedAt.Unix())
}

func TestInvoiceEventsWithoutSubscription(t *testing.T) {
	db := openTestDB(t)
	r := newTestReconciler(t, db, &fakeRetriever{}, nil)

	event := makeEvent(t, EventInvoicePaymentFailed, map[string]interface{}{"id": "in_999"})
	require.NoError(t, r.HandleEvent(event))
}

func TestUnknownEventTypeIsAcknowledged(t *testing.T) {
	db := openTestDB(t)
	r := newTestReconciler(t, db, &fakeRetriever{}, nil)

	event := makeEvent(t, "payment_method.updated", map[string]interface{}{"id": "pm_1"})
	require.NoError(t, r.HandleEvent(event))
}

func TestStoreFailurePropagates(t *testing.T) {
	r := NewReconciler(failingStore{}, NewPlanStore(openTestDB(t)), &fakeRetriever{}, nil)

	err := r.HandleEvent(updatedEvent(t, "sub_123"))
	assert.Error(t, err)
}
