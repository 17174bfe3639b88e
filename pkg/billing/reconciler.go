package billing

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v74"

	"devri_backend/internal/model"
)

// Stripe event types handled by the reconciler.
const (
	EventCheckoutCompleted     = "checkout.session.completed"
	EventSubscriptionUpdated   = "customer.subscription.updated"
	EventSubscriptionDeleted   = "customer.subscription.deleted"
	EventInvoicePaymentSuccess = "invoice.payment_succeeded"
	EventInvoicePaymentFailed  = "invoice.payment_failed"
)

// Notifier carries the email side-effects of reconciliation. Implementations
// must be fire-and-forget: failures are logged, never returned.
type Notifier interface {
	SubscriptionStarted(sub *model.Subscription, plan *model.Plan)
	SubscriptionCanceled(sub *model.Subscription)
}

// Reconciler applies Stripe lifecycle events to the internal subscription
// record. Every handler uses set-semantics so redelivered events converge on
// the same end state, and updated/deleted key off the external subscription
// id because Stripe does not guarantee delivery order across event types.
type Reconciler struct {
	store    SubscriptionStore
	plans    PlanStore
	stripe   SubscriptionRetriever
	notifier Notifier // optional
}

func NewReconciler(store SubscriptionStore, plans PlanStore, retriever SubscriptionRetriever, notifier Notifier) *Reconciler {
	return &Reconciler{
		store:    store,
		plans:    plans,
		stripe:   retriever,
		notifier: notifier,
	}
}

// HandleEvent dispatches a verified event to its handler. A returned error
// means reconciliation failed and the sender should redeliver; benign skips
// (unknown types, missing correlation data, orphan events) return nil.
func (r *Reconciler) HandleEvent(event stripe.Event) error {
	switch event.Type {
	case EventCheckoutCompleted:
		return r.handleCheckoutCompleted(event)
	case EventSubscriptionUpdated:
		return r.handleSubscriptionUpdated(event)
	case EventSubscriptionDeleted:
		return r.handleSubscriptionDeleted(event)
	case EventInvoicePaymentSuccess, EventInvoicePaymentFailed:
		return r.handleInvoiceEvent(event)
	default:
		log.Printf("Unhandled Stripe event type: %s", event.Type)
		return nil
	}
}

func (r *Reconciler) handleCheckoutCompleted(event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("could not parse checkout session: %w", err)
	}

	userID, planID, ok := correlationIDs(session.Metadata)
	if !ok {
		log.Printf("Checkout session %s is missing userId/planId metadata, skipping", session.ID)
		return nil
	}
	if session.Subscription == nil || session.Subscription.ID == "" {
		log.Printf("Checkout session %s has no subscription attached, skipping", session.ID)
		return nil
	}

	stripeSub, err := r.stripe.GetSubscription(session.Subscription.ID)
	if err != nil {
		return fmt.Errorf("could not retrieve subscription %s: %w", session.Subscription.ID, err)
	}

	plan, err := r.plans.FindByID(planID)
	if err != nil {
		return fmt.Errorf("could not load plan %d: %w", planID, err)
	}
	if plan == nil {
		log.Printf("Checkout session %s references unknown plan %d, skipping", session.ID, planID)
		return nil
	}

	customerID := ""
	if stripeSub.Customer != nil {
		customerID = stripeSub.Customer.ID
	}

	// The plan list price is recorded as the initial override so later
	// admin edits work the same for discounted and full-price clients.
	listPrice := plan.PriceMXN

	existing, err := r.store.FindByUserAndPlan(userID, planID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Redelivered completion: re-apply the same field set.
		err = r.store.Update(existing.ID, map[string]interface{}{
			"stripe_subscription_id": stripeSub.ID,
			"stripe_customer_id":     customerID,
			"status":                 string(stripeSub.Status),
			"current_period_start":   TimeFromEpoch(stripeSub.CurrentPeriodStart),
			"current_period_end":     TimeFromEpoch(stripeSub.CurrentPeriodEnd),
			"actual_monthly_price":   listPrice,
		})
		if err != nil {
			return err
		}
		log.Printf("Subscription for user %d re-applied from checkout %s", userID, session.ID)
		return nil
	}

	sub := &model.Subscription{
		UserID:               userID,
		PlanID:               planID,
		StripeSubscriptionID: stripeSub.ID,
		StripeCustomerID:     customerID,
		Status:               string(stripeSub.Status),
		CurrentPeriodStart:   TimeFromEpoch(stripeSub.CurrentPeriodStart),
		CurrentPeriodEnd:     TimeFromEpoch(stripeSub.CurrentPeriodEnd),
		ActualMonthlyPrice:   &listPrice,
	}
	if err := r.store.Create(sub); err != nil {
		return err
	}

	log.Printf("Subscription created for user %d on plan %s", userID, plan.Slug)

	if r.notifier != nil {
		r.notifier.SubscriptionStarted(sub, plan)
	}
	return nil
}

func (r *Reconciler) handleSubscriptionUpdated(event stripe.Event) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return fmt.Errorf("could not parse subscription: %w", err)
	}

	sub, err := r.store.FindByStripeID(stripeSub.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		// Updates can arrive before the checkout-completed event; Stripe
		// will redeliver once the row exists.
		log.Printf("No subscription matches %s, skipping update", stripeSub.ID)
		return nil
	}

	err = r.store.Update(sub.ID, map[string]interface{}{
		"status":               string(stripeSub.Status),
		"current_period_start": TimeFromEpoch(stripeSub.CurrentPeriodStart),
		"current_period_end":   TimeFromEpoch(stripeSub.CurrentPeriodEnd),
		"cancel_at_period_end": stripeSub.CancelAtPeriodEnd,
	})
	if err != nil {
		return err
	}

	log.Printf("Subscription %s updated (status %s)", stripeSub.ID, stripeSub.Status)
	return nil
}

func (r *Reconciler) handleSubscriptionDeleted(event stripe.Event) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return fmt.Errorf("could not parse subscription: %w", err)
	}

	sub, err := r.store.FindByStripeID(stripeSub.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Printf("No subscription matches %s, skipping deletion", stripeSub.ID)
		return nil
	}
	if sub.Status == model.SubscriptionStatusCanceled {
		// Redelivery of an already-applied cancellation; CanceledAt keeps
		// its first value.
		log.Printf("Subscription %s already canceled", stripeSub.ID)
		return nil
	}

	now := time.Now().UTC()
	err = r.store.Update(sub.ID, map[string]interface{}{
		"status":      model.SubscriptionStatusCanceled,
		"canceled_at": &now,
	})
	if err != nil {
		return err
	}

	log.Printf("Subscription %s canceled", stripeSub.ID)

	if r.notifier != nil {
		r.notifier.SubscriptionCanceled(sub)
	}
	return nil
}

// handleInvoiceEvent is an observability hook: invoice outcomes are logged
// but do not mutate the subscription record. The path is kept so dunning or
// payment-failure notifications can be added without a new dispatch case.
func (r *Reconciler) handleInvoiceEvent(event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("could not parse invoice: %w", err)
	}

	switch event.Type {
	case EventInvoicePaymentSuccess:
		log.Printf("Payment succeeded for invoice %s", invoice.ID)
	case EventInvoicePaymentFailed:
		log.Printf("Payment failed for invoice %s", invoice.ID)
	}
	return nil
}

// correlationIDs extracts the internal user and plan ids that the checkout
// endpoint attached as session metadata.
func correlationIDs(metadata map[string]string) (userID, planID uint, ok bool) {
	uid, err := strconv.ParseUint(metadata["userId"], 10, 32)
	if err != nil || uid == 0 {
		return 0, 0, false
	}
	pid, err := strconv.ParseUint(metadata["planId"], 10, 32)
	if err != nil || pid == 0 {
		return 0, 0, false
	}
	return uint(uid), uint(pid), true
}
