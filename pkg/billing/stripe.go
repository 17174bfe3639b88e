package billing

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// SubscriptionRetriever is the slice of the Stripe API the reconciler needs:
// the checkout-completed event only carries a subscription id, the rest of
// the record has to be fetched.
type SubscriptionRetriever interface {
	GetSubscription(id string) (*stripe.Subscription, error)
}

// Client wraps an explicitly constructed Stripe API client. It is built once
// at startup and passed to the components that need it instead of mutating
// the package-global stripe.Key.
type Client struct {
	api *client.API
}

func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

func (c *Client) GetSubscription(id string) (*stripe.Subscription, error) {
	return c.api.Subscriptions.Get(id, nil)
}

type CheckoutSessionInput struct {
	PriceID       string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CreateCheckoutSession starts a subscription checkout. The metadata is
// attached to both the session and the resulting subscription so webhook
// events can be correlated back to the internal user and plan.
func (c *Client) CreateCheckoutSession(input CheckoutSessionInput) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(input.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail:       stripe.String(input.CustomerEmail),
		SuccessURL:          stripe.String(input.SuccessURL),
		CancelURL:           stripe.String(input.CancelURL),
		AllowPromotionCodes: stripe.Bool(true),
		SubscriptionData:    &stripe.CheckoutSessionSubscriptionDataParams{},
	}
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
		if params.SubscriptionData.Metadata == nil {
			params.SubscriptionData.Metadata = map[string]string{}
		}
		params.SubscriptionData.Metadata[k] = v
	}

	return c.api.CheckoutSessions.New(params)
}

func (c *Client) CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	return c.api.BillingPortalSessions.New(params)
}
