package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveMonthlyPrice(t *testing.T) {
	override := 150.0
	sub := Subscription{ActualMonthlyPrice: &override}
	assert.Equal(t, 150.0, sub.EffectiveMonthlyPrice(200))

	sub.ActualMonthlyPrice = nil
	assert.Equal(t, 200.0, sub.EffectiveMonthlyPrice(200))
}

func TestSubscriptionIsActive(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{SubscriptionStatusActive, true},
		{SubscriptionStatusTrialing, true},
		{SubscriptionStatusPastDue, false},
		{SubscriptionStatusCanceled, false},
		{SubscriptionStatusIncomplete, false},
	}
	for _, tc := range cases {
		sub := Subscription{Status: tc.status}
		assert.Equal(t, tc.want, sub.IsActive(), "status %s", tc.status)
	}
}
