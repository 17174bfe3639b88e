package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFromSlug(t *testing.T) {
	assert.Equal(t, TierProfesional, TierFromSlug("profesional"))
	assert.Equal(t, TierPremium, TierFromSlug("premium"))
	assert.Equal(t, TierBasico, TierFromSlug("basico"))
	// unknown slugs never unlock the higher tiers
	assert.Equal(t, TierBasico, TierFromSlug("plan-viejo"))
}

func TestCanUseFeature(t *testing.T) {
	assert.True(t, CanUseFeature(TierBasico, ContactForm))
	assert.False(t, CanUseFeature(TierBasico, AdvancedSEO))
	assert.True(t, CanUseFeature(TierPremium, AdvancedSEO))
	assert.False(t, CanUseFeature(PlanTier("desconocido"), ContactForm))
}

func TestGetTierLimitsFallsBackToBasic(t *testing.T) {
	limits := GetTierLimits(PlanTier("desconocido"))
	assert.Equal(t, GetTierLimits(TierBasico), limits)
}
