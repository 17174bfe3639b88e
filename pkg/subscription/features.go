package subscription

// PlanTier matches the slug of a seeded plan.
type PlanTier string

type Feature string

const (
	TierBasico      PlanTier = "basico"
	TierProfesional PlanTier = "profesional"
	TierPremium     PlanTier = "premium"
)

const (
	ContactForm     Feature = "contact_form"
	WhatsAppButton  Feature = "whatsapp_button"
	PhotoGallery    Feature = "photo_gallery"
	OnlineCatalog   Feature = "online_catalog"
	AdvancedSEO     Feature = "advanced_seo"
	PrioritySupport Feature = "priority_support"
)

// TierLimits bounds what the managed website of a client on a given tier
// can include.
type TierLimits struct {
	MaxPages         int
	MonthlyRevisions int
	AllowedFeatures  map[Feature]bool
}

var tierLimits = map[PlanTier]TierLimits{
	TierBasico: {
		MaxPages:         3,
		MonthlyRevisions: 1,
		AllowedFeatures: map[Feature]bool{
			ContactForm:     true,
			WhatsAppButton:  true,
			PhotoGallery:    false,
			OnlineCatalog:   false,
			AdvancedSEO:     false,
			PrioritySupport: false,
		},
	},
	TierProfesional: {
		MaxPages:         8,
		MonthlyRevisions: 3,
		AllowedFeatures: map[Feature]bool{
			ContactForm:     true,
			WhatsAppButton:  true,
			PhotoGallery:    true,
			OnlineCatalog:   true,
			AdvancedSEO:     false,
			PrioritySupport: false,
		},
	},
	TierPremium: {
		MaxPages:         20,
		MonthlyRevisions: 10,
		AllowedFeatures: map[Feature]bool{
			ContactForm:     true,
			WhatsAppButton:  true,
			PhotoGallery:    true,
			OnlineCatalog:   true,
			AdvancedSEO:     true,
			PrioritySupport: true,
		},
	},
}

// TierFromSlug maps a plan slug onto its tier. Unknown slugs fall back to
// the basic tier so a misconfigured plan never unlocks everything.
func TierFromSlug(slug string) PlanTier {
	switch PlanTier(slug) {
	case TierProfesional:
		return TierProfesional
	case TierPremium:
		return TierPremium
	default:
		return TierBasico
	}
}

func CanUseFeature(tier PlanTier, feature Feature) bool {
	limits, ok := tierLimits[tier]
	if !ok {
		return false
	}
	return limits.AllowedFeatures[feature]
}

func GetTierLimits(tier PlanTier) TierLimits {
	limits, ok := tierLimits[tier]
	if !ok {
		return tierLimits[TierBasico]
	}
	return limits
}
