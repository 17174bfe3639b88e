package billing

import (
	"errors"

	"gorm.io/gorm"

	"devri_backend/internal/model"
)

// SubscriptionStore is the persistence boundary the reconciler writes through.
// Lookups return (nil, nil) when no row matches so callers can tell an absent
// row apart from a store failure.
type SubscriptionStore interface {
	FindByStripeID(stripeSubscriptionID string) (*model.Subscription, error)
	FindByUserAndPlan(userID, planID uint) (*model.Subscription, error)
	Create(sub *model.Subscription) error
	Update(id uint, fields map[string]interface{}) error
}

// PlanStore resolves internal plans referenced by checkout metadata.
type PlanStore interface {
	FindByID(id uint) (*model.Plan, error)
}

type gormSubscriptionStore struct {
	db *gorm.DB
}

func NewSubscriptionStore(db *gorm.DB) SubscriptionStore {
	return &gormSubscriptionStore{db: db}
}

func (s *gormSubscriptionStore) FindByStripeID(stripeSubscriptionID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := s.db.Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *gormSubscriptionStore) FindByUserAndPlan(userID, planID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := s.db.Where("user_id = ? AND plan_id = ?", userID, planID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *gormSubscriptionStore) Create(sub *model.Subscription) error {
	return s.db.Create(sub).Error
}

func (s *gormSubscriptionStore) Update(id uint, fields map[string]interface{}) error {
	return s.db.Model(&model.Subscription{}).Where("id = ?", id).Updates(fields).Error
}

type gormPlanStore struct {
	db *gorm.DB
}

func NewPlanStore(db *gorm.DB) PlanStore {
	return &gormPlanStore{db: db}
}

func (s *gormPlanStore) FindByID(id uint) (*model.Plan, error) {
	var plan model.Plan
	err := s.db.First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
