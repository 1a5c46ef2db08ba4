package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

type CreateSubscriptionInput struct {
	PlanID             uint       `json:"plan_id" binding:"required"`
	Status             string     `json:"status"`
	StartsAt           *time.Time `json:"starts_at"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	EndsAt             *time.Time `json:"ends_at"`
	ExternalCustomerID string     `json:"external_customer_id"`
}

type UpdateSubscriptionInput struct {
	PlanID             *uint      `json:"plan_id,omitempty"`
	Status             *string    `json:"status,omitempty"`
	StartsAt           *time.Time `json:"starts_at,omitempty"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	EndsAt             *time.Time `json:"ends_at,omitempty"`
	ExternalCustomerID *string    `json:"external_customer_id,omitempty"`
}

func subscriptionSnapshot(sub *models.Subscription) map[string]any {
	return map[string]any{
		"plan_id":              sub.PlanID,
		"status":               sub.Status,
		"starts_at":            sub.StartsAt,
		"trial_ends_at":        sub.TrialEndsAt,
		"ends_at":              sub.EndsAt,
		"external_customer_id": sub.ExternalCustomerID,
	}
}

func validSubscriptionStatus(status string) bool {
	switch status {
	case models.SubscriptionTrial, models.SubscriptionActive,
		models.SubscriptionCancelled, models.SubscriptionExpired:
		return true
	}
	return false
}

func (s *SubscriptionService) Create(actor *models.User, in CreateSubscriptionInput) (*models.Subscription, error) {
	if err := ensurePlanExists(s.db, in.PlanID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.SubscriptionTrial
	}
	if !validSubscriptionStatus(status) {
		return nil, apperr.Invalid("invalid_status", "Unknown subscription status.")
	}

	startsAt := time.Now()
	if in.StartsAt != nil {
		startsAt = *in.StartsAt
	}

	sub := models.Subscription{
		TenantID:           actor.TenantID,
		PlanID:             in.PlanID,
		Status:             status,
		StartsAt:           startsAt,
		TrialEndsAt:        in.TrialEndsAt,
		EndsAt:             in.EndsAt,
		ExternalCustomerID: in.ExternalCustomerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription", sub.ID, audit.ActionCreate, audit.Changes{
			After: subscriptionSnapshot(&sub),
		})
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (s *SubscriptionService) List(tenantID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := s.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *SubscriptionService) Get(tenantID, subscriptionID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.
		Where("id = ? AND tenant_id = ?", subscriptionID, tenantID).
		First(&sub).Error; err != nil {
		return nil, notFoundOr(err, "subscription_not_found", "Subscription not found.")
	}
	return &sub, nil
}

func (s *SubscriptionService) Update(actor *models.User, subscriptionID uint, in CreateSubscriptionInput) (*models.Subscription, error) {
	sub, err := s.Get(actor.TenantID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if err := ensurePlanExists(s.db, in.PlanID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = sub.Status
	}
	if !validSubscriptionStatus(status) {
		return nil, apperr.Invalid("invalid_status", "Unknown subscription status.")
	}

	before := subscriptionSnapshot(sub)

	sub.PlanID = in.PlanID
	sub.Status = status
	if in.StartsAt != nil {
		sub.StartsAt = *in.StartsAt
	}
	sub.TrialEndsAt = in.TrialEndsAt
	sub.EndsAt = in.EndsAt
	sub.ExternalCustomerID = in.ExternalCustomerID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sub).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription", sub.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  subscriptionSnapshot(sub),
		})
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *SubscriptionService) Patch(actor *models.User, subscriptionID uint, in UpdateSubscriptionInput) (*models.Subscription, error) {
	sub, err := s.Get(actor.TenantID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if in.PlanID != nil {
		if err := ensurePlanExists(s.db, *in.PlanID); err != nil {
			return nil, err
		}
	}
	if in.Status != nil && !validSubscriptionStatus(*in.Status) {
		return nil, apperr.Invalid("invalid_status", "Unknown subscription status.")
	}

	before := subscriptionSnapshot(sub)
	applied := map[string]any{}

	if in.PlanID != nil {
		sub.PlanID = *in.PlanID
		applied["plan_id"] = *in.PlanID
	}
	if in.Status != nil {
		sub.Status = *in.Status
		applied["status"] = *in.Status
	}
	if in.StartsAt != nil {
		sub.StartsAt = *in.StartsAt
		applied["starts_at"] = *in.StartsAt
	}
	if in.TrialEndsAt != nil {
		sub.TrialEndsAt = in.TrialEndsAt
		applied["trial_ends_at"] = *in.TrialEndsAt
	}
	if in.EndsAt != nil {
		sub.EndsAt = in.EndsAt
		applied["ends_at"] = *in.EndsAt
	}
	if in.ExternalCustomerID != nil {
		sub.ExternalCustomerID = *in.ExternalCustomerID
		applied["external_customer_id"] = *in.ExternalCustomerID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sub).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription", sub.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Cancel flips the subscription to cancelled and stamps ends_at.
func (s *SubscriptionService) Cancel(actor *models.User, subscriptionID uint) (*models.Subscription, error) {
	sub, err := s.Get(actor.TenantID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if sub.Status == models.SubscriptionCancelled {
		return nil, apperr.Invalid("already_cancelled", "Subscription is already cancelled.")
	}

	beforeStatus := sub.Status
	now := time.Now()
	sub.Status = models.SubscriptionCancelled
	sub.EndsAt = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sub).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription", sub.ID, audit.ActionStatusChange, audit.Changes{
			Before: map[string]any{"status": beforeStatus},
			After:  map[string]any{"status": models.SubscriptionCancelled, "ends_at": now},
		})
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *SubscriptionService) Delete(actor *models.User, subscriptionID uint) error {
	sub, err := s.Get(actor.TenantID, subscriptionID)
	if err != nil {
		return err
	}

	before := subscriptionSnapshot(sub)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(sub).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription", sub.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
