package services

import (
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

// SubscriptionPlanService manages the global plan catalog. Reads are open to
// every authenticated user; mutations are admin-only.
type SubscriptionPlanService struct {
	db *gorm.DB
}

func NewSubscriptionPlanService(db *gorm.DB) *SubscriptionPlanService {
	return &SubscriptionPlanService{db: db}
}

type CreatePlanInput struct {
	Code             string  `json:"code" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	MonthlyPrice     float64 `json:"monthly_price" binding:"min=0"`
	Currency         string  `json:"currency"`
	MaxPractitioners *int    `json:"max_practitioners"`
	MaxClients       *int    `json:"max_clients"`
}

type UpdatePlanInput struct {
	Code             *string  `json:"code,omitempty"`
	Name             *string  `json:"name,omitempty"`
	MonthlyPrice     *float64 `json:"monthly_price,omitempty" binding:"omitempty,min=0"`
	Currency         *string  `json:"currency,omitempty"`
	MaxPractitioners *int     `json:"max_practitioners,omitempty"`
	MaxClients       *int     `json:"max_clients,omitempty"`
}

func planSnapshot(p *models.SubscriptionPlan) map[string]any {
	return map[string]any{
		"code":              p.Code,
		"name":              p.Name,
		"monthly_price":     p.MonthlyPrice,
		"currency":          p.Currency,
		"max_practitioners": p.MaxPractitioners,
		"max_clients":       p.MaxClients,
	}
}

func (s *SubscriptionPlanService) Create(actor *models.User, in CreatePlanInput) (*models.SubscriptionPlan, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	plan := models.SubscriptionPlan{
		Code:             in.Code,
		Name:             in.Name,
		MonthlyPrice:     in.MonthlyPrice,
		Currency:         currency,
		MaxPractitioners: in.MaxPractitioners,
		MaxClients:       in.MaxClients,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return conflictOr(err, "plan_code_already_exists", "A plan with this code already exists.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription_plan", plan.ID, audit.ActionCreate, audit.Changes{
			After: planSnapshot(&plan),
		})
	})
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (s *SubscriptionPlanService) List() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := s.db.Order("monthly_price ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *SubscriptionPlanService) Get(planID uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		return nil, notFoundOr(err, "plan_not_found", "Subscription plan not found.")
	}
	return &plan, nil
}

func (s *SubscriptionPlanService) Update(actor *models.User, planID uint, in CreatePlanInput) (*models.SubscriptionPlan, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	plan, err := s.Get(planID)
	if err != nil {
		return nil, err
	}

	before := planSnapshot(plan)

	plan.Code = in.Code
	plan.Name = in.Name
	plan.MonthlyPrice = in.MonthlyPrice
	if in.Currency != "" {
		plan.Currency = in.Currency
	}
	plan.MaxPractitioners = in.MaxPractitioners
	plan.MaxClients = in.MaxClients

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plan).Error; err != nil {
			return conflictOr(err, "plan_code_already_exists", "A plan with this code already exists.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription_plan", plan.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  planSnapshot(plan),
		})
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *SubscriptionPlanService) Patch(actor *models.User, planID uint, in UpdatePlanInput) (*models.SubscriptionPlan, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	plan, err := s.Get(planID)
	if err != nil {
		return nil, err
	}

	before := planSnapshot(plan)
	applied := map[string]any{}

	if in.Code != nil {
		plan.Code = *in.Code
		applied["code"] = *in.Code
	}
	if in.Name != nil {
		plan.Name = *in.Name
		applied["name"] = *in.Name
	}
	if in.MonthlyPrice != nil {
		plan.MonthlyPrice = *in.MonthlyPrice
		applied["monthly_price"] = *in.MonthlyPrice
	}
	if in.Currency != nil {
		plan.Currency = *in.Currency
		applied["currency"] = *in.Currency
	}
	if in.MaxPractitioners != nil {
		plan.MaxPractitioners = in.MaxPractitioners
		applied["max_practitioners"] = *in.MaxPractitioners
	}
	if in.MaxClients != nil {
		plan.MaxClients = in.MaxClients
		applied["max_clients"] = *in.MaxClients
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plan).Error; err != nil {
			return conflictOr(err, "plan_code_already_exists", "A plan with this code already exists.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription_plan", plan.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *SubscriptionPlanService) Delete(actor *models.User, planID uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	plan, err := s.Get(planID)
	if err != nil {
		return err
	}

	before := planSnapshot(plan)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(plan).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "subscription_plan", plan.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
