package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

type CreateTenantInput struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

type UpdateTenantInput struct {
	Name     *string `json:"name,omitempty"`
	Country  *string `json:"country,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func tenantSnapshot(t *models.Tenant) map[string]any {
	return map[string]any{
		"name":      t.Name,
		"slug":      t.Slug,
		"country":   t.Country,
		"timezone":  t.Timezone,
		"is_active": t.IsActive,
	}
}

// Create provisions a tenant outside the registration flow. Admin only.
func (s *TenantService) Create(actor *models.User, in CreateTenantInput) (*models.Tenant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(in.Name)
	}

	tenant := models.Tenant{
		Name:     strings.TrimSpace(in.Name),
		Slug:     strings.ToLower(slug),
		Country:  in.Country,
		Timezone: in.Timezone,
		IsActive: true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return conflictOr(err, "tenant_slug_exists", "A tenant with this slug already exists.")
		}
		return audit.Record(tx, tenant.ID, &actor.ID, "tenant", tenant.ID, audit.ActionCreate, audit.Changes{
			After: tenantSnapshot(&tenant),
		})
	})
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

// List is a cross-tenant surface. Admin only.
func (s *TenantService) List(actor *models.User) ([]models.Tenant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var tenants []models.Tenant
	if err := s.db.Order("created_at DESC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// Mine returns the caller's own tenant.
func (s *TenantService) Mine(actor *models.User) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, actor.TenantID).Error; err != nil {
		return nil, notFoundOr(err, "tenant_not_found", "Tenant not found.")
	}
	return &tenant, nil
}

func (s *TenantService) Get(actor *models.User, tenantID uint) (*models.Tenant, error) {
	if tenantID != actor.TenantID {
		if err := requireAdmin(actor); err != nil {
			return nil, err
		}
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		return nil, notFoundOr(err, "tenant_not_found", "Tenant not found.")
	}
	return &tenant, nil
}

func (s *TenantService) Update(actor *models.User, tenantID uint, in CreateTenantInput) (*models.Tenant, error) {
	tenant, err := s.Get(actor, tenantID)
	if err != nil {
		return nil, err
	}

	before := tenantSnapshot(tenant)

	tenant.Name = strings.TrimSpace(in.Name)
	if in.Slug != "" {
		tenant.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	}
	tenant.Country = in.Country
	tenant.Timezone = in.Timezone

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tenant).Error; err != nil {
			return conflictOr(err, "tenant_slug_exists", "A tenant with this slug already exists.")
		}
		return audit.Record(tx, tenant.ID, &actor.ID, "tenant", tenant.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  tenantSnapshot(tenant),
		})
	})
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

func (s *TenantService) Patch(actor *models.User, tenantID uint, in UpdateTenantInput) (*models.Tenant, error) {
	tenant, err := s.Get(actor, tenantID)
	if err != nil {
		return nil, err
	}

	before := tenantSnapshot(tenant)
	applied := map[string]any{}

	if in.Name != nil {
		tenant.Name = strings.TrimSpace(*in.Name)
		applied["name"] = tenant.Name
	}
	if in.Country != nil {
		tenant.Country = *in.Country
		applied["country"] = *in.Country
	}
	if in.Timezone != nil {
		tenant.Timezone = *in.Timezone
		applied["timezone"] = *in.Timezone
	}
	if in.IsActive != nil {
		tenant.IsActive = *in.IsActive
		applied["is_active"] = *in.IsActive
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tenant).Error; err != nil {
			return err
		}
		return audit.Record(tx, tenant.ID, &actor.ID, "tenant", tenant.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// Delete removes a tenant record. Admin only; deleting your own tenant from
// under yourself is not allowed.
func (s *TenantService) Delete(actor *models.User, tenantID uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if tenantID == actor.TenantID {
		return apperr.Invalid("cannot_delete_own_tenant", "You cannot delete your own tenant.")
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		return notFoundOr(err, "tenant_not_found", "Tenant not found.")
	}

	before := tenantSnapshot(&tenant)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&tenant).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "tenant", tenant.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
