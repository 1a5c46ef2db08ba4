package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

// ClientConsentService manages consent records. Consents are tenant-scoped
// through their client, so lookups join clients.
type ClientConsentService struct {
	db *gorm.DB
}

func NewClientConsentService(db *gorm.DB) *ClientConsentService {
	return &ClientConsentService{db: db}
}

type CreateConsentInput struct {
	ClientID    uint       `json:"client_id" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	GivenAt     *time.Time `json:"given_at"`
	RevokedAt   *time.Time `json:"revoked_at"`
	DocumentURL string     `json:"document_url"`
}

type UpdateConsentInput struct {
	ClientID    *uint      `json:"client_id,omitempty"`
	Type        *string    `json:"type,omitempty"`
	GivenAt     *time.Time `json:"given_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	DocumentURL *string    `json:"document_url,omitempty"`
}

func consentSnapshot(cc *models.ClientConsent) map[string]any {
	return map[string]any{
		"client_id":    cc.ClientID,
		"type":         cc.Type,
		"given_at":     cc.GivenAt,
		"revoked_at":   cc.RevokedAt,
		"document_url": cc.DocumentURL,
	}
}

func (s *ClientConsentService) Create(actor *models.User, in CreateConsentInput) (*models.ClientConsent, error) {
	if err := ensureClientInTenant(s.db, actor.TenantID, in.ClientID); err != nil {
		return nil, err
	}

	givenAt := time.Now()
	if in.GivenAt != nil {
		givenAt = *in.GivenAt
	}

	consent := models.ClientConsent{
		ClientID:    in.ClientID,
		Type:        in.Type,
		GivenAt:     givenAt,
		RevokedAt:   in.RevokedAt,
		DocumentURL: in.DocumentURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&consent).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client_consent", consent.ID, audit.ActionCreate, audit.Changes{
			After: consentSnapshot(&consent),
		})
	})
	if err != nil {
		return nil, err
	}

	return &consent, nil
}

func (s *ClientConsentService) List(tenantID uint, clientID *uint) ([]models.ClientConsent, error) {
	q := s.db.
		Joins("JOIN clients ON clients.id = client_consents.client_id").
		Where("clients.tenant_id = ?", tenantID)

	if clientID != nil {
		q = q.Where("client_consents.client_id = ?", *clientID)
	}

	var consents []models.ClientConsent
	if err := q.Order("client_consents.created_at DESC").Find(&consents).Error; err != nil {
		return nil, err
	}
	return consents, nil
}

func (s *ClientConsentService) Get(tenantID, consentID uint) (*models.ClientConsent, error) {
	var consent models.ClientConsent
	if err := s.db.
		Joins("JOIN clients ON clients.id = client_consents.client_id").
		Where("client_consents.id = ? AND clients.tenant_id = ?", consentID, tenantID).
		First(&consent).Error; err != nil {
		return nil, notFoundOr(err, "consent_not_found", "Consent not found.")
	}
	return &consent, nil
}

func (s *ClientConsentService) Update(actor *models.User, consentID uint, in CreateConsentInput) (*models.ClientConsent, error) {
	consent, err := s.Get(actor.TenantID, consentID)
	if err != nil {
		return nil, err
	}

	if err := ensureClientInTenant(s.db, actor.TenantID, in.ClientID); err != nil {
		return nil, err
	}

	before := consentSnapshot(consent)

	consent.ClientID = in.ClientID
	consent.Type = in.Type
	if in.GivenAt != nil {
		consent.GivenAt = *in.GivenAt
	}
	consent.RevokedAt = in.RevokedAt
	consent.DocumentURL = in.DocumentURL

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(consent).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client_consent", consent.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  consentSnapshot(consent),
		})
	})
	if err != nil {
		return nil, err
	}

	return consent, nil
}

func (s *ClientConsentService) Patch(actor *models.User, consentID uint, in UpdateConsentInput) (*models.ClientConsent, error) {
	consent, err := s.Get(actor.TenantID, consentID)
	if err != nil {
		return nil, err
	}

	if in.ClientID != nil {
		if err := ensureClientInTenant(s.db, actor.TenantID, *in.ClientID); err != nil {
			return nil, err
		}
	}

	before := consentSnapshot(consent)
	applied := map[string]any{}

	if in.ClientID != nil {
		consent.ClientID = *in.ClientID
		applied["client_id"] = *in.ClientID
	}
	if in.Type != nil {
		consent.Type = *in.Type
		applied["type"] = *in.Type
	}
	if in.GivenAt != nil {
		consent.GivenAt = *in.GivenAt
		applied["given_at"] = *in.GivenAt
	}
	if in.RevokedAt != nil {
		consent.RevokedAt = in.RevokedAt
		applied["revoked_at"] = *in.RevokedAt
	}
	if in.DocumentURL != nil {
		consent.DocumentURL = *in.DocumentURL
		applied["document_url"] = *in.DocumentURL
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(consent).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client_consent", consent.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return consent, nil
}

func (s *ClientConsentService) Delete(actor *models.User, consentID uint) error {
	consent, err := s.Get(actor.TenantID, consentID)
	if err != nil {
		return err
	}

	before := consentSnapshot(consent)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(consent).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client_consent", consent.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
