package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type CreateClientInput struct {
	PrimaryPractitionerID *uint      `json:"primary_practitioner_id"`
	FirstName             string     `json:"first_name" binding:"required"`
	LastName              string     `json:"last_name" binding:"required"`
	Gender                string     `json:"gender"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	Phone                 string     `json:"phone"`
	Email                 string     `json:"email" binding:"omitempty,email"`
	Address               string     `json:"address"`
	Notes                 string     `json:"notes"`
	Status                string     `json:"status"`
}

type UpdateClientInput struct {
	PrimaryPractitionerID *uint      `json:"primary_practitioner_id,omitempty"`
	FirstName             *string    `json:"first_name,omitempty"`
	LastName              *string    `json:"last_name,omitempty"`
	Gender                *string    `json:"gender,omitempty"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Phone                 *string    `json:"phone,omitempty"`
	Email                 *string    `json:"email,omitempty" binding:"omitempty,email"`
	Address               *string    `json:"address,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	Status                *string    `json:"status,omitempty"`
}

func clientSnapshot(c *models.Client) map[string]any {
	return map[string]any{
		"primary_practitioner_id": c.PrimaryPractitionerID,
		"first_name":              c.FirstName,
		"last_name":               c.LastName,
		"gender":                  c.Gender,
		"date_of_birth":           c.DateOfBirth,
		"phone":                   c.Phone,
		"email":                   c.Email,
		"address":                 c.Address,
		"notes":                   c.Notes,
		"status":                  c.Status,
	}
}

func (s *ClientService) Create(actor *models.User, in CreateClientInput) (*models.Client, error) {
	if in.PrimaryPractitionerID != nil {
		if err := ensureUserInTenant(s.db, actor.TenantID, *in.PrimaryPractitionerID,
			"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = "active"
	}

	client := models.Client{
		TenantID:              actor.TenantID,
		PrimaryPractitionerID: in.PrimaryPractitionerID,
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		Gender:                in.Gender,
		DateOfBirth:           in.DateOfBirth,
		Phone:                 in.Phone,
		Email:                 in.Email,
		Address:               in.Address,
		Notes:                 in.Notes,
		Status:                status,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&client).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client", client.ID, audit.ActionCreate, audit.Changes{
			After: clientSnapshot(&client),
		})
	})
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (s *ClientService) List(tenantID uint, query string) ([]models.Client, error) {
	q := s.db.Where("tenant_id = ?", tenantID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *ClientService) Get(tenantID, clientID uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.
		Where("id = ? AND tenant_id = ?", clientID, tenantID).
		First(&client).Error; err != nil {
		return nil, notFoundOr(err, "client_not_found", "Client not found.")
	}
	return &client, nil
}

func (s *ClientService) Update(actor *models.User, clientID uint, in CreateClientInput) (*models.Client, error) {
	client, err := s.Get(actor.TenantID, clientID)
	if err != nil {
		return nil, err
	}

	if in.PrimaryPractitionerID != nil {
		if err := ensureUserInTenant(s.db, actor.TenantID, *in.PrimaryPractitionerID,
			"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
			return nil, err
		}
	}

	before := clientSnapshot(client)

	client.PrimaryPractitionerID = in.PrimaryPractitionerID
	client.FirstName = in.FirstName
	client.LastName = in.LastName
	client.Gender = in.Gender
	client.DateOfBirth = in.DateOfBirth
	client.Phone = in.Phone
	client.Email = in.Email
	client.Address = in.Address
	client.Notes = in.Notes
	if in.Status != "" {
		client.Status = in.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(client).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client", client.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  clientSnapshot(client),
		})
	})
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) Patch(actor *models.User, clientID uint, in UpdateClientInput) (*models.Client, error) {
	client, err := s.Get(actor.TenantID, clientID)
	if err != nil {
		return nil, err
	}

	// Present foreign keys are always re-validated, changed or not.
	if in.PrimaryPractitionerID != nil {
		if err := ensureUserInTenant(s.db, actor.TenantID, *in.PrimaryPractitionerID,
			"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
			return nil, err
		}
	}

	before := clientSnapshot(client)
	applied := map[string]any{}

	if in.PrimaryPractitionerID != nil {
		client.PrimaryPractitionerID = in.PrimaryPractitionerID
		applied["primary_practitioner_id"] = *in.PrimaryPractitionerID
	}
	if in.FirstName != nil {
		client.FirstName = *in.FirstName
		applied["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		client.LastName = *in.LastName
		applied["last_name"] = *in.LastName
	}
	if in.Gender != nil {
		client.Gender = *in.Gender
		applied["gender"] = *in.Gender
	}
	if in.DateOfBirth != nil {
		client.DateOfBirth = in.DateOfBirth
		applied["date_of_birth"] = *in.DateOfBirth
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
		applied["phone"] = *in.Phone
	}
	if in.Email != nil {
		client.Email = *in.Email
		applied["email"] = *in.Email
	}
	if in.Address != nil {
		client.Address = *in.Address
		applied["address"] = *in.Address
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
		applied["notes"] = *in.Notes
	}
	if in.Status != nil {
		client.Status = *in.Status
		applied["status"] = *in.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(client).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client", client.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) Delete(actor *models.User, clientID uint) error {
	client, err := s.Get(actor.TenantID, clientID)
	if err != nil {
		return err
	}

	before := clientSnapshot(client)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(client).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "client", client.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
