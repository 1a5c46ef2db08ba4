package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/auth"
	"github.com/harmoniahq/practice-api/internal/models"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	TenantName string `json:"tenant_name" binding:"required"`
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
}

// Register bootstraps a tenant with its owner in one transaction. A
// duplicate email or slug rolls the whole thing back, so no partial tenant
// can survive a conflict.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	tenant := models.Tenant{
		Name:     strings.TrimSpace(in.TenantName),
		Slug:     Slugify(in.TenantName),
		IsActive: true,
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         models.RoleOwner,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return conflictOr(err, "tenant_already_exists", "A tenant with this name already exists.")
		}

		user.TenantID = tenant.ID
		if err := tx.Create(&user).Error; err != nil {
			return conflictOr(err, "email_already_registered", "Email already registered.")
		}

		return audit.Record(tx, tenant.ID, &user.ID, "tenant", tenant.ID, audit.ActionRegister, audit.Changes{
			After: map[string]any{
				"tenant_name": tenant.Name,
				"tenant_slug": tenant.Slug,
				"owner_email": user.Email,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials and stamps last_login_at. Unknown email, wrong
// password and inactive user are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Unauthorized("invalid_credentials", "Incorrect email or password.")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("invalid_credentials", "Incorrect email or password.")
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.Unauthorized("invalid_credentials", "Incorrect email or password.")
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("last_login_at", now).Error; err != nil {
			return err
		}
		return audit.Record(tx, user.TenantID, &user.ID, "user", user.ID, audit.ActionLogin, nil)
	})
	if err != nil {
		return nil, err
	}

	user.LastLoginAt = &now
	return &user, nil
}

// Slugify flattens a tenant name into its URL slug.
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}
