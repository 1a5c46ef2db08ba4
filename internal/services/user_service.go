package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/auth"
	"github.com/harmoniahq/practice-api/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=owner practitioner staff admin"`
	IsActive *bool  `json:"is_active"`
}

type UpdateUserInput struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=owner practitioner staff admin"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Password hashes never appear in audit payloads.
func userSnapshot(u *models.User) map[string]any {
	return map[string]any{
		"email":     u.Email,
		"full_name": u.FullName,
		"role":      u.Role,
		"is_active": u.IsActive,
	}
}

func (s *UserService) Create(actor *models.User, in CreateUserInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RolePractitioner
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	user := models.User{
		TenantID:     actor.TenantID,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         role,
		IsActive:     active,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return conflictOr(err, "email_already_registered", "User with this email already exists.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "user", user.ID, audit.ActionCreate, audit.Changes{
			After: userSnapshot(&user),
		})
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserService) List(tenantID uint) ([]models.User, error) {
	var users []models.User
	if err := s.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(tenantID, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		First(&user).Error; err != nil {
		return nil, notFoundOr(err, "user_not_found", "User not found in this tenant.")
	}
	return &user, nil
}

func (s *UserService) Update(actor *models.User, userID uint, in CreateUserInput) (*models.User, error) {
	user, err := s.Get(actor.TenantID, userID)
	if err != nil {
		return nil, err
	}

	before := userSnapshot(user)

	user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	user.FullName = in.FullName
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return conflictOr(err, "email_already_registered", "User with this email already exists.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "user", user.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  userSnapshot(user),
		})
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Patch(actor *models.User, userID uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(actor.TenantID, userID)
	if err != nil {
		return nil, err
	}

	before := userSnapshot(user)
	applied := map[string]any{}

	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
		applied["email"] = user.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
		applied["full_name"] = *in.FullName
	}
	if in.Role != nil {
		user.Role = *in.Role
		applied["role"] = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
		applied["is_active"] = *in.IsActive
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		applied["password"] = "changed"
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return conflictOr(err, "email_already_registered", "User with this email already exists.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "user", user.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(actor *models.User, userID uint) error {
	user, err := s.Get(actor.TenantID, userID)
	if err != nil {
		return err
	}

	if user.ID == actor.ID {
		return apperr.Invalid("cannot_delete_self", "You cannot delete your own account.")
	}

	before := userSnapshot(user)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(user).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "user", user.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
