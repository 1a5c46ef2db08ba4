package services

import (
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

// PractitionerService manages practitioner profiles. Profiles carry no
// tenant column, so every lookup joins through users.
type PractitionerService struct {
	db *gorm.DB
}

func NewPractitionerService(db *gorm.DB) *PractitionerService {
	return &PractitionerService{db: db}
}

type CreatePractitionerInput struct {
	UserID             uint   `json:"user_id" binding:"required"`
	Profession         string `json:"profession"`
	LicenseNumber      string `json:"license_number"`
	Bio                string `json:"bio"`
	ExperienceYears    *int   `json:"experience_years"`
	Specialties        string `json:"specialties"`
	SessionDurationMin *int   `json:"session_duration_min"`
}

type UpdatePractitionerInput struct {
	Profession         *string `json:"profession,omitempty"`
	LicenseNumber      *string `json:"license_number,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ExperienceYears    *int    `json:"experience_years,omitempty"`
	Specialties        *string `json:"specialties,omitempty"`
	SessionDurationMin *int    `json:"session_duration_min,omitempty"`
}

func practitionerSnapshot(p *models.PractitionerProfile) map[string]any {
	return map[string]any{
		"user_id":              p.UserID,
		"profession":           p.Profession,
		"license_number":       p.LicenseNumber,
		"bio":                  p.Bio,
		"experience_years":     p.ExperienceYears,
		"specialties":          p.Specialties,
		"session_duration_min": p.SessionDurationMin,
	}
}

func (s *PractitionerService) Create(actor *models.User, in CreatePractitionerInput) (*models.PractitionerProfile, error) {
	if err := ensureUserInTenant(s.db, actor.TenantID, in.UserID,
		"user_not_in_tenant", "User not found for this tenant."); err != nil {
		return nil, err
	}

	profile := models.PractitionerProfile{
		UserID:             in.UserID,
		Profession:         in.Profession,
		LicenseNumber:      in.LicenseNumber,
		Bio:                in.Bio,
		ExperienceYears:    in.ExperienceYears,
		Specialties:        in.Specialties,
		SessionDurationMin: in.SessionDurationMin,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return conflictOr(err, "profile_already_exists", "This user already has a practitioner profile.")
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "practitioner_profile", profile.ID, audit.ActionCreate, audit.Changes{
			After: practitionerSnapshot(&profile),
		})
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (s *PractitionerService) List(tenantID uint) ([]models.PractitionerProfile, error) {
	var profiles []models.PractitionerProfile
	if err := s.db.
		Joins("JOIN users ON users.id = practitioner_profiles.user_id").
		Where("users.tenant_id = ?", tenantID).
		Order("practitioner_profiles.id DESC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *PractitionerService) Get(tenantID, profileID uint) (*models.PractitionerProfile, error) {
	var profile models.PractitionerProfile
	if err := s.db.
		Joins("JOIN users ON users.id = practitioner_profiles.user_id").
		Where("practitioner_profiles.id = ? AND users.tenant_id = ?", profileID, tenantID).
		First(&profile).Error; err != nil {
		return nil, notFoundOr(err, "practitioner_not_found", "Practitioner profile not found.")
	}
	return &profile, nil
}

func (s *PractitionerService) Update(actor *models.User, profileID uint, in CreatePractitionerInput) (*models.PractitionerProfile, error) {
	profile, err := s.Get(actor.TenantID, profileID)
	if err != nil {
		return nil, err
	}

	// The profile's user binding is immutable; only descriptive fields move.
	before := practitionerSnapshot(profile)

	profile.Profession = in.Profession
	profile.LicenseNumber = in.LicenseNumber
	profile.Bio = in.Bio
	profile.ExperienceYears = in.ExperienceYears
	profile.Specialties = in.Specialties
	profile.SessionDurationMin = in.SessionDurationMin

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "practitioner_profile", profile.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  practitionerSnapshot(profile),
		})
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *PractitionerService) Patch(actor *models.User, profileID uint, in UpdatePractitionerInput) (*models.PractitionerProfile, error) {
	profile, err := s.Get(actor.TenantID, profileID)
	if err != nil {
		return nil, err
	}

	before := practitionerSnapshot(profile)
	applied := map[string]any{}

	if in.Profession != nil {
		profile.Profession = *in.Profession
		applied["profession"] = *in.Profession
	}
	if in.LicenseNumber != nil {
		profile.LicenseNumber = *in.LicenseNumber
		applied["license_number"] = *in.LicenseNumber
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
		applied["bio"] = *in.Bio
	}
	if in.ExperienceYears != nil {
		profile.ExperienceYears = in.ExperienceYears
		applied["experience_years"] = *in.ExperienceYears
	}
	if in.Specialties != nil {
		profile.Specialties = *in.Specialties
		applied["specialties"] = *in.Specialties
	}
	if in.SessionDurationMin != nil {
		profile.SessionDurationMin = in.SessionDurationMin
		applied["session_duration_min"] = *in.SessionDurationMin
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "practitioner_profile", profile.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *PractitionerService) Delete(actor *models.User, profileID uint) error {
	profile, err := s.Get(actor.TenantID, profileID)
	if err != nil {
		return err
	}

	before := practitionerSnapshot(profile)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(profile).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "practitioner_profile", profile.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
