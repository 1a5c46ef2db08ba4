package models

// PractitionerProfile carries no tenant column of its own; tenant ownership
// is derived through the user it extends.
type PractitionerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Profession    string `gorm:"size:100" json:"profession"`
	LicenseNumber string `gorm:"size:100" json:"license_number"`
	Bio           string `gorm:"type:text" json:"bio"`

	ExperienceYears    *int   `json:"experience_years"`
	Specialties        string `gorm:"type:text" json:"specialties"`
	SessionDurationMin *int   `json:"session_duration_min"`
}
