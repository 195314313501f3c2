package models

import "github.com/google/uuid"

// ContactExpiry bounds: a positive multiple of 30 days, at most a year's worth.
const (
	ContactExpiryStep = 30
	ContactExpiryMax  = 360
)

// ProjectSetting holds per-project delivery targets and defaults. Exactly one
// row exists per project, created alongside the project itself.
type ProjectSetting struct {
	ID                 uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID          uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;uniqueIndex"`
	Target             int       `json:"target" db:"target" gorm:"not null;default:0"`
	ContactsPerAccount int       `json:"contactsPerAccount" db:"contacts_per_account" gorm:"not null;default:0"`
	ClientPoc          string    `json:"clientPoc" db:"client_poc" gorm:"type:text"`
	Priority           string    `json:"priority" db:"priority" gorm:"type:text"`
	Status             string    `json:"status" db:"status" gorm:"type:text"`
	Description        string    `json:"description" db:"description" gorm:"type:text"`
	ContactExpiry      int       `json:"contactExpiry" db:"contact_expiry" gorm:"not null;default:30"`
	CreatedBy          string    `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	UpdatedBy          string    `json:"updatedBy" db:"updated_by" gorm:"type:text"`
}

// ValidContactExpiry reports whether v is a positive multiple of 30 up to 360.
func ValidContactExpiry(v int) bool {
	return v > 0 && v <= ContactExpiryMax && v%ContactExpiryStep == 0
}
