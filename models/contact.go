package models

import (
	"strings"

	"github.com/google/uuid"
)

// MasterContact is the denormalized per-project contact row joining contact
// and location data. One fixed table partitioned by project_id; work email is
// unique within a project.
type MasterContact struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID     uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_master_contact_project;uniqueIndex:idx_master_contact_work_email"`
	FirstName     string    `json:"firstName" db:"first_name" gorm:"type:text"`
	LastName      string    `json:"lastName" db:"last_name" gorm:"type:text"`
	JobTitle      string    `json:"jobTitle" db:"job_title" gorm:"type:text"`
	WorkEmail     string    `json:"workEmail" db:"work_email" gorm:"type:text;not null;uniqueIndex:idx_master_contact_work_email"`
	Phone         string    `json:"phone" db:"phone" gorm:"type:text"`
	CompanyName   string    `json:"companyName" db:"company_name" gorm:"type:text"`
	CompanyDomain string    `json:"companyDomain" db:"company_domain" gorm:"type:text"`
	Country       string    `json:"country" db:"country" gorm:"type:text"`
	State         string    `json:"state" db:"state" gorm:"type:text"`
	City          string    `json:"city" db:"city" gorm:"type:text"`
	DedupeKey     string    `json:"dedupeKey" db:"dedupe_key" gorm:"type:text;index"`
}

// SuppressionMatch records an account/contact hit against a suppression file.
type SuppressionMatch struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FileID    uuid.UUID `json:"fileId" db:"file_id" gorm:"type:uuid;not null;index"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	DedupeKey string    `json:"dedupeKey" db:"dedupe_key" gorm:"type:text;not null;index"`
	Kind      string    `json:"kind" db:"kind" gorm:"type:text;not null"`
}

// DedupeKey normalizes company name and domain into the derived key used for
// duplicate and suppression matching. Only letters and digits survive; the
// domain loses its leading www.
func DedupeKey(companyName, companyDomain string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(companyName)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	domain := strings.ToLower(strings.TrimSpace(companyDomain))
	domain = strings.TrimPrefix(domain, "www.")
	if domain != "" {
		b.WriteString("|")
		b.WriteString(domain)
	}
	return b.String()
}
