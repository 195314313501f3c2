package models

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses as stored in the status column.
const (
	ProjectStatusActive    = "Active"
	ProjectStatusOnHold    = "On Hold"
	ProjectStatusCompleted = "Completed"
)

// Project represents one engagement for a client. It owns a single setting row,
// user memberships, specs, files and (indirectly) master contact rows.
type Project struct {
	ID            uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name          string     `json:"name" db:"name" gorm:"type:text;not null"`
	AliasName     string     `json:"aliasName" db:"alias_name" gorm:"type:text"`
	ClientID      uuid.UUID  `json:"clientId" db:"client_id" gorm:"type:uuid;not null;index"`
	ProjectTypeID uuid.UUID  `json:"projectTypeId" db:"project_type_id" gorm:"type:uuid;not null"`
	TemplateID    *uuid.UUID `json:"templateId,omitempty" db:"template_id" gorm:"type:uuid"`
	ReceivedDate  *time.Time `json:"receivedDate,omitempty" db:"received_date"`
	DueDate       *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Description   string     `json:"description" db:"description" gorm:"type:text"`
	Status        string     `json:"status" db:"status" gorm:"type:text;not null;default:Active"`
	Priority      string     `json:"priority" db:"priority" gorm:"type:text"`
	CreatedBy     string     `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	UpdatedBy     string     `json:"updatedBy" db:"updated_by" gorm:"type:text"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`

	Setting *ProjectSetting `json:"setting,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Users   []ProjectUser   `json:"users,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Specs   []ProjectSpec   `json:"specs,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Files   []File          `json:"files,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
