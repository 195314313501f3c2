package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProjectSpec is an arbitrary named key/value document scoped to one project,
// e.g. targeting criteria or delivery instructions captured free-form.
type ProjectSpec struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID      `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	Name      string         `json:"name" db:"name" gorm:"type:text;not null"`
	Values    datatypes.JSON `json:"values" db:"values"`
	Comments  datatypes.JSON `json:"comments,omitempty" db:"comments"`
	CreatedBy string         `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	UpdatedBy string         `json:"updatedBy" db:"updated_by" gorm:"type:text"`
}
