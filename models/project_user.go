package models

import (
	"time"

	"github.com/google/uuid"
)

// User levels for project memberships. owner_main is assigned to the creator
// and carries project deletion rights.
const (
	UserLevelOwnerMain = "owner_main"
	UserLevelOwner     = "owner"
	UserLevelAgent     = "agent"
)

// ProjectUser links a user to a project with a role used for access control.
type ProjectUser struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_project_user_project;uniqueIndex:idx_project_user_unique"`
	UserID    string    `json:"userId" db:"user_id" gorm:"type:text;not null;uniqueIndex:idx_project_user_unique"`
	UserLevel string    `json:"userLevel" db:"user_level" gorm:"type:text;not null"`
	CreatedBy string    `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
