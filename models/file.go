package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// File categories. Suppression files are shared across a client's projects and
// live in the shared_files table; everything else belongs to one project.
const (
	FileTypeSupportingDocument = "Supporting Document"
	FileTypeSuppression        = "Suppression"
	FileTypeImport             = "Import"
	FileTypeInclusion          = "Inclusion"
)

// File is an uploaded file owned by exactly one project. Location is the
// deterministic object-store key, never user supplied.
type File struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string         `json:"name" db:"name" gorm:"type:text;not null"`
	Type      string         `json:"type" db:"type" gorm:"type:text;not null;index"`
	Format    string         `json:"format" db:"format" gorm:"type:text"`
	Location  string         `json:"location" db:"location" gorm:"type:text;not null"`
	Mapping   datatypes.JSON `json:"mapping,omitempty" db:"mapping"`
	ProjectID uuid.UUID      `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	CreatedBy string         `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	UpdatedBy string         `json:"updatedBy" db:"updated_by" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Job *Job `json:"job,omitempty" gorm:"foreignKey:FileID;references:ID;constraint:OnDelete:CASCADE"`
}

// SharedFile is a suppression file owned by a client and linked to the
// projects that use it through SharedFileProject rows.
type SharedFile struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string         `json:"name" db:"name" gorm:"type:text;not null"`
	Type      string         `json:"type" db:"type" gorm:"type:text;not null"`
	Format    string         `json:"format" db:"format" gorm:"type:text"`
	Location  string         `json:"location" db:"location" gorm:"type:text;not null"`
	Mapping   datatypes.JSON `json:"mapping,omitempty" db:"mapping"`
	ClientID  uuid.UUID      `json:"clientId" db:"client_id" gorm:"type:uuid;not null;index"`
	CreatedBy string         `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	UpdatedBy string         `json:"updatedBy" db:"updated_by" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Projects []SharedFileProject `json:"projects,omitempty" gorm:"foreignKey:SharedFileID;references:ID;constraint:OnDelete:CASCADE"`
}

// SharedFileProject joins a shared suppression file to a project using it.
type SharedFileProject struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SharedFileID uuid.UUID `json:"sharedFileId" db:"shared_file_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_shared_file_project_unique"`
	ProjectID    uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_shared_file_project_unique"`
}

// ObjectKey derives the storage key for a file:
// files/{projectId}/{fileType}/{fileId}{extension}
func ObjectKey(projectID uuid.UUID, fileType string, fileID uuid.UUID, extension string) string {
	return fmt.Sprintf("files/%s/%s/%s%s", projectID, fileType, fileID, extension)
}
