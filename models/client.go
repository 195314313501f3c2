package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a tenant that owns projects and shared suppression files.
// Name and pseudonym are case-insensitively unique across clients.
type Client struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null;index"`
	Pseudonym string    `json:"pseudonym" db:"pseudonym" gorm:"type:text;not null;index"`
	CreatedBy string    `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	UpdatedBy string    `json:"updatedBy" db:"updated_by" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
