package models

import "github.com/google/uuid"

// ProjectType is a small reference table enumerating the kinds of projects.
type ProjectType struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Type string    `json:"type" db:"type" gorm:"type:text;not null;unique"`
}
