package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type ProjectTypeRepo struct {
	db *gorm.DB
}

func NewProjectTypeRepo(db *gorm.DB) *ProjectTypeRepo {
	return &ProjectTypeRepo{db}
}

// FindAll returns the whole reference table as a bare slice.
func (r *ProjectTypeRepo) FindAll() ([]*models.ProjectType, error) {
	var types []*models.ProjectType
	err := r.db.Order("type asc").Find(&types).Error
	return types, err
}

// FindByID returns one project type, or nil when absent.
func (r *ProjectTypeRepo) FindByID(id uuid.UUID) (*models.ProjectType, error) {
	var projectType models.ProjectType
	err := r.db.First(&projectType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &projectType, nil
}

// Add inserts a new reference row.
func (r *ProjectTypeRepo) Add(projectType *models.ProjectType) error {
	return r.db.Create(projectType).Error
}
