package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type ProjectSpecRepo struct {
	db *gorm.DB
}

func NewProjectSpecRepo(db *gorm.DB) *ProjectSpecRepo {
	return &ProjectSpecRepo{db}
}

// FindAllByProject returns every spec document for a project.
func (r *ProjectSpecRepo) FindAllByProject(projectID uuid.UUID) ([]*models.ProjectSpec, error) {
	var specs []*models.ProjectSpec
	err := r.db.Where("project_id = ?", projectID).Order("name asc").Find(&specs).Error
	return specs, err
}

// FindByID returns one spec scoped to its project, or nil when absent.
func (r *ProjectSpecRepo) FindByID(projectID, specID uuid.UUID) (*models.ProjectSpec, error) {
	var spec models.ProjectSpec
	err := r.db.First(&spec, "id = ? AND project_id = ?", specID, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Add inserts a new spec document.
func (r *ProjectSpecRepo) Add(spec *models.ProjectSpec) error {
	return r.db.Create(spec).Error
}

// Update persists an existing spec document.
func (r *ProjectSpecRepo) Update(spec *models.ProjectSpec) error {
	return r.db.Save(spec).Error
}

// Delete removes a spec document by id.
func (r *ProjectSpecRepo) Delete(projectID, specID uuid.UUID) error {
	return r.db.Delete(&models.ProjectSpec{}, "id = ? AND project_id = ?", specID, projectID).Error
}
