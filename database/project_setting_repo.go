package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type ProjectSettingRepo struct {
	db *gorm.DB
}

func NewProjectSettingRepo(db *gorm.DB) *ProjectSettingRepo {
	return &ProjectSettingRepo{db}
}

// FindByProjectID returns the single setting row for a project, or nil.
func (r *ProjectSettingRepo) FindByProjectID(projectID uuid.UUID) (*models.ProjectSetting, error) {
	var setting models.ProjectSetting
	err := r.db.First(&setting, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Add inserts a setting row.
func (r *ProjectSettingRepo) Add(setting *models.ProjectSetting) error {
	return r.db.Create(setting).Error
}

// Update persists an existing setting row.
func (r *ProjectSettingRepo) Update(setting *models.ProjectSetting) error {
	return r.db.Save(setting).Error
}
