package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/query"
)

type FileRepo struct {
	db *gorm.DB
}

func NewFileRepo(db *gorm.DB) *FileRepo {
	return &FileRepo{db}
}

// FindAllByProject returns the total count and one page of a project's files.
// withJob joins the companion Job row onto each file.
func (r *FileRepo) FindAllByProject(projectID uuid.UUID, withJob bool, page query.Page, scopes ...func(*gorm.DB) *gorm.DB) (int64, []*models.File, error) {
	var total int64
	if err := r.db.Model(&models.File{}).Where("project_id = ?", projectID).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	q := r.db.Where("project_id = ?", projectID).Scopes(scopes...).Scopes(page.Scope)
	if withJob {
		q = q.Preload("Job")
	}
	var files []*models.File
	err := q.Find(&files).Error
	return total, files, err
}

// FindByID returns a project file by id, or nil when absent.
func (r *FileRepo) FindByID(id uuid.UUID) (*models.File, error) {
	var file models.File
	err := r.db.Preload("Job").First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Add inserts a file row.
func (r *FileRepo) Add(file *models.File) error {
	return r.db.Create(file).Error
}

// Delete removes a file row by id.
func (r *FileRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.File{}, "id = ?", id).Error
}
