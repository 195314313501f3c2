package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/query"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns the total count and one page of projects after applying the
// validated filter/sort scopes.
func (r *ProjectRepo) FindAll(page query.Page, scopes ...func(*gorm.DB) *gorm.DB) (int64, []*models.Project, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var projects []*models.Project
	err := r.db.Preload("Setting").Scopes(scopes...).Scopes(page.Scope).Find(&projects).Error
	return total, projects, err
}

// FindByID returns a project with its setting and memberships, or nil when absent.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Setting").Preload("Users").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts the project, its setting row and the creator's owner_main
// membership in one transaction. Any failure rolls all three back.
func (r *ProjectRepo) Create(project *models.Project, setting *models.ProjectSetting, owner *models.ProjectUser) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		setting.ProjectID = project.ID
		if err := tx.Create(setting).Error; err != nil {
			return err
		}
		owner.ProjectID = project.ID
		return tx.Create(owner).Error
	})
}

// Update persists an existing project row. Callers apply role-filtered field
// changes before handing the row over.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteCascade removes a project and every dependent row in one transaction:
// job errors, jobs, suppression matches, master contacts, file chunks,
// shared-file links, files, setting, specs, memberships, then the project row.
// Object-store cleanup happens outside this method, after commit.
func (r *ProjectRepo) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		fileIDs := func() *gorm.DB {
			return tx.Model(&models.File{}).Select("id").Where("project_id = ?", id)
		}
		jobIDs := func() *gorm.DB {
			return tx.Model(&models.Job{}).Select("id").Where("file_id IN (?)", fileIDs())
		}

		if err := tx.Where("job_id IN (?)", jobIDs()).Delete(&models.JobError{}).Error; err != nil {
			return err
		}
		if err := tx.Where("file_id IN (?)", fileIDs()).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		if err := NewSuppressionMatchRepo(tx).DeleteByProject(id); err != nil {
			return err
		}
		if err := NewMasterContactRepo(tx).DeleteByProject(id); err != nil {
			return err
		}
		if err := tx.Where("file_id IN (?)", fileIDs()).Delete(&models.FileChunk{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.SharedFileProject{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.File{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectSpec{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
