package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type ProjectUserRepo struct {
	db *gorm.DB
}

func NewProjectUserRepo(db *gorm.DB) *ProjectUserRepo {
	return &ProjectUserRepo{db}
}

// FindAllByProject returns every membership row for a project.
func (r *ProjectUserRepo) FindAllByProject(projectID uuid.UUID) ([]*models.ProjectUser, error) {
	var users []*models.ProjectUser
	err := r.db.Where("project_id = ?", projectID).Find(&users).Error
	return users, err
}

// FindMembership returns one user's membership in a project, or nil.
func (r *ProjectUserRepo) FindMembership(projectID uuid.UUID, userID string) (*models.ProjectUser, error) {
	var membership models.ProjectUser
	err := r.db.First(&membership, "project_id = ? AND user_id = ?", projectID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Add inserts a membership row.
func (r *ProjectUserRepo) Add(membership *models.ProjectUser) error {
	return r.db.Create(membership).Error
}

// Delete removes one user's membership from a project.
func (r *ProjectUserRepo) Delete(projectID uuid.UUID, userID string) error {
	return r.db.Delete(&models.ProjectUser{}, "project_id = ? AND user_id = ?", projectID, userID).Error
}

// CanDeleteProject reports whether userID holds the owner_main membership on
// the project. Managers bypass this check at the handler layer.
func (r *ProjectUserRepo) CanDeleteProject(projectID uuid.UUID, userID string) (bool, error) {
	membership, err := r.FindMembership(projectID, userID)
	if err != nil {
		return false, err
	}
	return membership != nil && membership.UserLevel == models.UserLevelOwnerMain, nil
}
