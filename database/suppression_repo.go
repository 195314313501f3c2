package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type SuppressionMatchRepo struct {
	db *gorm.DB
}

func NewSuppressionMatchRepo(db *gorm.DB) *SuppressionMatchRepo {
	return &SuppressionMatchRepo{db}
}

// DeleteByFileID removes every match recorded against a suppression file.
func (r *SuppressionMatchRepo) DeleteByFileID(fileID uuid.UUID) error {
	return r.db.Delete(&models.SuppressionMatch{}, "file_id = ?", fileID).Error
}

// DeleteByProject removes every match of a project.
func (r *SuppressionMatchRepo) DeleteByProject(projectID uuid.UUID) error {
	return r.db.Delete(&models.SuppressionMatch{}, "project_id = ?", projectID).Error
}

// FindByDedupeKey returns matches for a dedupe key within one project.
func (r *SuppressionMatchRepo) FindByDedupeKey(projectID uuid.UUID, dedupeKey string) ([]*models.SuppressionMatch, error) {
	var matches []*models.SuppressionMatch
	err := r.db.Where("project_id = ? AND dedupe_key = ?", projectID, dedupeKey).Find(&matches).Error
	return matches, err
}

type MasterContactRepo struct {
	db *gorm.DB
}

func NewMasterContactRepo(db *gorm.DB) *MasterContactRepo {
	return &MasterContactRepo{db}
}

// Add inserts a master contact row; a duplicate work email within the project
// violates the unique index and surfaces as a conflict.
func (r *MasterContactRepo) Add(contact *models.MasterContact) error {
	return r.db.Create(contact).Error
}

// CountByProject returns the number of master contacts in a project.
func (r *MasterContactRepo) CountByProject(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.MasterContact{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// ExistsByDedupeKey reports whether a contact with this dedupe key already
// exists in the project.
func (r *MasterContactRepo) ExistsByDedupeKey(projectID uuid.UUID, dedupeKey string) (bool, error) {
	var count int64
	err := r.db.Model(&models.MasterContact{}).
		Where("project_id = ? AND dedupe_key = ?", projectID, dedupeKey).
		Count(&count).Error
	return count > 0, err
}

// DeleteByProject removes every master contact of a project.
func (r *MasterContactRepo) DeleteByProject(projectID uuid.UUID) error {
	return r.db.Delete(&models.MasterContact{}, "project_id = ?", projectID).Error
}
