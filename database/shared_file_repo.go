package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type SharedFileRepo struct {
	db *gorm.DB
}

func NewSharedFileRepo(db *gorm.DB) *SharedFileRepo {
	return &SharedFileRepo{db}
}

// ClientFacet is one row of the shared-file facet listing: a client that has
// at least one shared suppression file, with the count.
type ClientFacet struct {
	ClientID   uuid.UUID `json:"clientId"`
	ClientName string    `json:"clientName"`
	FileCount  int64     `json:"fileCount"`
}

// FindByID returns a shared file with its project links, or nil when absent.
func (r *SharedFileRepo) FindByID(id uuid.UUID) (*models.SharedFile, error) {
	var file models.SharedFile
	err := r.db.Preload("Projects").First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// FindAllForProject returns every shared file linked to a project.
func (r *SharedFileRepo) FindAllForProject(projectID uuid.UUID) ([]*models.SharedFile, error) {
	var files []*models.SharedFile
	err := r.db.
		Joins("JOIN shared_file_projects ON shared_file_projects.shared_file_id = shared_files.id").
		Where("shared_file_projects.project_id = ?", projectID).
		Find(&files).Error
	return files, err
}

// Exists reports whether the client already has a shared file of this name
// (case-insensitive).
func (r *SharedFileRepo) Exists(clientID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SharedFile{}).
		Where("client_id = ? AND LOWER(name) = ?", clientID, strings.ToLower(name)).
		Count(&count).Error
	return count > 0, err
}

// AddWithLink inserts the shared file and its join row to the requesting
// project in one transaction.
func (r *SharedFileRepo) AddWithLink(file *models.SharedFile, link *models.SharedFileProject) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return err
		}
		link.SharedFileID = file.ID
		return tx.Create(link).Error
	})
}

// DeleteLinks removes every project join row of a shared file.
func (r *SharedFileRepo) DeleteLinks(sharedFileID uuid.UUID) error {
	return r.db.Delete(&models.SharedFileProject{}, "shared_file_id = ?", sharedFileID).Error
}

// Delete removes a shared file row by id.
func (r *SharedFileRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.SharedFile{}, "id = ?", id).Error
}

// ClientFacets lists the distinct clients that have shared files, for filter
// selector UIs.
func (r *SharedFileRepo) ClientFacets() ([]ClientFacet, error) {
	var facets []ClientFacet
	err := r.db.Model(&models.SharedFile{}).
		Select("shared_files.client_id AS client_id, clients.name AS client_name, COUNT(shared_files.id) AS file_count").
		Joins("JOIN clients ON clients.id = shared_files.client_id").
		Group("shared_files.client_id, clients.name").
		Order("clients.name asc").
		Scan(&facets).Error
	return facets, err
}
