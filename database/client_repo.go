package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/query"
)

type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db}
}

// FindAll returns the total count and one page of clients after applying the
// validated filter/sort scopes.
func (r *ClientRepo) FindAll(page query.Page, scopes ...func(*gorm.DB) *gorm.DB) (int64, []*models.Client, error) {
	var total int64
	if err := r.db.Model(&models.Client{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var clients []*models.Client
	err := r.db.Scopes(scopes...).Scopes(page.Scope).Find(&clients).Error
	return total, clients, err
}

// FindByID returns a client by its ID, or nil when absent.
func (r *ClientRepo) FindByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Add inserts a new client. Name and pseudonym are checked case-insensitively
// inside the insert transaction so two concurrent creates cannot both pass.
func (r *ClientRepo) Add(client *models.Client) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkClientUnique(tx, client, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(client).Error
	})
}

// Update persists an existing client after re-running the uniqueness checks
// against every other client.
func (r *ClientRepo) Update(client *models.Client) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkClientUnique(tx, client, client.ID); err != nil {
			return err
		}
		return tx.Save(client).Error
	})
}

// Delete removes a client from the database by id.
func (r *ClientRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Client{}, "id = ?", id).Error
}

func checkClientUnique(tx *gorm.DB, client *models.Client, excludeID uuid.UUID) error {
	var count int64
	nameQuery := tx.Model(&models.Client{}).Where("LOWER(name) = ?", strings.ToLower(client.Name))
	if excludeID != uuid.Nil {
		nameQuery = nameQuery.Where("id <> ?", excludeID)
	}
	if err := nameQuery.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewClientNameTakenError(client.Name)
	}

	pseudonymQuery := tx.Model(&models.Client{}).Where("LOWER(pseudonym) = ?", strings.ToLower(client.Pseudonym))
	if excludeID != uuid.Nil {
		pseudonymQuery = pseudonymQuery.Where("id <> ?", excludeID)
	}
	if err := pseudonymQuery.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewClientPseudonymTakenError(client.Pseudonym)
	}
	return nil
}
