package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
)

// ProjectService orchestrates the project lifecycle steps that span the
// relational store and the object store.
type ProjectService struct {
	db     database.Database
	files  *FileService
	logger zerolog.Logger
}

func NewProjectService(db database.Database, files *FileService) *ProjectService {
	return &ProjectService{
		db:     db,
		files:  files,
		logger: log.With().Str("serviceName", "projectService").Logger(),
	}
}

// Create inserts the project, its setting row and the creator's owner_main
// membership in one transaction. Identifiers are generated here, never by the
// database.
func (s *ProjectService) Create(project *models.Project, setting *models.ProjectSetting, creatorID string) (*models.Project, error) {
	now := time.Now().UTC()
	project.ID = uuid.New()
	project.CreatedBy = creatorID
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}

	if setting == nil {
		setting = &models.ProjectSetting{ContactExpiry: models.ContactExpiryStep}
	}
	setting.ID = uuid.New()
	setting.CreatedBy = creatorID
	if !models.ValidContactExpiry(setting.ContactExpiry) {
		return nil, errs.NewBadRequestErrorWithField("invalid contactExpiry", "contactExpiry",
			"contactExpiry must be a positive multiple of 30, at most 360")
	}

	owner := &models.ProjectUser{
		ID:        uuid.New(),
		UserID:    creatorID,
		UserLevel: models.UserLevelOwnerMain,
		CreatedBy: creatorID,
		CreatedAt: now,
	}

	if err := s.db.ProjectRepo().Create(project, setting, owner); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}
	return s.findCreated(project.ID)
}

// Delete removes the project and every dependent row in one transaction, then
// best-effort cleans the project's objects out of storage. Storage locations
// are snapshotted before the cascade so cleanup survives the row deletes.
func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	refs, err := s.files.ProjectObjectRefs(projectID)
	if err != nil {
		// Losing the snapshot only degrades storage cleanup; the cascade
		// still runs.
		s.logger.Error().Err(err).Str("projectId", projectID.String()).Msg("Failed to snapshot file locations before delete")
	}

	if err := s.db.ProjectRepo().DeleteCascade(projectID); err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}

	s.files.DeleteObjects(ctx, refs)
	return nil
}

func (s *ProjectService) findCreated(id uuid.UUID) (*models.Project, error) {
	project, err := s.db.ProjectRepo().FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find created", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found after create")
	}
	return project, nil
}
