package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/query"
	"github.com/prospectiq/dataops-backend/storage"
	"github.com/prospectiq/dataops-backend/tasks"
)

// Signed URL lifetimes.
const (
	uploadURLExpiry   = 10 * time.Minute
	downloadURLExpiry = 10 * time.Minute
)

// storage cleanup fan-out bound for delete-all
const deleteConcurrency = 4

// Buckets names the two object-store buckets files land in. Supporting
// documents go to Support, everything feeding an ingestion pipeline to Process.
type Buckets struct {
	Process string
	Support string
}

// FileService manages file rows, their companion jobs and the object store.
type FileService struct {
	db          database.Database
	store       storage.ObjectStore
	queue       tasks.Enqueuer
	buckets     Buckets
	callbackURL string
	logger      zerolog.Logger
}

func NewFileService(db database.Database, store storage.ObjectStore, queue tasks.Enqueuer, buckets Buckets, callbackURL string) *FileService {
	return &FileService{
		db:          db,
		store:       store,
		queue:       queue,
		buckets:     buckets,
		callbackURL: callbackURL,
		logger:      log.With().Str("serviceName", "fileService").Logger(),
	}
}

// CreateFileInput carries the validated request for a new file.
type CreateFileInput struct {
	ProjectID uuid.UUID
	ClientID  uuid.UUID
	Name      string
	Type      string
	Format    string
	Mapping   datatypes.JSON
	CreatedBy string
}

// CreateFileResult is what the caller needs to perform the upload.
type CreateFileResult struct {
	FileID    uuid.UUID `json:"fileId"`
	UploadURL string    `json:"uploadUrl"`
}

// Create registers a new file: a presigned upload URL against the bucket for
// its category, a File row (or SharedFile plus project link for Suppression),
// and, for everything but supporting documents, a Queued job plus an enqueued
// ingestion callback.
func (s *FileService) Create(ctx context.Context, in CreateFileInput) (*CreateFileResult, error) {
	operation, known := operationFor(in.Type)
	if !known && in.Type != models.FileTypeSupportingDocument {
		return nil, errs.NewUnknownFileTypeError(in.Type)
	}

	fileID := uuid.New()
	key := models.ObjectKey(in.ProjectID, in.Type, fileID, extensionFor(in.Format))
	bucket := s.bucketFor(in.Type)

	uploadURL, err := s.store.PresignUpload(ctx, bucket, key, uploadURLExpiry)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("generating upload URL", err)
	}

	now := time.Now().UTC()
	if in.Type == models.FileTypeSuppression {
		shared := &models.SharedFile{
			ID:        fileID,
			Name:      in.Name,
			Type:      in.Type,
			Format:    in.Format,
			Location:  key,
			Mapping:   in.Mapping,
			ClientID:  in.ClientID,
			CreatedBy: in.CreatedBy,
			CreatedAt: now,
			UpdatedAt: now,
		}
		link := &models.SharedFileProject{
			ID:        uuid.New(),
			ProjectID: in.ProjectID,
		}
		if err := s.db.SharedFileRepo().AddWithLink(shared, link); err != nil {
			return nil, errs.NewDatabaseError("create", "shared file", err)
		}
	} else {
		file := &models.File{
			ID:        fileID,
			Name:      in.Name,
			Type:      in.Type,
			Format:    in.Format,
			Location:  key,
			Mapping:   in.Mapping,
			ProjectID: in.ProjectID,
			CreatedBy: in.CreatedBy,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.db.FileRepo().Add(file); err != nil {
			return nil, errs.NewDatabaseError("create", "file", err)
		}
	}

	if in.Type != models.FileTypeSupportingDocument {
		param, _ := json.Marshal(map[string]string{
			"fileId":    fileID.String(),
			"projectId": in.ProjectID.String(),
			"location":  key,
		})
		job := &models.Job{
			ID:             uuid.New(),
			FileID:         fileID,
			Status:         models.JobStatusQueued,
			OperationName:  operation,
			OperationParam: param,
			CreatedBy:      in.CreatedBy,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.db.JobRepo().Add(job); err != nil {
			return nil, errs.NewDatabaseError("create", "job", err)
		}

		// The upload has not happened yet; the pipeline polls the queued job
		// after the callback fires. Enqueue failure is logged, not fatal.
		if err := s.queue.Enqueue(ctx, tasks.Task{
			URL: s.callbackURL,
			Payload: map[string]string{
				"jobId":         job.ID.String(),
				"operationName": operation,
			},
		}); err != nil {
			s.logger.Error().Err(err).Str("fileId", fileID.String()).Msg("Failed to enqueue ingestion task")
		}
	}

	return &CreateFileResult{FileID: fileID, UploadURL: uploadURL}, nil
}

// DownloadURL returns a presigned GET URL for the file, trying the per-project
// table first and the shared table second.
func (s *FileService) DownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	fileType, location, err := s.locate(fileID)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignDownload(ctx, s.bucketFor(fileType), location, downloadURLExpiry)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("generating download URL", err)
	}
	return url, nil
}

// DeleteByID removes one file: its storage object, then by category its
// dependent rows inside one transaction. A Suppression file with a job in
// Processing is refused. Unknown categories are refused outright.
func (s *FileService) DeleteByID(ctx context.Context, fileID uuid.UUID) error {
	file, err := s.db.FileRepo().FindByID(fileID)
	if err != nil {
		return errs.NewDatabaseError("find", "file", err)
	}

	var fileType, location string
	var shared *models.SharedFile
	if file != nil {
		fileType, location = file.Type, file.Location
	} else {
		shared, err = s.db.SharedFileRepo().FindByID(fileID)
		if err != nil {
			return errs.NewDatabaseError("find", "shared file", err)
		}
		if shared == nil {
			return errs.NewFileNotFoundError(fileID.String())
		}
		fileType, location = shared.Type, shared.Location
	}

	switch fileType {
	case models.FileTypeSupportingDocument:
		err = s.db.Transaction(func(tx database.Database) error {
			return tx.FileRepo().Delete(fileID)
		})

	case models.FileTypeSuppression:
		job, jobErr := s.db.JobRepo().FindByFileID(fileID)
		if jobErr != nil {
			return errs.NewDatabaseError("find", "job", jobErr)
		}
		if job != nil && job.Status == models.JobStatusProcessing {
			return errs.NewJobProcessingError(fileID.String())
		}
		err = s.db.Transaction(func(tx database.Database) error {
			if err := tx.SuppressionMatchRepo().DeleteByFileID(fileID); err != nil {
				return err
			}
			if job != nil {
				if err := tx.JobRepo().DeleteErrorsByJobID(job.ID); err != nil {
					return err
				}
				if err := tx.JobRepo().Delete(job.ID); err != nil {
					return err
				}
			}
			if err := tx.FileChunkRepo().DeleteByFileID(fileID); err != nil {
				return err
			}
			if err := tx.SharedFileRepo().DeleteLinks(fileID); err != nil {
				return err
			}
			return tx.SharedFileRepo().Delete(fileID)
		})

	case models.FileTypeImport, models.FileTypeInclusion:
		job, jobErr := s.db.JobRepo().FindByFileID(fileID)
		if jobErr != nil {
			return errs.NewDatabaseError("find", "job", jobErr)
		}
		err = s.db.Transaction(func(tx database.Database) error {
			if job != nil {
				if err := tx.JobRepo().DeleteErrorsByJobID(job.ID); err != nil {
					return err
				}
				if err := tx.JobRepo().Delete(job.ID); err != nil {
					return err
				}
			}
			if err := tx.FileChunkRepo().DeleteByFileID(fileID); err != nil {
				return err
			}
			return tx.FileRepo().Delete(fileID)
		})

	default:
		return errs.NewUnknownFileTypeError(fileType)
	}
	if err != nil {
		return errs.NewDatabaseError("delete", "file", err)
	}

	// Rows are gone; the object is reconcilable, so absence or failure here
	// does not fail the request.
	if err := s.store.Delete(ctx, s.bucketFor(fileType), location); err != nil {
		s.logger.Error().Err(err).Str("fileId", fileID.String()).Str("location", location).Msg("Failed to delete storage object")
	}
	return nil
}

// ObjectRef names one stored object pending cleanup.
type ObjectRef struct {
	Bucket string
	Key    string
}

// ProjectObjectRefs snapshots the storage locations of every file row owned by
// a project, for cleanup after the row cascade commits.
func (s *FileService) ProjectObjectRefs(projectID uuid.UUID) ([]ObjectRef, error) {
	_, files, err := s.db.FileRepo().FindAllByProject(projectID, false, query.Page{})
	if err != nil {
		return nil, err
	}
	refs := make([]ObjectRef, 0, len(files))
	for _, f := range files {
		refs = append(refs, ObjectRef{Bucket: s.bucketFor(f.Type), Key: f.Location})
	}
	return refs, nil
}

// DeleteObjects best-effort deletes the referenced objects with bounded
// fan-out. Individual failures are logged and skipped.
func (s *FileService) DeleteObjects(ctx context.Context, refs []ObjectRef) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			if err := s.store.Delete(ctx, ref.Bucket, ref.Key); err != nil {
				s.logger.Error().Err(err).Str("key", ref.Key).Msg("Failed to delete storage object, continuing")
			}
			return nil
		})
	}
	// workers never return errors; Wait only fences completion
	_ = g.Wait()
}

func (s *FileService) locate(fileID uuid.UUID) (fileType, location string, err error) {
	file, err := s.db.FileRepo().FindByID(fileID)
	if err != nil {
		return "", "", errs.NewDatabaseError("find", "file", err)
	}
	if file != nil {
		return file.Type, file.Location, nil
	}
	shared, err := s.db.SharedFileRepo().FindByID(fileID)
	if err != nil {
		return "", "", errs.NewDatabaseError("find", "shared file", err)
	}
	if shared == nil {
		return "", "", errs.NewFileNotFoundError(fileID.String())
	}
	return shared.Type, shared.Location, nil
}

func (s *FileService) bucketFor(fileType string) string {
	if fileType == models.FileTypeSupportingDocument {
		return s.buckets.Support
	}
	return s.buckets.Process
}

func operationFor(fileType string) (string, bool) {
	switch fileType {
	case models.FileTypeSuppression:
		return models.OperationAccountSuppression, true
	case models.FileTypeImport:
		return models.OperationContactImport, true
	case models.FileTypeInclusion:
		return models.OperationContactInclusion, true
	default:
		return "", false
	}
}

func extensionFor(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return ""
	}
	if strings.HasPrefix(format, ".") {
		return format
	}
	return "." + format
}
