package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type JobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) *JobRepo {
	return &JobRepo{db}
}

// FindByFileID returns the job tracking a file's ingestion, or nil.
func (r *JobRepo) FindByFileID(fileID uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "file_id = ?", fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Add inserts a job row.
func (r *JobRepo) Add(job *models.Job) error {
	return r.db.Create(job).Error
}

// Update persists job status and counter changes.
func (r *JobRepo) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

// DeleteErrorsByJobID removes every error row of a job.
func (r *JobRepo) DeleteErrorsByJobID(jobID uuid.UUID) error {
	return r.db.Delete(&models.JobError{}, "job_id = ?", jobID).Error
}

// Delete removes a job row by id.
func (r *JobRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Job{}, "id = ?", id).Error
}

type FileChunkRepo struct {
	db *gorm.DB
}

func NewFileChunkRepo(db *gorm.DB) *FileChunkRepo {
	return &FileChunkRepo{db}
}

// DeleteByFileID removes every staged chunk of a file.
func (r *FileChunkRepo) DeleteByFileID(fileID uuid.UUID) error {
	return r.db.Delete(&models.FileChunk{}, "file_id = ?", fileID).Error
}
