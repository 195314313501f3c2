package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Job statuses for asynchronous file processing.
const (
	JobStatusQueued     = "Queued"
	JobStatusProcessing = "Processing"
	JobStatusCompleted  = "Completed"
	JobStatusFailed     = "Failed"
)

// Ingestion pipelines a job can dispatch to, keyed by the file category.
const (
	OperationAccountSuppression = "accountSuppression"
	OperationContactImport      = "contactImport"
	OperationContactInclusion   = "contactInclusion"
)

// Job tracks out-of-process ingestion of one uploaded file.
type Job struct {
	ID             uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FileID         uuid.UUID      `json:"fileId" db:"file_id" gorm:"type:uuid;not null;index"`
	Status         string         `json:"status" db:"status" gorm:"type:text;not null;default:Queued"`
	OperationName  string         `json:"operationName" db:"operation_name" gorm:"type:text;not null"`
	OperationParam datatypes.JSON `json:"operationParam,omitempty" db:"operation_param"`
	RowCount       int            `json:"rowCount" db:"row_count" gorm:"not null;default:0"`
	SuccessCount   int            `json:"successCount" db:"success_count" gorm:"not null;default:0"`
	FailureCount   int            `json:"failureCount" db:"failure_count" gorm:"not null;default:0"`
	CreatedBy      string         `json:"createdBy" db:"created_by" gorm:"type:text;not null"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

// JobError records one failed row of a job run.
type JobError struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	JobID     uuid.UUID      `json:"jobId" db:"job_id" gorm:"type:uuid;not null;index"`
	RowIndex  int            `json:"rowIndex" db:"row_index" gorm:"not null;default:0"`
	RowData   datatypes.JSON `json:"rowData,omitempty" db:"row_data"`
	ErrorDesc string         `json:"errorDesc" db:"error_desc" gorm:"type:text"`
}

// FileChunk is one slice of a large uploaded file, staged for chunked
// suppression processing.
type FileChunk struct {
	ID         uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FileID     uuid.UUID      `json:"fileId" db:"file_id" gorm:"type:uuid;not null;index"`
	ChunkIndex int            `json:"chunkIndex" db:"chunk_index" gorm:"not null"`
	Data       datatypes.JSON `json:"data,omitempty" db:"data"`
}
