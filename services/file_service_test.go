package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/tasks"
)

type fakeStore struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStore) PresignUpload(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://store.example/%s/%s?sig=put", bucket, key), nil
}

func (f *fakeStore) PresignDownload(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://store.example/%s/%s?sig=get", bucket, key), nil
}

func (f *fakeStore) Delete(_ context.Context, bucket, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, bucket+"/"+key)
	return nil
}

type fakeQueue struct {
	enqueued []tasks.Task
	err      error
}

func (f *fakeQueue) Enqueue(_ context.Context, task tasks.Task) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, task)
	return nil
}

func testFileService(t *testing.T) (*FileService, database.Database, *fakeStore, *fakeQueue) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	// The in-memory database lives per connection; keep the pool at one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	d := database.New(db)
	if err := d.Migrate(); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	store := &fakeStore{}
	queue := &fakeQueue{}
	svc := NewFileService(d, store, queue, Buckets{
		Process: "process-bucket",
		Support: "support-bucket",
	}, "https://ingest.example/callback")
	return svc, d, store, queue
}

func TestCreateSuppressionFileWritesSharedFileAndJob(t *testing.T) {
	svc, d, _, queue := testFileService(t)

	projectID, clientID := uuid.New(), uuid.New()
	result, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: projectID,
		ClientID:  clientID,
		Name:      "blocklist.csv",
		Type:      models.FileTypeSuppression,
		Format:    "csv",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.UploadURL == "" {
		t.Error("no upload URL returned")
	}

	shared, err := d.SharedFileRepo().FindByID(result.FileID)
	if err != nil {
		t.Fatalf("loading shared file: %v", err)
	}
	if shared == nil {
		t.Fatal("suppression upload did not create a shared file row")
	}
	if shared.ClientID != clientID {
		t.Errorf("shared file client = %s, want %s", shared.ClientID, clientID)
	}
	if len(shared.Projects) != 1 || shared.Projects[0].ProjectID != projectID {
		t.Errorf("project links = %+v, want one link to %s", shared.Projects, projectID)
	}
	wantKey := models.ObjectKey(projectID, models.FileTypeSuppression, result.FileID, ".csv")
	if shared.Location != wantKey {
		t.Errorf("location = %q, want %q", shared.Location, wantKey)
	}

	job, err := d.JobRepo().FindByFileID(result.FileID)
	if err != nil {
		t.Fatalf("loading job: %v", err)
	}
	if job == nil {
		t.Fatal("no job created for suppression file")
	}
	if job.Status != models.JobStatusQueued || job.OperationName != models.OperationAccountSuppression {
		t.Errorf("job = %s/%s, want Queued/accountSuppression", job.Status, job.OperationName)
	}

	if len(queue.enqueued) != 1 {
		t.Fatalf("enqueued %d tasks, want 1", len(queue.enqueued))
	}
	if queue.enqueued[0].URL != "https://ingest.example/callback" {
		t.Errorf("task URL = %q", queue.enqueued[0].URL)
	}
}

func TestCreateSupportingDocumentSkipsJob(t *testing.T) {
	svc, d, _, queue := testFileService(t)

	result, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "contract.pdf",
		Type:      models.FileTypeSupportingDocument,
		Format:    ".pdf",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	file, err := d.FileRepo().FindByID(result.FileID)
	if err != nil {
		t.Fatalf("loading file: %v", err)
	}
	if file == nil {
		t.Fatal("supporting document row missing")
	}

	job, err := d.JobRepo().FindByFileID(result.FileID)
	if err != nil {
		t.Fatalf("loading job: %v", err)
	}
	if job != nil {
		t.Errorf("supporting document got a job: %+v", job)
	}
	if len(queue.enqueued) != 0 {
		t.Errorf("enqueued %d tasks, want 0", len(queue.enqueued))
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _, _, _ := testFileService(t)

	_, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "mystery.bin",
		Type:      "Mystery",
		CreatedBy: "tester",
	})
	if !errs.IsUnknownFileType(err) {
		t.Fatalf("error = %v, want unknown file type", err)
	}
}

func TestCreateSurvivesEnqueueFailure(t *testing.T) {
	svc, d, _, queue := testFileService(t)
	queue.err = fmt.Errorf("queue unavailable")

	result, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "imports.csv",
		Type:      models.FileTypeImport,
		Format:    "csv",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create failed on enqueue error: %v", err)
	}

	// The job stays Queued for the reconciler even though the callback was lost.
	job, err := d.JobRepo().FindByFileID(result.FileID)
	if err != nil {
		t.Fatalf("loading job: %v", err)
	}
	if job == nil || job.Status != models.JobStatusQueued {
		t.Fatalf("job = %+v, want Queued", job)
	}
}

func TestDownloadURLFallsBackToSharedFiles(t *testing.T) {
	svc, _, _, _ := testFileService(t)

	created, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "blocklist.csv",
		Type:      models.FileTypeSuppression,
		Format:    "csv",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	url, err := svc.DownloadURL(context.Background(), created.FileID)
	if err != nil {
		t.Fatalf("DownloadURL: %v", err)
	}
	if url == "" {
		t.Error("empty download URL")
	}

	if _, err := svc.DownloadURL(context.Background(), uuid.New()); !errs.IsFileNotFound(err) {
		t.Fatalf("error = %v, want file not found", err)
	}
}

func TestDeleteSuppressionFileRefusedWhileProcessing(t *testing.T) {
	svc, d, store, _ := testFileService(t)

	created, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "blocklist.csv",
		Type:      models.FileTypeSuppression,
		Format:    "csv",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	job, err := d.JobRepo().FindByFileID(created.FileID)
	if err != nil || job == nil {
		t.Fatalf("loading job: %v", err)
	}
	job.Status = models.JobStatusProcessing
	if err := d.JobRepo().Update(job); err != nil {
		t.Fatalf("marking job processing: %v", err)
	}

	err = svc.DeleteByID(context.Background(), created.FileID)
	if !errs.IsJobProcessing(err) {
		t.Fatalf("error = %v, want job processing conflict", err)
	}

	// Nothing was removed.
	shared, err := d.SharedFileRepo().FindByID(created.FileID)
	if err != nil || shared == nil {
		t.Fatal("shared file removed despite processing job")
	}
	if len(store.deleted) != 0 {
		t.Errorf("storage objects deleted: %v", store.deleted)
	}
}

func TestDeleteSuppressionFileRemovesRowsAndObject(t *testing.T) {
	svc, d, store, _ := testFileService(t)

	created, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "blocklist.csv",
		Type:      models.FileTypeSuppression,
		Format:    "csv",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.DeleteByID(context.Background(), created.FileID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}

	shared, err := d.SharedFileRepo().FindByID(created.FileID)
	if err != nil {
		t.Fatalf("reloading shared file: %v", err)
	}
	if shared != nil {
		t.Error("shared file row survived delete")
	}
	job, err := d.JobRepo().FindByFileID(created.FileID)
	if err != nil {
		t.Fatalf("reloading job: %v", err)
	}
	if job != nil {
		t.Error("job row survived delete")
	}
	if len(store.deleted) != 1 {
		t.Fatalf("deleted objects = %v, want exactly one", store.deleted)
	}
}

func TestDeleteToleratesStorageFailure(t *testing.T) {
	svc, d, store, _ := testFileService(t)

	created, err := svc.Create(context.Background(), CreateFileInput{
		ProjectID: uuid.New(),
		ClientID:  uuid.New(),
		Name:      "contract.pdf",
		Type:      models.FileTypeSupportingDocument,
		Format:    "pdf",
		CreatedBy: "tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.deleteErr = fmt.Errorf("bucket unreachable")

	if err := svc.DeleteByID(context.Background(), created.FileID); err != nil {
		t.Fatalf("DeleteByID failed on storage error: %v", err)
	}

	file, err := d.FileRepo().FindByID(created.FileID)
	if err != nil {
		t.Fatalf("reloading file: %v", err)
	}
	if file != nil {
		t.Error("file row survived delete")
	}
}

func TestDeleteMissingFileReturnsNotFound(t *testing.T) {
	svc, _, _, _ := testFileService(t)

	err := svc.DeleteByID(context.Background(), uuid.New())
	if !errs.IsFileNotFound(err) {
		t.Fatalf("error = %v, want file not found", err)
	}
}

func TestDeleteObjectsContinuesPastFailures(t *testing.T) {
	svc, _, store, _ := testFileService(t)

	refs := []ObjectRef{
		{Bucket: "process-bucket", Key: "a"},
		{Bucket: "process-bucket", Key: "b"},
		{Bucket: "support-bucket", Key: "c"},
	}
	svc.DeleteObjects(context.Background(), refs)

	if len(store.deleted) != len(refs) {
		t.Errorf("deleted %d objects, want %d", len(store.deleted), len(refs))
	}
}
