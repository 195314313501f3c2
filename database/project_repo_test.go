package database

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/query"
)

func newTestProject(clientID, typeID uuid.UUID) *models.Project {
	now := time.Now().UTC()
	return &models.Project{
		ID:            uuid.New(),
		Name:          "Q3 Expansion",
		ClientID:      clientID,
		ProjectTypeID: typeID,
		Status:        models.ProjectStatusActive,
		CreatedBy:     "tester",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func seedProject(t *testing.T, d Database) *models.Project {
	t.Helper()

	client := newTestClient("Acme Corp", "AC")
	if err := d.ClientRepo().Add(client); err != nil {
		t.Fatalf("seeding client: %v", err)
	}
	projectType := &models.ProjectType{ID: uuid.New(), Type: "Contact Discovery"}
	if err := d.ProjectTypeRepo().Add(projectType); err != nil {
		t.Fatalf("seeding project type: %v", err)
	}

	project := newTestProject(client.ID, projectType.ID)
	setting := &models.ProjectSetting{ID: uuid.New(), ContactExpiry: 30, CreatedBy: "tester"}
	owner := &models.ProjectUser{
		ID:        uuid.New(),
		UserID:    "tester",
		UserLevel: models.UserLevelOwnerMain,
		CreatedBy: "tester",
		CreatedAt: time.Now().UTC(),
	}
	if err := d.ProjectRepo().Create(project, setting, owner); err != nil {
		t.Fatalf("creating project: %v", err)
	}
	return project
}

func TestProjectCreateWritesSettingAndOwner(t *testing.T) {
	d := testDatabase(t)
	project := seedProject(t, d)

	setting, err := d.ProjectSettingRepo().FindByProjectID(project.ID)
	if err != nil {
		t.Fatalf("loading setting: %v", err)
	}
	if setting == nil {
		t.Fatal("setting row missing after project create")
	}

	users, err := d.ProjectUserRepo().FindAllByProject(project.ID)
	if err != nil {
		t.Fatalf("loading memberships: %v", err)
	}
	if len(users) != 1 || users[0].UserLevel != models.UserLevelOwnerMain {
		t.Fatalf("memberships = %+v, want one owner_main row", users)
	}

	canDelete, err := d.ProjectUserRepo().CanDeleteProject(project.ID, "tester")
	if err != nil {
		t.Fatalf("CanDeleteProject: %v", err)
	}
	if !canDelete {
		t.Error("creator cannot delete their own project")
	}

	canDelete, err = d.ProjectUserRepo().CanDeleteProject(project.ID, "someone-else")
	if err != nil {
		t.Fatalf("CanDeleteProject: %v", err)
	}
	if canDelete {
		t.Error("non-member can delete the project")
	}
}

func TestProjectDeleteCascadeRemovesDependents(t *testing.T) {
	d := testDatabase(t)
	project := seedProject(t, d)

	file := &models.File{
		ID:        uuid.New(),
		Name:      "accounts.csv",
		Type:      models.FileTypeImport,
		Location:  models.ObjectKey(project.ID, models.FileTypeImport, uuid.New(), ".csv"),
		ProjectID: project.ID,
		CreatedBy: "tester",
	}
	if err := d.FileRepo().Add(file); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	job := &models.Job{
		ID:            uuid.New(),
		FileID:        file.ID,
		Status:        models.JobStatusFailed,
		OperationName: models.OperationContactImport,
		CreatedBy:     "tester",
	}
	if err := d.JobRepo().Add(job); err != nil {
		t.Fatalf("seeding job: %v", err)
	}

	gormDB := d.db
	jobError := &models.JobError{ID: uuid.New(), JobID: job.ID, RowIndex: 3, ErrorDesc: "bad email"}
	if err := gormDB.Create(jobError).Error; err != nil {
		t.Fatalf("seeding job error: %v", err)
	}
	contact := &models.MasterContact{
		ID:        uuid.New(),
		ProjectID: project.ID,
		WorkEmail: "jo@acme.example",
		DedupeKey: models.DedupeKey("Acme Corp", "acme.example"),
	}
	if err := gormDB.Create(contact).Error; err != nil {
		t.Fatalf("seeding master contact: %v", err)
	}
	match := &models.SuppressionMatch{
		ID:        uuid.New(),
		FileID:    file.ID,
		ProjectID: project.ID,
		DedupeKey: contact.DedupeKey,
		Kind:      "account",
	}
	if err := gormDB.Create(match).Error; err != nil {
		t.Fatalf("seeding suppression match: %v", err)
	}

	if err := d.ProjectRepo().DeleteCascade(project.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	remaining, err := d.ProjectRepo().FindByID(project.ID)
	if err != nil {
		t.Fatalf("reloading project: %v", err)
	}
	if remaining != nil {
		t.Fatal("project row survived cascade")
	}

	for _, probe := range []struct {
		name  string
		model any
	}{
		{"files", &models.File{}},
		{"jobs", &models.Job{}},
		{"job errors", &models.JobError{}},
		{"master contacts", &models.MasterContact{}},
		{"suppression matches", &models.SuppressionMatch{}},
		{"settings", &models.ProjectSetting{}},
		{"memberships", &models.ProjectUser{}},
	} {
		var count int64
		if err := gormDB.Model(probe.model).Count(&count).Error; err != nil {
			t.Fatalf("counting %s: %v", probe.name, err)
		}
		if count != 0 {
			t.Errorf("%s: %d rows survived cascade", probe.name, count)
		}
	}

	// The client itself is untouched.
	total, _, err := d.ClientRepo().FindAll(query.Page{})
	if err != nil {
		t.Fatalf("listing clients: %v", err)
	}
	if total != 1 {
		t.Errorf("client count = %d, want 1", total)
	}
}
