package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
)

func testProjectService(t *testing.T) (*ProjectService, *models.Project) {
	t.Helper()

	fileSvc, d, _, _ := testFileService(t)
	svc := NewProjectService(d, fileSvc)

	client := &models.Client{ID: uuid.New(), Name: "Acme Corp", Pseudonym: "AC", CreatedBy: "tester"}
	if err := d.ClientRepo().Add(client); err != nil {
		t.Fatalf("seeding client: %v", err)
	}
	projectType := &models.ProjectType{ID: uuid.New(), Type: "Contact Discovery"}
	if err := d.ProjectTypeRepo().Add(projectType); err != nil {
		t.Fatalf("seeding project type: %v", err)
	}

	project := &models.Project{
		Name:          "Q3 Outreach",
		ClientID:      client.ID,
		ProjectTypeID: projectType.ID,
	}
	return svc, project
}

func TestProjectCreateDefaultsContactExpiry(t *testing.T) {
	svc, project := testProjectService(t)

	created, err := svc.Create(project, nil, "user-1")
	if err != nil {
		t.Fatalf("creating project: %v", err)
	}
	if created.Setting == nil {
		t.Fatal("created project has no setting")
	}
	if created.Setting.ContactExpiry != models.ContactExpiryStep {
		t.Errorf("contactExpiry = %d, want %d", created.Setting.ContactExpiry, models.ContactExpiryStep)
	}
}

func TestProjectCreateRejectsInvalidContactExpiry(t *testing.T) {
	for _, expiry := range []int{0, -30, 45, 390} {
		svc, project := testProjectService(t)

		_, err := svc.Create(project, &models.ProjectSetting{ContactExpiry: expiry}, "user-1")
		if err == nil {
			t.Errorf("contactExpiry %d accepted, want rejection", expiry)
			continue
		}
		var apiErr *errs.ApiErr
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("contactExpiry %d: error = %v, want 400", expiry, err)
			continue
		}
		if apiErr.Field != "contactExpiry" {
			t.Errorf("contactExpiry %d: field = %q, want contactExpiry", expiry, apiErr.Field)
		}
	}
}
