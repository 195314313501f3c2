package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/query"
	"github.com/prospectiq/dataops-backend/services"
	"github.com/prospectiq/dataops-backend/validate"
)

var projectFilterSpec = query.FilterSpec{
	"name":          {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpLike}},
	"clientId":      {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpIn}, Column: "client_id"},
	"projectTypeId": {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpIn}, Column: "project_type_id"},
	"status":        {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpIn}},
	"priority":      {Type: query.TypeString, Operators: []string{query.OpEqual}},
	"createdBy":     {Type: query.TypeString, Operators: []string{query.OpEqual}, Column: "created_by"},
	"dueDate":       {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpLess, query.OpGreater, query.OpBetween}, Column: "due_date"},
}

var projectSortSpec = query.SortSpec{
	Columns:      []string{"name", "status", "priority", "due_date", "created_at"},
	MultipleSort: true,
}

type projectHandler struct {
	responder       Responder
	logger          zerolog.Logger
	projectRepo     *database.ProjectRepo
	projectUserRepo *database.ProjectUserRepo
	projectService  *services.ProjectService
}

func newProjectHandler(projectRepo *database.ProjectRepo, projectUserRepo *database.ProjectUserRepo, projectService *services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		projectRepo:     projectRepo,
		projectUserRepo: projectUserRepo,
		projectService:  projectService,
	}
}

func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scopes, err := parseListScopes(r, projectFilterSpec, projectSortSpec)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		total, projects, err := h.projectRepo.FindAll(parsePage(r), scopes...)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ListResponse{TotalCount: total, Docs: projects})
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"project": project})
	}
}

// createProject inserts a project together with its setting row and the
// creator's owner membership in one transaction.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var body struct {
			Project        json.RawMessage `json:"project"`
			ProjectSetting json.RawMessage `json:"projectSetting"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Project == nil {
			h.responder.WriteError(w, errs.Malformed("project payload"))
			return
		}

		var asMap map[string]any
		if err := json.Unmarshal(body.Project, &asMap); err != nil {
			h.responder.WriteError(w, errs.Malformed("project payload"))
			return
		}
		if missing := validate.MissingKeys(asMap, []string{"name", "clientId", "projectTypeId"}); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldsError(missing))
			return
		}

		var project models.Project
		if err := json.Unmarshal(body.Project, &project); err != nil {
			h.responder.WriteError(w, errs.Malformed("project payload"))
			return
		}

		var setting *models.ProjectSetting
		if body.ProjectSetting != nil {
			var settingFields map[string]any
			if err := json.Unmarshal(body.ProjectSetting, &settingFields); err != nil {
				h.responder.WriteError(w, errs.Malformed("projectSetting payload"))
				return
			}
			setting = &models.ProjectSetting{}
			if err := json.Unmarshal(body.ProjectSetting, setting); err != nil {
				h.responder.WriteError(w, errs.Malformed("projectSetting payload"))
				return
			}
			// An omitted contactExpiry means the default; an explicit zero is
			// out of range and gets rejected downstream.
			if _, ok := settingFields["contactExpiry"]; !ok {
				setting.ContactExpiry = models.ContactExpiryStep
			}
		}

		created, err := h.projectService.Create(&project, setting, userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"project": created})
	}
}

// updateProject applies partial field changes. Renaming a project is reserved
// for managers; other members may edit the remaining fields.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var body struct {
			Project map[string]any `json:"project"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Project == nil {
			h.responder.WriteError(w, errs.Malformed("project payload"))
			return
		}

		fields := validate.StripNull(body.Project)
		if _, renaming := fields["name"]; renaming && !hasRole(r.Context(), RoleManager) {
			h.responder.WriteError(w, errs.NewForbiddenError("only managers can rename a project"))
			return
		}

		applyProjectFields(existing, fields)
		existing.UpdatedBy = userID
		existing.UpdatedAt = time.Now().UTC()

		if err := h.projectRepo.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"project": existing})
	}
}

// deleteProject removes a project and everything under it. Allowed for
// managers, for tokens carrying the project-delete permission grants, and for
// the project's main owner; the row cascade is transactional and stored
// objects are cleaned up afterwards on a best-effort basis.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if !hasRole(r.Context(), RoleManager) &&
			!validate.CheckPermissions(ctxGetPermissions(r.Context()), "projectDelete") {
			allowed, err := h.projectUserRepo.CanDeleteProject(projectID, userID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "project membership", err))
				return
			}
			if !allowed {
				h.responder.WriteError(w, errs.NewNoProjectDeletePermissionError())
				return
			}
		}

		if err := h.projectService.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

func applyProjectFields(project *models.Project, fields map[string]any) {
	if v, ok := fields["name"].(string); ok {
		project.Name = v
	}
	if v, ok := fields["aliasName"].(string); ok {
		project.AliasName = v
	}
	if v, ok := fields["description"].(string); ok {
		project.Description = v
	}
	if v, ok := fields["status"].(string); ok {
		project.Status = v
	}
	if v, ok := fields["priority"].(string); ok {
		project.Priority = v
	}
	if v, ok := fields["projectTypeId"].(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			project.ProjectTypeID = id
		}
	}
	if v, ok := fields["receivedDate"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			project.ReceivedDate = &t
		}
	}
	if v, ok := fields["dueDate"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			project.DueDate = &t
		}
	}
}
