package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/validate"
)

type projectTypeHandler struct {
	responder       Responder
	logger          zerolog.Logger
	projectTypeRepo *database.ProjectTypeRepo
}

func newProjectTypeHandler(projectTypeRepo *database.ProjectTypeRepo) projectTypeHandler {
	logger := log.With().Str("handlerName", "projectTypeHandler").Logger()

	return projectTypeHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		projectTypeRepo: projectTypeRepo,
	}
}

// getAllProjectTypes returns the reference list of project types. An empty
// table answers 204 so callers can distinguish "nothing configured yet".
func (h projectTypeHandler) getAllProjectTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := h.projectTypeRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project types", err))
			return
		}

		if len(types) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h.responder.WriteJSON(w, types)
	}
}

func (h projectTypeHandler) createProjectType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProjectType json.RawMessage `json:"projectType"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectType == nil {
			h.responder.WriteError(w, errs.Malformed("projectType payload"))
			return
		}

		var asMap map[string]any
		if err := json.Unmarshal(body.ProjectType, &asMap); err != nil {
			h.responder.WriteError(w, errs.Malformed("projectType payload"))
			return
		}
		if missing := validate.MissingKeys(asMap, []string{"type"}); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldsError(missing))
			return
		}

		var projectType models.ProjectType
		if err := json.Unmarshal(body.ProjectType, &projectType); err != nil {
			h.responder.WriteError(w, errs.Malformed("projectType payload"))
			return
		}
		projectType.ID = uuid.New()

		if err := h.projectTypeRepo.Add(&projectType); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project type", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"projectType": projectType})
	}
}
