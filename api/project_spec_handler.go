package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/validate"
)

type projectSpecHandler struct {
	responder Responder
	logger    zerolog.Logger
	specRepo  *database.ProjectSpecRepo
}

func newProjectSpecHandler(specRepo *database.ProjectSpecRepo) projectSpecHandler {
	logger := log.With().Str("handlerName", "projectSpecHandler").Logger()

	return projectSpecHandler{
		responder: NewResponder(logger),
		logger:    logger,
		specRepo:  specRepo,
	}
}

func (h projectSpecHandler) getAllSpecs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		specs, err := h.specRepo.FindAllByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project specs", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projectSpecs": specs})
	}
}

func (h projectSpecHandler) getSpec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, specID, err := specPathIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		spec, err := h.specRepo.FindByID(projectID, specID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project spec", err))
			return
		}
		if spec == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project spec not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projectSpec": spec})
	}
}

func (h projectSpecHandler) createSpec() http.HandlerFunc {
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

		var body struct {
			ProjectSpec json.RawMessage `json:"projectSpec"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectSpec == nil {
			h.responder.WriteError(w, errs.Malformed("projectSpec payload"))
			return
		}

		var asMap map[string]any
		if err := json.Unmarshal(body.ProjectSpec, &asMap); err != nil {
			h.responder.WriteError(w, errs.Malformed("projectSpec payload"))
			return
		}
		if missing := validate.MissingKeys(asMap, []string{"name", "values"}); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldsError(missing))
			return
		}

		var spec models.ProjectSpec
		if err := json.Unmarshal(body.ProjectSpec, &spec); err != nil {
			h.responder.WriteError(w, errs.Malformed("projectSpec payload"))
			return
		}

		spec.ID = uuid.New()
		spec.ProjectID = projectID
		spec.CreatedBy = userID

		if err := h.specRepo.Add(&spec); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project spec", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"projectSpec": spec})
	}
}

func (h projectSpecHandler) updateSpec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, specID, err := specPathIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.specRepo.FindByID(projectID, specID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project spec", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project spec not found"))
			return
		}

		var body struct {
			ProjectSpec map[string]json.RawMessage `json:"projectSpec"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectSpec == nil {
			h.responder.WriteError(w, errs.Malformed("projectSpec payload"))
			return
		}

		if raw, ok := body.ProjectSpec["name"]; ok {
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				h.responder.WriteError(w, errs.NewInvalidJSONError("name", err))
				return
			}
			existing.Name = name
		}
		if raw, ok := body.ProjectSpec["values"]; ok {
			existing.Values = datatypes.JSON(raw)
		}
		if raw, ok := body.ProjectSpec["comments"]; ok {
			existing.Comments = datatypes.JSON(raw)
		}
		existing.UpdatedBy = userID

		if err := h.specRepo.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project spec", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projectSpec": existing})
	}
}

func (h projectSpecHandler) deleteSpec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, specID, err := specPathIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.specRepo.FindByID(projectID, specID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project spec", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project spec not found"))
			return
		}

		if err := h.specRepo.Delete(projectID, specID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project spec", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project spec deleted successfully",
		})
	}
}

func specPathIDs(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	specID, err := uuid.Parse(chi.URLParam(r, "specID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.NewBadRequestError("invalid specID")
	}
	return projectID, specID, nil
}
