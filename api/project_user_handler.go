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
	"github.com/prospectiq/dataops-backend/validate"
)

type projectUserHandler struct {
	responder       Responder
	logger          zerolog.Logger
	projectUserRepo *database.ProjectUserRepo
}

func newProjectUserHandler(projectUserRepo *database.ProjectUserRepo) projectUserHandler {
	logger := log.With().Str("handlerName", "projectUserHandler").Logger()

	return projectUserHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		projectUserRepo: projectUserRepo,
	}
}

func (h projectUserHandler) getAllProjectUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		users, err := h.projectUserRepo.FindAllByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project users", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projectUsers": users})
	}
}

// addProjectUser attaches a user to the project with a membership level. The
// (project, user) pair is unique; a second grant rejects with 409.
func (h projectUserHandler) addProjectUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := ctxGetUserID(r.Context())
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
			ProjectUser json.RawMessage `json:"projectUser"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectUser == nil {
			h.responder.WriteError(w, errs.Malformed("projectUser payload"))
			return
		}

		var asMap map[string]any
		if err := json.Unmarshal(body.ProjectUser, &asMap); err != nil {
			h.responder.WriteError(w, errs.Malformed("projectUser payload"))
			return
		}
		if missing := validate.MissingKeys(asMap, []string{"userId", "userLevel"}); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldsError(missing))
			return
		}

		var membership models.ProjectUser
		if err := json.Unmarshal(body.ProjectUser, &membership); err != nil {
			h.responder.WriteError(w, errs.Malformed("projectUser payload"))
			return
		}

		membership.ID = uuid.New()
		membership.ProjectID = projectID
		membership.CreatedBy = creatorID
		membership.CreatedAt = time.Now().UTC()

		if err := h.projectUserRepo.Add(&membership); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project user", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"projectUser": membership})
	}
}

func (h projectUserHandler) removeProjectUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}
		userID := chi.URLParam(r, "userID")
		if userID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing userID"))
			return
		}

		membership, err := h.projectUserRepo.FindMembership(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project user", err))
			return
		}
		if membership == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project user not found"))
			return
		}

		if err := h.projectUserRepo.Delete(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project user removed successfully",
		})
	}
}
