package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/errs"
	"github.com/prospectiq/dataops-backend/models"
	"github.com/prospectiq/dataops-backend/validate"
)

type projectSettingHandler struct {
	responder   Responder
	logger      zerolog.Logger
	settingRepo *database.ProjectSettingRepo
}

func newProjectSettingHandler(settingRepo *database.ProjectSettingRepo) projectSettingHandler {
	logger := log.With().Str("handlerName", "projectSettingHandler").Logger()

	return projectSettingHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		settingRepo: settingRepo,
	}
}

func (h projectSettingHandler) getSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		setting, err := h.settingRepo.FindByProjectID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project setting", err))
			return
		}
		if setting == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project setting not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projectSetting": setting})
	}
}

// updateSetting applies partial changes to the project's single setting row.
// contactExpiry must stay a positive multiple of 30 days capped at 360.
func (h projectSettingHandler) updateSetting() http.HandlerFunc {
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

		existing, err := h.settingRepo.FindByProjectID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project setting", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project setting not found"))
			return
		}

		var body struct {
			ProjectSetting map[string]any `json:"projectSetting"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectSetting == nil {
			h.responder.WriteError(w, errs.Malformed("projectSetting payload"))
			return
		}

		fields := validate.StripNull(body.ProjectSetting)
		if err := applySettingFields(existing, fields); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		existing.UpdatedBy = userID

		if err := h.settingRepo.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project setting", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projectSetting": existing})
	}
}

func applySettingFields(setting *models.ProjectSetting, fields map[string]any) error {
	if v, ok := fields["target"].(float64); ok {
		setting.Target = int(v)
	}
	if v, ok := fields["contactsPerAccount"].(float64); ok {
		setting.ContactsPerAccount = int(v)
	}
	if v, ok := fields["clientPoc"].(string); ok {
		setting.ClientPoc = v
	}
	if v, ok := fields["priority"].(string); ok {
		setting.Priority = v
	}
	if v, ok := fields["status"].(string); ok {
		setting.Status = v
	}
	if v, ok := fields["description"].(string); ok {
		setting.Description = v
	}
	if v, ok := fields["contactExpiry"].(float64); ok {
		expiry := int(v)
		if !models.ValidContactExpiry(expiry) {
			return errs.NewBadRequestErrorWithField(
				"invalid contactExpiry",
				"contactExpiry",
				fmt.Sprintf("must be a multiple of %d between %d and %d", models.ContactExpiryStep, models.ContactExpiryStep, models.ContactExpiryMax),
			)
		}
		setting.ContactExpiry = expiry
	}
	return nil
}
