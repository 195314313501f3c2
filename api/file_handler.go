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
	"github.com/prospectiq/dataops-backend/query"
	"github.com/prospectiq/dataops-backend/services"
	"github.com/prospectiq/dataops-backend/validate"
)

var fileFilterSpec = query.FilterSpec{
	"name":      {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpLike}},
	"type":      {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpIn}},
	"format":    {Type: query.TypeString, Operators: []string{query.OpEqual}},
	"createdBy": {Type: query.TypeString, Operators: []string{query.OpEqual}, Column: "created_by"},
}

var fileSortSpec = query.SortSpec{
	Columns:      []string{"name", "type", "created_at"},
	MultipleSort: false,
}

type fileHandler struct {
	responder      Responder
	logger         zerolog.Logger
	fileRepo       *database.FileRepo
	sharedFileRepo *database.SharedFileRepo
	fileService    *services.FileService
}

func newFileHandler(fileRepo *database.FileRepo, sharedFileRepo *database.SharedFileRepo, fileService *services.FileService) fileHandler {
	logger := log.With().Str("handlerName", "fileHandler").Logger()

	return fileHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		fileRepo:       fileRepo,
		sharedFileRepo: sharedFileRepo,
		fileService:    fileService,
	}
}

// getAllFiles lists the files visible to one project. onlySharedFiles narrows
// the result to the client's suppression files linked into the project;
// details joins each file's job row.
func (h fileHandler) getAllFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectId"))
			return
		}

		if boolParam(r, "onlySharedFiles") {
			sharedFiles, err := h.sharedFileRepo.FindAllForProject(projectID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "shared files", err))
				return
			}
			h.responder.WriteJSON(w, ListResponse{TotalCount: int64(len(sharedFiles)), Docs: sharedFiles})
			return
		}

		scopes, err := parseListScopes(r, fileFilterSpec, fileSortSpec)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		total, files, err := h.fileRepo.FindAllByProject(projectID, boolParam(r, "details"), parsePage(r), scopes...)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "files", err))
			return
		}

		h.responder.WriteJSON(w, ListResponse{TotalCount: total, Docs: files})
	}
}

// getFile returns one file. shouldGenerateDownloadUrl=true additionally
// presigns a short-lived download URL for the stored object.
func (h fileHandler) getFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid fileID"))
			return
		}

		file, err := h.fileRepo.FindByID(fileID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "file", err))
			return
		}

		response := map[string]any{}
		if file != nil {
			response["file"] = file
		} else {
			sharedFile, err := h.sharedFileRepo.FindByID(fileID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "file", err))
				return
			}
			if sharedFile == nil {
				h.responder.WriteError(w, errs.NewFileNotFoundError(fileID.String()))
				return
			}
			response["file"] = sharedFile
		}

		if boolParam(r, "shouldGenerateDownloadUrl") {
			url, err := h.fileService.DownloadURL(r.Context(), fileID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			response["downloadUrl"] = url
		}

		h.responder.WriteJSON(w, response)
	}
}

// createFile registers a new file and hands back a presigned upload URL.
func (h fileHandler) createFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var body struct {
			File json.RawMessage `json:"file"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.File == nil {
			h.responder.WriteError(w, errs.Malformed("file payload"))
			return
		}

		var asMap map[string]any
		if err := json.Unmarshal(body.File, &asMap); err != nil {
			h.responder.WriteError(w, errs.Malformed("file payload"))
			return
		}
		if missing := validate.MissingKeys(asMap, []string{"name", "type", "projectId", "clientId"}); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldsError(missing))
			return
		}

		var payload struct {
			Name      string         `json:"name"`
			Type      string         `json:"type"`
			Format    string         `json:"format"`
			Mapping   datatypes.JSON `json:"mapping"`
			ProjectID uuid.UUID      `json:"projectId"`
			ClientID  uuid.UUID      `json:"clientId"`
		}
		if err := json.Unmarshal(body.File, &payload); err != nil {
			h.responder.WriteError(w, errs.Malformed("file payload"))
			return
		}

		result, err := h.fileService.Create(r.Context(), services.CreateFileInput{
			ProjectID: payload.ProjectID,
			ClientID:  payload.ClientID,
			Name:      payload.Name,
			Type:      payload.Type,
			Format:    payload.Format,
			Mapping:   payload.Mapping,
			CreatedBy: userID,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, result)
	}
}

// deleteFile removes a file's rows and, after commit, its stored object. A
// suppression file whose job is still processing is refused with 409.
func (h fileHandler) deleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid fileID"))
			return
		}

		if err := h.fileService.DeleteByID(r.Context(), fileID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "file deleted successfully",
		})
	}
}

// getFacets returns, per client, the count of shared suppression files.
func (h fileHandler) getFacets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facets, err := h.sharedFileRepo.ClientFacets()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "shared file facets", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"facets": facets})
	}
}

// sharedFileExists answers whether the client already has a suppression file
// with the given name, so the frontend can warn before re-uploading.
func (h fileHandler) sharedFileExists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid clientID"))
			return
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing name"))
			return
		}

		exists, err := h.sharedFileRepo.Exists(clientID, name)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "shared file", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"exists": exists})
	}
}
