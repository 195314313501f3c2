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
	"github.com/prospectiq/dataops-backend/validate"
)

var clientFilterSpec = query.FilterSpec{
	"name":      {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpLike}},
	"pseudonym": {Type: query.TypeString, Operators: []string{query.OpEqual, query.OpLike}},
	"createdBy": {Type: query.TypeString, Operators: []string{query.OpEqual}, Column: "created_by"},
}

var clientSortSpec = query.SortSpec{
	Columns:      []string{"name", "pseudonym", "created_at"},
	MultipleSort: false,
}

type clientHandler struct {
	responder  Responder
	logger     zerolog.Logger
	clientRepo *database.ClientRepo
}

func newClientHandler(clientRepo *database.ClientRepo) clientHandler {
	logger := log.With().Str("handlerName", "clientHandler").Logger()

	return clientHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		clientRepo: clientRepo,
	}
}

// getAllClients lists clients with pagination and validated filter/sort.
func (h clientHandler) getAllClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scopes, err := parseListScopes(r, clientFilterSpec, clientSortSpec)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		total, clients, err := h.clientRepo.FindAll(parsePage(r), scopes...)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "clients", err))
			return
		}

		h.responder.WriteJSON(w, ListResponse{TotalCount: total, Docs: clients})
	}
}

func (h clientHandler) getClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid clientID"))
			return
		}

		client, err := h.clientRepo.FindByID(clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "client", err))
			return
		}
		if client == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"client": client})
	}
}

// createClient inserts a new client. Name and pseudonym are required and must
// be case-insensitively unique; a duplicate rejects with 409.
func (h clientHandler) createClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var body struct {
			Client json.RawMessage `json:"client"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Client == nil {
			h.responder.WriteError(w, errs.Malformed("client payload"))
			return
		}

		var asMap map[string]any
		if err := json.Unmarshal(body.Client, &asMap); err != nil {
			h.responder.WriteError(w, errs.Malformed("client payload"))
			return
		}
		if missing := validate.MissingKeys(asMap, []string{"name", "pseudonym"}); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldsError(missing))
			return
		}

		var client models.Client
		if err := json.Unmarshal(body.Client, &client); err != nil {
			h.responder.WriteError(w, errs.Malformed("client payload"))
			return
		}

		now := time.Now().UTC()
		client.ID = uuid.New()
		client.CreatedBy = userID
		client.CreatedAt = now
		client.UpdatedAt = now

		if err := h.clientRepo.Add(&client); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "client", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"client": client})
	}
}

// updateClient applies name/pseudonym changes. Only present, non-null fields
// are applied; uniqueness is re-checked against every other client.
func (h clientHandler) updateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid clientID"))
			return
		}

		existing, err := h.clientRepo.FindByID(clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "client", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		var body struct {
			Client map[string]any `json:"client"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Client == nil {
			h.responder.WriteError(w, errs.Malformed("client payload"))
			return
		}

		fields := validate.StripNull(body.Client)
		if name, ok := fields["name"].(string); ok {
			existing.Name = name
		}
		if pseudonym, ok := fields["pseudonym"].(string); ok {
			existing.Pseudonym = pseudonym
		}
		existing.UpdatedBy = userID
		existing.UpdatedAt = time.Now().UTC()

		if err := h.clientRepo.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "client", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"client": existing})
	}
}

func (h clientHandler) deleteClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid clientID"))
			return
		}

		existing, err := h.clientRepo.FindByID(clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "client", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		if err := h.clientRepo.Delete(clientID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "client", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "client deleted successfully",
		})
	}
}
