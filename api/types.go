package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	clientHandler         clientHandler
	projectHandler        projectHandler
	projectSettingHandler projectSettingHandler
	projectSpecHandler    projectSpecHandler
	projectTypeHandler    projectTypeHandler
	projectUserHandler    projectUserHandler
	fileHandler           fileHandler
	healthHandler         healthHandler
}

// ListResponse is the envelope every paged list endpoint returns.
type ListResponse struct {
	TotalCount int64 `json:"totalCount"`
	Docs       any   `json:"docs"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}
