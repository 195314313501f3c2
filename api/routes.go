package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every resource behind the auth middleware. Endpoints that
// mutate shared reference data or memberships additionally require the
// manager role.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.health())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Client endpoints
		r.Get("/client", handlers.clientHandler.getAllClients())
		r.Get("/client/{clientID}", handlers.clientHandler.getClient())
		r.Post("/client", handlers.clientHandler.createClient())
		r.Put("/client/{clientID}", handlers.clientHandler.updateClient())

		// Project endpoints
		r.Get("/project", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		// Project setting endpoints
		r.Get("/project/{projectID}/setting", handlers.projectSettingHandler.getSetting())
		r.Put("/project/{projectID}/setting", handlers.projectSettingHandler.updateSetting())

		// Project spec endpoints
		r.Get("/project/{projectID}/specs", handlers.projectSpecHandler.getAllSpecs())
		r.Post("/project/{projectID}/specs", handlers.projectSpecHandler.createSpec())
		r.Get("/project/{projectID}/specs/{specID}", handlers.projectSpecHandler.getSpec())
		r.Put("/project/{projectID}/specs/{specID}", handlers.projectSpecHandler.updateSpec())
		r.Delete("/project/{projectID}/specs/{specID}", handlers.projectSpecHandler.deleteSpec())

		// Project type reference table
		r.Get("/projects/types", handlers.projectTypeHandler.getAllProjectTypes())

		// Project user membership endpoints
		r.Get("/project/{projectID}/users", handlers.projectUserHandler.getAllProjectUsers())

		// File endpoints
		r.Get("/files", handlers.fileHandler.getAllFiles())
		r.Post("/files", handlers.fileHandler.createFile())
		r.Get("/files/facets", handlers.fileHandler.getFacets())
		r.Get("/files/{fileID}", handlers.fileHandler.getFile())
		r.Delete("/files/{fileID}", handlers.fileHandler.deleteFile())
		r.Get("/clients/{clientID}/projects/{projectID}/sharedFiles/fileExistance", handlers.fileHandler.sharedFileExists())

		// Manager-gated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireRole(RoleManager))

			r.Delete("/client/{clientID}", handlers.clientHandler.deleteClient())
			r.Post("/projects/types", handlers.projectTypeHandler.createProjectType())
			r.Post("/project/{projectID}/users", handlers.projectUserHandler.addProjectUser())
			r.Delete("/project/{projectID}/users/{userID}", handlers.projectUserHandler.removeProjectUser())
		})
	})
}
