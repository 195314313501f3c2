package api

import (
	"time"

	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, fileService *services.FileService, projectService *services.ProjectService, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		clientHandler:         newClientHandler(db.ClientRepo()),
		projectHandler:        newProjectHandler(db.ProjectRepo(), db.ProjectUserRepo(), projectService),
		projectSettingHandler: newProjectSettingHandler(db.ProjectSettingRepo()),
		projectSpecHandler:    newProjectSpecHandler(db.ProjectSpecRepo()),
		projectTypeHandler:    newProjectTypeHandler(db.ProjectTypeRepo()),
		projectUserHandler:    newProjectUserHandler(db.ProjectUserRepo()),
		fileHandler:           newFileHandler(db.FileRepo(), db.SharedFileRepo(), fileService),
		healthHandler:         newHealthHandler(db, startupTime),
	}
}
