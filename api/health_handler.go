package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prospectiq/dataops-backend/database"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, dbStatus := "ok", "ok"
		statusCode := http.StatusOK
		if err := h.db.Ping(); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			status, dbStatus = "degraded", "unreachable"
			statusCode = http.StatusServiceUnavailable
		}

		h.responder.WriteJSONStatus(w, statusCode, map[string]string{
			"status":   status,
			"uptime":   time.Since(h.startupTime).Round(time.Second).String(),
			"database": dbStatus,
		})
	}
}
