package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

const defaultEventsLimit = 50

// GetEventsHandler godoc
// @Summary Recent inventory changes, newest first
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Success 200 {object} EventsResult
// @Failure 400 {string} string "Invalid limit"
// @Failure 500 {string} string "Internal error"
// @Router /events [get]
// @Security BearerAuth
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultEventsLimit)
	if err != nil || limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	events, err := s.events.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("could not read event log", zap.Error(err))
		http.Error(w, "could not read events", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusOK, EventsResult{
		Data: events,
		Meta: Meta{TotalCount: len(events)},
	})
}
