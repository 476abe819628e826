package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventforms/internal/delivery/http/helpers"
	"eventforms/internal/domain"
)

// EventController serves the list view: listing, updating, and deleting
// stored events plus an aggregate stats summary.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List all events
// @Description Returns every stored event. An absent or unreadable store yields an empty list.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetStatsSuccessResponse is the success response envelope for GET /events/stats (200).
type GetStatsSuccessResponse struct {
	Data  *domain.EventStats `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetStats godoc
// @Summary Event collection summary
// @Description Returns totals by category, priority, and online/offline for the stats panel.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.GetStatsSuccessResponse "data contains the aggregates"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/stats [get]
func (c *EventController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// UpdateEventRequest carries the updatable event fields; absent fields are
// left untouched by the merge.
type UpdateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Duration        *int    `json:"duration"`
	Location        *string `json:"location"`
	Online          *bool   `json:"online"`
	MeetingURL      *string `json:"meetingUrl"`
	MaxParticipants *int    `json:"maxParticipants"`
	Priority        *string `json:"priority"`
}

// Validate implements Validator. Only provided fields are checked.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Category != nil && !domain.Category(*u.Category).Valid() {
		errs = append(errs, "category must be one of conference, workshop, meetup or webinar")
	}
	if u.Priority != nil && !domain.Priority(*u.Priority).Valid() {
		errs = append(errs, "priority must be one of low, medium or high")
	}
	if u.Duration != nil && (*u.Duration < 15 || *u.Duration > 480) {
		errs = append(errs, "duration must be between 15 and 480 minutes")
	}
	if u.MaxParticipants != nil && (*u.MaxParticipants < 1 || *u.MaxParticipants > 10000) {
		errs = append(errs, "maximum participants must be between 1 and 10000")
	}
	return errs
}

func (u UpdateEventRequest) patch() domain.EventPatch {
	p := domain.EventPatch{
		Title:           u.Title,
		Description:     u.Description,
		Date:            u.Date,
		Time:            u.Time,
		Duration:        u.Duration,
		Location:        u.Location,
		Online:          u.Online,
		MeetingURL:      u.MeetingURL,
		MaxParticipants: u.MaxParticipants,
	}
	if u.Category != nil {
		cat := domain.Category(*u.Category)
		p.Category = &cat
	}
	if u.Priority != nil {
		pri := domain.Priority(*u.Priority)
		p.Priority = &pri
	}
	return p
}

// UpdateEventSuccessResponse is the success response envelope for PATCH /events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Merges the provided fields over the stored event and bumps its updatedAt. The id never changes; setting online to false clears the meeting URL.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.UpdateEvent(r.Context(), eventID, req.patch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, fmt.Sprintf("no event with id %q", eventID))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the event with the given id. Deleting a missing id is a no-op and still returns 204.
// @Tags events
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
