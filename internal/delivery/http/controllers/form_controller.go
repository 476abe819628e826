package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"eventforms/internal/delivery/http/helpers"
	"eventforms/internal/domain"
	"eventforms/internal/form"
	"eventforms/internal/validation"

	"github.com/google/uuid"
)

// FormController drives multi-step form sessions. Sessions live in memory,
// one per active form instance, and are destroyed explicitly when the user
// navigates away.
type FormController struct {
	Logger    *slog.Logger
	Validator *validation.Validator
	Service   domain.EventService

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry pairs a session with its own lock. Session itself is
// single-threaded; the entry lock serializes concurrent requests for the
// same session id (rapid field writes, a double-clicked submit).
type sessionEntry struct {
	mu sync.Mutex
	s  *form.Session
}

func NewFormController(logger *slog.Logger, v *validation.Validator, svc domain.EventService) *FormController {
	return &FormController{
		Logger:    logger,
		Validator: v,
		Service:   svc,
		sessions:  make(map[string]*sessionEntry),
	}
}

// SessionState is the wire representation of a form session.
type SessionState struct {
	ID         string              `json:"id"`
	Step       int                 `json:"step"`
	Draft      domain.Draft        `json:"draft"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FocusField string              `json:"focusField,omitempty"`
	Submitted  bool                `json:"submitted"`
}

// SessionStateSuccessResponse is the success envelope for form session endpoints.
type SessionStateSuccessResponse struct {
	Data  SessionState      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func sessionState(id string, s *form.Session) SessionState {
	return SessionState{
		ID:         id,
		Step:       s.Step(),
		Draft:      s.Draft(),
		Errors:     s.Errors(),
		FocusField: s.FocusField(),
		Submitted:  s.Submitted(),
	}
}

// session looks up the entry for the request's sessionID path value,
// writing a 404 when it does not exist. The caller must hold entry.mu for
// the whole of its session use.
func (c *FormController) session(w http.ResponseWriter, r *http.Request) (string, *sessionEntry, bool) {
	id := r.PathValue("sessionID")
	c.mu.Lock()
	entry, ok := c.sessions[id]
	c.mu.Unlock()
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no such form session")
		return "", nil, false
	}
	return id, entry, true
}

// CreateSession godoc
// @Summary Start a form session
// @Description Creates a fresh session on step 1 with the default draft values.
// @Tags form
// @Produce json
// @Success 201 {object} controllers.SessionStateSuccessResponse "data contains the new session state"
// @Router /form/sessions [post]
func (c *FormController) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	entry := &sessionEntry{s: form.NewSession(c.Validator, c.Service.CreateFromDraft)}
	c.mu.Lock()
	c.sessions[id] = entry
	c.mu.Unlock()
	helpers.WriteJSONSuccess(w, http.StatusCreated, sessionState(id, entry.s))
}

// GetSession godoc
// @Summary Read a form session
// @Tags form
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionStateSuccessResponse "data contains the session state"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /form/sessions/{sessionID} [get]
func (c *FormController) GetSession(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := c.session(w, r)
	if !ok {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	helpers.WriteJSONSuccess(w, http.StatusOK, sessionState(id, entry.s))
}

// DeleteSession godoc
// @Summary Destroy a form session
// @Description Drops the in-memory session, e.g. when the user navigates away. Unknown ids are a no-op.
// @Tags form
// @Param sessionID path string true "Session ID (UUID)"
// @Success 204 "no content"
// @Router /form/sessions/{sessionID} [delete]
func (c *FormController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")
	c.mu.Lock()
	delete(c.sessions, id)
	c.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// SetFieldRequest updates one draft field. Value is the raw JSON value for
// the field: string, number, boolean, or null (for clearable fields).
type SetFieldRequest struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Validate implements Validator.
func (s SetFieldRequest) Validate() []string {
	if s.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

// SetField godoc
// @Summary Update one draft field
// @Description Writes a field value into the session's draft. Setting online to false clears the meeting URL. Field-level validation runs on step transitions, not here.
// @Tags form
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Param field body SetFieldRequest true "Field name and value"
// @Success 200 {object} controllers.SessionStateSuccessResponse "data contains the updated session state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /form/sessions/{sessionID}/fields [patch]
func (c *FormController) SetField(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := c.session(w, r)
	if !ok {
		return
	}
	var req SetFieldRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.s.SetField(req.Name, req.Value); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessionState(id, entry.s))
}

// Next godoc
// @Summary Advance to the next step
// @Description Validates the current step's field subset. On success the session advances; on failure it stays put and the response carries the field errors and the field to focus. Next from the final step is a no-op.
// @Tags form
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionStateSuccessResponse "data contains the session state"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed with error.fields"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /form/sessions/{sessionID}/next [post]
func (c *FormController) Next(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := c.session(w, r)
	if !ok {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	s := entry.s
	if !s.Next() && s.Step() < form.TotalSteps {
		helpers.WriteJSONValidationError(w, s.Errors(), s.FocusField())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessionState(id, s))
}

// Back godoc
// @Summary Go back one step
// @Description Moves back without validating and without clearing draft values. Back from step 1 is a no-op.
// @Tags form
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionStateSuccessResponse "data contains the session state"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /form/sessions/{sessionID}/back [post]
func (c *FormController) Back(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := c.session(w, r)
	if !ok {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.s.Back()
	helpers.WriteJSONSuccess(w, http.StatusOK, sessionState(id, entry.s))
}

// SubmitSuccessResponse is the success envelope for submit (201).
type SubmitSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Submit godoc
// @Summary Submit the form
// @Description Runs full-record validation from the final step. On success the event is persisted (verification token stripped), the session resets to step 1, and the created record is returned.
// @Tags form
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 201 {object} controllers.SubmitSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed or bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /form/sessions/{sessionID}/submit [post]
func (c *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	_, entry, ok := c.session(w, r)
	if !ok {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	s := entry.s
	event, err := s.Submit(r.Context())
	switch {
	case err == nil:
		helpers.WriteJSONSuccess(w, http.StatusCreated, event)
	case errors.Is(err, domain.ErrInvalidInput) && len(s.Errors()) > 0:
		helpers.WriteJSONValidationError(w, s.Errors(), s.FocusField())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrVerificationFailed):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "captcha verification failed")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
