package form

import (
	"context"
	"fmt"
	"math"

	"eventforms/internal/domain"
	"eventforms/internal/validation"
)

// CreateFunc persists a validated draft and returns the stored record. The
// storage layer strips the verification token.
type CreateFunc func(ctx context.Context, draft domain.Draft) (*domain.Event, error)

// Session holds the state of one multi-step form instance: the draft being
// edited, the current step, the last validation errors, per-field dirty
// flags, and whether the session has submitted successfully. One session
// exists per active form and is destroyed when the user navigates away.
// Sessions are not safe for concurrent use.
type Session struct {
	validator *validation.Validator
	create    CreateFunc

	draft     domain.Draft
	step      int
	errors    validation.FieldErrors
	dirty     map[string]bool
	submitted bool
}

// NewSession returns a session on step 1 with the default draft.
func NewSession(v *validation.Validator, create CreateFunc) *Session {
	s := &Session{validator: v, create: create}
	s.Reset()
	return s
}

// Reset restores the default draft values and returns to step 1. The
// submitted flag is left as-is; it records that this session has created
// an event at some point.
func (s *Session) Reset() {
	s.draft = domain.NewDraft()
	s.step = 1
	s.errors = nil
	s.dirty = make(map[string]bool)
}

// Step returns the current step index, always between 1 and TotalSteps.
func (s *Session) Step() int { return s.step }

// Draft returns a copy of the in-progress field values.
func (s *Session) Draft() domain.Draft { return s.draft }

// Errors returns the error map from the last failed transition, nil after
// a successful one.
func (s *Session) Errors() validation.FieldErrors { return s.errors }

// Submitted reports whether this session has successfully created an event.
func (s *Session) Submitted() bool { return s.submitted }

// Dirty reports whether the field was changed since the last reset.
func (s *Session) Dirty(field string) bool { return s.dirty[field] }

// SetField updates one draft field by its form name. Setting online to
// false clears the meeting URL and any error attached to it; no other
// derived clearing happens on field writes.
func (s *Session) SetField(name string, value any) error {
	switch name {
	case domain.FieldTitle:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Title = v
	case domain.FieldDescription:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Description = v
	case domain.FieldCategory:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Category = domain.Category(v)
	case domain.FieldDate:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Date = v
	case domain.FieldTime:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Time = v
	case domain.FieldDuration:
		v, err := intValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Duration = v
	case domain.FieldLocation:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Location = v
	case domain.FieldOnline:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a boolean", domain.ErrInvalidInput, name)
		}
		s.draft.Online = v
		if !v {
			s.draft.MeetingURL = ""
			delete(s.errors, domain.FieldMeetingURL)
		}
	case domain.FieldMeetingURL:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.MeetingURL = v
	case domain.FieldMaxParticipants:
		if value == nil {
			s.draft.MaxParticipants = nil
			break
		}
		v, err := intValue(name, value)
		if err != nil {
			return err
		}
		s.draft.MaxParticipants = &v
	case domain.FieldPriority:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Priority = domain.Priority(v)
	case domain.FieldRecaptcha:
		v, err := stringValue(name, value)
		if err != nil {
			return err
		}
		s.draft.Recaptcha = v
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, name)
	}
	s.dirty[name] = true
	return nil
}

// Next validates the current step's field subset and advances on success.
// On failure the step stays put and the field errors are recorded on the
// session. Next from the final step is a no-op.
func (s *Session) Next() bool {
	if s.step >= TotalSteps {
		return false
	}
	if errs := s.validator.ValidateFields(&s.draft, FieldsForStep(s.step, &s.draft)); errs != nil {
		s.errors = errs
		return false
	}
	s.errors = nil
	s.step++
	return true
}

// Back moves one step back without validating and without clearing any
// draft values. Back from step 1 is a no-op.
func (s *Session) Back() {
	if s.step > 1 {
		s.step--
	}
}

// FocusField returns the field that should receive focus after a failed
// transition: the first erroring field in the current step's on-screen
// order, falling back to whole-form order for submit-time errors on
// earlier steps.
func (s *Session) FocusField() string {
	if len(s.errors) == 0 {
		return ""
	}
	if name := s.errors.FirstOf(FieldsForStep(s.step, &s.draft)); name != "" {
		return name
	}
	return s.errors.FirstOf(domain.FieldOrder)
}

// Submit runs full-record validation from the final step. On success the
// draft is handed to the creation callback (verification token stripped by
// the storage layer), the session is marked submitted, and the form resets
// to step 1 with a default draft. On validation failure the session stays
// on the final step with all field errors recorded; the returned error is
// ErrInvalidInput and the details are available via Errors.
func (s *Session) Submit(ctx context.Context) (*domain.Event, error) {
	if s.step != TotalSteps {
		return nil, fmt.Errorf("%w: submit is only available from step %d", domain.ErrInvalidInput, TotalSteps)
	}
	if errs := s.validator.ValidateAll(&s.draft); errs != nil {
		s.errors = errs
		return nil, domain.ErrInvalidInput
	}
	s.errors = nil
	event, err := s.create(ctx, s.draft)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.submitted = true
	s.Reset()
	return event, nil
}

func stringValue(name string, value any) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string", domain.ErrInvalidInput, name)
	}
	return v, nil
}

func intValue(name string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers decode as float64.
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, name)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, name)
}
