package form

import (
	"context"
	"errors"
	"testing"

	"eventforms/internal/domain"
	"eventforms/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCreate records the draft it was handed and returns a canned event.
type fakeCreate struct {
	draft  *domain.Draft
	err    error
	result *domain.Event
	calls  int
}

func (f *fakeCreate) create(ctx context.Context, draft domain.Draft) (*domain.Event, error) {
	f.calls++
	f.draft = &draft
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.Event{ID: "event-1"}, nil
}

func newTestSession(t *testing.T) (*Session, *fakeCreate) {
	t.Helper()
	fc := &fakeCreate{}
	return NewSession(validation.New(), fc.create), fc
}

// fillStep1 .. fillStep4 put valid values on the session for each step.
func fillStep1(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetField("title", "Tech Talk"))
	require.NoError(t, s.SetField("category", "meetup"))
}

func fillStep2(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetField("date", "2025-06-01"))
	require.NoError(t, s.SetField("time", "18:00"))
	require.NoError(t, s.SetField("duration", 60))
}

func fillStep3(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetField("location", "Warsaw"))
}

func fillStep4(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetField("recaptcha", "tok1"))
}

func advanceTo(t *testing.T, s *Session, step int) {
	t.Helper()
	fills := []func(*testing.T, *Session){fillStep1, fillStep2, fillStep3}
	for s.Step() < step {
		fills[s.Step()-1](t, s)
		require.True(t, s.Next(), "step %d should validate: %v", s.Step(), s.Errors())
	}
}

func TestNewSession_Defaults(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Equal(t, 1, s.Step())
	assert.False(t, s.Submitted())

	d := s.Draft()
	assert.Equal(t, domain.CategoryConference, d.Category)
	assert.Equal(t, domain.PriorityMedium, d.Priority)
	assert.Equal(t, 60, d.Duration)
	assert.False(t, d.Online)
	assert.Empty(t, d.Title)
	assert.Nil(t, d.MaxParticipants)
}

func TestSetField_DirtyTracking(t *testing.T) {
	s, _ := newTestSession(t)
	assert.False(t, s.Dirty("title"))
	require.NoError(t, s.SetField("title", "Tech Talk"))
	assert.True(t, s.Dirty("title"))
}

func TestSetField_Errors(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.SetField("nonsense", "x")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.SetField("title", 42)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.SetField("online", "yes")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.SetField("duration", 1.5)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetField_NumbersFromJSON(t *testing.T) {
	s, _ := newTestSession(t)

	// JSON decoding hands numbers over as float64.
	require.NoError(t, s.SetField("duration", float64(90)))
	assert.Equal(t, 90, s.Draft().Duration)

	require.NoError(t, s.SetField("maxParticipants", float64(100)))
	require.NotNil(t, s.Draft().MaxParticipants)
	assert.Equal(t, 100, *s.Draft().MaxParticipants)

	require.NoError(t, s.SetField("maxParticipants", nil))
	assert.Nil(t, s.Draft().MaxParticipants)
}

func TestSetField_OnlineFalseClearsMeetingURL(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SetField("online", true))
	require.NoError(t, s.SetField("meetingUrl", "https://meet.example.com/x"))

	require.NoError(t, s.SetField("online", false))
	assert.Empty(t, s.Draft().MeetingURL)
}

func TestSetField_OnlineFalseClearsMeetingURLError(t *testing.T) {
	s, _ := newTestSession(t)
	advanceTo(t, s, 3)
	fillStep3(t, s)
	require.NoError(t, s.SetField("online", true))

	// Next fails: online without a meeting URL.
	require.False(t, s.Next())
	require.True(t, s.Errors().Has("meetingUrl"))

	// Turning online off clears the URL error along with the value.
	require.NoError(t, s.SetField("online", false))
	assert.False(t, s.Errors().Has("meetingUrl"))
	require.True(t, s.Next())
	assert.Equal(t, 4, s.Step())
}

func TestNext_BlockedByInvalidStep(t *testing.T) {
	s, _ := newTestSession(t)

	// Step 1 with an empty title does not advance.
	require.False(t, s.Next())
	assert.Equal(t, 1, s.Step())
	assert.True(t, s.Errors().Has("title"))
	assert.Equal(t, "title", s.FocusField())

	// Fixing the step clears the errors and advances.
	fillStep1(t, s)
	require.True(t, s.Next())
	assert.Equal(t, 2, s.Step())
	assert.Nil(t, s.Errors())
}

func TestNext_EachStepMissingField(t *testing.T) {
	tests := []struct {
		step      int
		fill      func(*testing.T, *Session)
		skipField string
	}{
		{1, fillStep1, "title"},
		{2, fillStep2, "date"},
		{3, fillStep3, "location"},
	}
	for _, tt := range tests {
		s, _ := newTestSession(t)
		advanceTo(t, s, tt.step)
		tt.fill(t, s)
		require.NoError(t, s.SetField(tt.skipField, ""))

		require.False(t, s.Next(), "step %d should not advance", tt.step)
		assert.Equal(t, tt.step, s.Step())
		assert.True(t, s.Errors().Has(tt.skipField))
	}
}

func TestNext_FromFinalStepIsNoOp(t *testing.T) {
	s, _ := newTestSession(t)
	advanceTo(t, s, 4)
	require.False(t, s.Next())
	assert.Equal(t, 4, s.Step())
}

func TestFocusField_UsesFieldListOrder(t *testing.T) {
	s, _ := newTestSession(t)
	advanceTo(t, s, 2)

	// Both date and time are empty; date comes first on screen.
	require.False(t, s.Next())
	assert.True(t, s.Errors().Has("date"))
	assert.True(t, s.Errors().Has("time"))
	assert.Equal(t, "date", s.FocusField())
}

func TestFocusField_MeetingURLBeforePriority(t *testing.T) {
	s, _ := newTestSession(t)
	advanceTo(t, s, 3)
	fillStep3(t, s)
	require.NoError(t, s.SetField("online", true))
	require.NoError(t, s.SetField("priority", ""))

	// Both the missing URL and the blank priority error; the URL field sits
	// right after the online toggle on screen, so it takes focus.
	require.False(t, s.Next())
	assert.True(t, s.Errors().Has("meetingUrl"))
	assert.True(t, s.Errors().Has("priority"))
	assert.Equal(t, "meetingUrl", s.FocusField())
}

func TestBack_UnconditionalAndValuePreserving(t *testing.T) {
	s, _ := newTestSession(t)
	advanceTo(t, s, 2)
	require.NoError(t, s.SetField("date", "2025-06-01"))

	s.Back()
	assert.Equal(t, 1, s.Step())
	assert.Equal(t, "2025-06-01", s.Draft().Date, "back must not clear draft values")

	// Back from step 1 is a no-op.
	s.Back()
	assert.Equal(t, 1, s.Step())
}

func TestSubmit_Success(t *testing.T) {
	s, fc := newTestSession(t)
	advanceTo(t, s, 4)
	fillStep4(t, s)

	event, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.True(t, s.Submitted())
	assert.Equal(t, 1, s.Step(), "session resets to step 1 after submit")
	assert.Empty(t, s.Draft().Title, "draft resets to defaults after submit")

	require.Equal(t, 1, fc.calls)
	assert.Equal(t, "Tech Talk", fc.draft.Title)
	assert.Equal(t, "tok1", fc.draft.Recaptcha, "token travels to the creation call, storage strips it")
}

func TestSubmit_ValidationFailureStaysOnFinalStep(t *testing.T) {
	s, fc := newTestSession(t)
	advanceTo(t, s, 4)
	// recaptcha left empty

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 4, s.Step())
	assert.True(t, s.Errors().Has("recaptcha"))
	assert.False(t, s.Submitted())
	assert.Zero(t, fc.calls)
}

func TestSubmit_OnlineWithoutURLFailsOnMeetingURL(t *testing.T) {
	s, fc := newTestSession(t)
	advanceTo(t, s, 3)
	fillStep3(t, s)
	require.NoError(t, s.SetField("online", true))
	require.NoError(t, s.SetField("meetingUrl", "https://meet.example.com/x"))
	require.True(t, s.Next())
	fillStep4(t, s)

	// Simulate the URL being blanked after step 3 passed.
	require.NoError(t, s.SetField("meetingUrl", ""))

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, s.Errors().Has("meetingUrl"))
	assert.Equal(t, "meetingUrl", s.FocusField())
	assert.Zero(t, fc.calls)
}

func TestSubmit_NotOnFinalStep(t *testing.T) {
	s, fc := newTestSession(t)
	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, fc.calls)
}

func TestSubmit_CreateFailureKeepsSession(t *testing.T) {
	s, fc := newTestSession(t)
	fc.err = errors.New("store exploded")
	advanceTo(t, s, 4)
	fillStep4(t, s)

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, s.Submitted())
	assert.Equal(t, 4, s.Step())
}

func TestReset(t *testing.T) {
	s, _ := newTestSession(t)
	advanceTo(t, s, 3)
	require.NoError(t, s.SetField("maxParticipants", 500))

	s.Reset()
	assert.Equal(t, 1, s.Step())
	assert.Equal(t, domain.NewDraft(), s.Draft())
	assert.Nil(t, s.Errors())
	assert.False(t, s.Dirty("title"))
}

func TestFieldsForStep(t *testing.T) {
	d := domain.NewDraft()
	assert.Equal(t, []string{"title", "description", "category"}, FieldsForStep(1, &d))
	assert.Equal(t, []string{"location", "online", "priority"}, FieldsForStep(3, &d))

	d.Online = true
	assert.Equal(t, []string{"location", "online", "meetingUrl", "priority"}, FieldsForStep(3, &d))

	assert.Nil(t, FieldsForStep(0, &d))
	assert.Nil(t, FieldsForStep(5, &d))
}
