package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventforms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	listErr   error
	deleteErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Create(ctx context.Context, draft domain.Draft) (*domain.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	now := time.Now()
	e := draft.ToEvent(fmt.Sprintf("event-%d", f.nextID), now)
	f.nextID++
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byID, id)
	return nil
}

// fakeVerifier implements domain.CaptchaVerifier.
type fakeVerifier struct {
	ok        bool
	err       error
	lastToken string
	calls     int
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (bool, error) {
	f.calls++
	f.lastToken = token
	return f.ok, f.err
}

func testDraft() domain.Draft {
	d := domain.NewDraft()
	d.Title = "Tech Talk"
	d.Category = domain.CategoryMeetup
	d.Date = "2025-06-01"
	d.Time = "18:00"
	d.Duration = 60
	d.Location = "Warsaw"
	d.Recaptcha = "tok1"
	return d
}

func TestCreateFromDraft(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()

	var notified *domain.Event
	svc := NewEventService(repo, nil, func(e *domain.Event) { notified = e }, time.Second)

	event, err := svc.CreateFromDraft(ctx, testDraft())
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Tech Talk", event.Title)

	require.NotNil(t, notified, "creation callback fires on success")
	assert.Equal(t, event.ID, notified.ID)
}

func TestCreateFromDraft_VerifierChecked(t *testing.T) {
	ctx := context.Background()

	t.Run("token accepted", func(t *testing.T) {
		verifier := &fakeVerifier{ok: true}
		svc := NewEventService(newFakeEventRepo(), verifier, nil, time.Second)

		_, err := svc.CreateFromDraft(ctx, testDraft())
		require.NoError(t, err)
		assert.Equal(t, 1, verifier.calls)
		assert.Equal(t, "tok1", verifier.lastToken)
	})

	t.Run("token rejected", func(t *testing.T) {
		verifier := &fakeVerifier{ok: false}
		repo := newFakeEventRepo()
		svc := NewEventService(repo, verifier, nil, time.Second)

		_, err := svc.CreateFromDraft(ctx, testDraft())
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Empty(t, repo.byID, "nothing is stored on a rejected token")
	})

	t.Run("verifier unreachable", func(t *testing.T) {
		verifier := &fakeVerifier{err: errors.New("timeout")}
		svc := NewEventService(newFakeEventRepo(), verifier, nil, time.Second)

		_, err := svc.CreateFromDraft(ctx, testDraft())
		require.Error(t, err)
	})
}

func TestCreateFromDraft_RepoError(t *testing.T) {
	repo := newFakeEventRepo()
	repo.createErr = errors.New("store exploded")

	var notified bool
	svc := NewEventService(repo, nil, func(*domain.Event) { notified = true }, time.Second)

	_, err := svc.CreateFromDraft(context.Background(), testDraft())
	require.Error(t, err)
	assert.False(t, notified, "no callback on failure")
}

func TestListEvents_NeverNil(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil, nil, time.Second)
	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.NotNil(t, events)
	assert.Empty(t, events)
}

func TestUpdateEvent_NotFoundPassthrough(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil, nil, time.Second)
	_, err := svc.UpdateEvent(context.Background(), "nope", domain.EventPatch{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil, nil, time.Second)

	first := testDraft()
	_, err := svc.CreateFromDraft(ctx, first)
	require.NoError(t, err)

	second := testDraft()
	second.Category = domain.CategoryWebinar
	second.Priority = domain.PriorityHigh
	second.Online = true
	second.MeetingURL = "https://meet.example.com/x"
	_, err = svc.CreateFromDraft(ctx, second)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByCategory[domain.CategoryMeetup])
	assert.Equal(t, 1, stats.ByCategory[domain.CategoryWebinar])
	assert.Equal(t, 1, stats.ByPriority[domain.PriorityMedium])
	assert.Equal(t, 1, stats.ByPriority[domain.PriorityHigh])
	assert.Equal(t, 1, stats.Online)
}
