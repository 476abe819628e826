package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventforms/internal/domain"
)

type eventService struct {
	repo      domain.EventRepository
	verifier  domain.CaptchaVerifier // nil disables server-side token checks
	onCreated func(*domain.Event)    // notified after every successful creation
	timeout   time.Duration
}

// NewEventService returns an EventService over the given repository.
// verifier may be nil, in which case the token is trusted as-is (the
// validator still requires it non-empty). onCreated, when set, is invoked
// with each created record so a list view can append it to its working set.
func NewEventService(repo domain.EventRepository,
	verifier domain.CaptchaVerifier,
	onCreated func(*domain.Event),
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		repo:      repo,
		verifier:  verifier,
		onCreated: onCreated,
		timeout:   timeout,
	}
}

func (s *eventService) CreateFromDraft(ctx context.Context, draft domain.Draft) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.verifier != nil {
		ok, err := s.verifier.Verify(ctx, draft.Recaptcha)
		if err != nil {
			return nil, fmt.Errorf("verify token: %w", err)
		}
		if !ok {
			return nil, domain.ErrVerificationFailed
		}
	}

	event, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if s.onCreated != nil {
		s.onCreated(event)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Stats aggregates the stored collection for the list view's summary.
func (s *eventService) Stats(ctx context.Context) (*domain.EventStats, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	stats := &domain.EventStats{
		Total:      len(events),
		ByCategory: make(map[domain.Category]int),
		ByPriority: make(map[domain.Priority]int),
	}
	for _, e := range events {
		stats.ByCategory[e.Category]++
		stats.ByPriority[e.Priority]++
		if e.Online {
			stats.Online++
		}
	}
	return stats, nil
}
