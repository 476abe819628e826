package localstore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"eventforms/internal/domain"
)

// collectionKey is the single fixed key the whole event collection is
// serialized under.
const collectionKey = "events"

const idSuffixLength = 9

var idAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

type eventRepository struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewEventRepository returns an EventRepository that persists the whole
// collection as one JSON array under a fixed key in the given store. Every
// mutation is a read-modify-write of that blob; there is no record-level
// update at the storage medium.
func NewEventRepository(store Store, logger *slog.Logger) domain.EventRepository {
	return &eventRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all stored events with timestamps rehydrated. A missing,
// unreadable, or corrupt blob yields an empty collection, never an error.
func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.load(ctx), nil
}

func (r *eventRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Event, error) {
	events := r.load(ctx)
	id, err := r.newID(events)
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}
	event := draft.ToEvent(id, r.now())
	r.persist(ctx, append(events, event))
	return event, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	events := r.load(ctx)
	event := findByID(events, id)
	if event == nil {
		return nil, domain.ErrNotFound
	}
	applyPatch(event, patch)
	event.ID = id // immutable regardless of patch content
	event.UpdatedAt = r.now()
	if !event.Online {
		event.MeetingURL = ""
	}
	r.persist(ctx, events)
	return event, nil
}

// Delete removes the event with the given id. Deleting a missing id leaves
// the collection untouched and is not an error.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	events := r.load(ctx)
	filtered := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(events) {
		return nil
	}
	r.persist(ctx, filtered)
	return nil
}

func (r *eventRepository) load(ctx context.Context) []*domain.Event {
	raw, ok, err := r.store.GetItem(ctx, collectionKey)
	if err != nil {
		r.logger.Error("loading events from store", "err", err)
		return []*domain.Event{}
	}
	if !ok {
		return []*domain.Event{}
	}
	var events []*domain.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		r.logger.Error("decoding stored events", "err", err)
		return []*domain.Event{}
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events
}

// persist writes the whole collection back under the fixed key. Failures
// are logged, not returned: the caller's result stays valid in memory for
// the current session even when the write is lost.
func (r *eventRepository) persist(ctx context.Context, events []*domain.Event) {
	raw, err := json.Marshal(events)
	if err != nil {
		r.logger.Error("encoding events for store", "err", err)
		return
	}
	if err := r.store.SetItem(ctx, collectionKey, string(raw)); err != nil {
		r.logger.Error("saving events to store", "err", err)
	}
}

// newID builds an identifier from the current time and a random suffix,
// retrying on the practically impossible collision with a stored id.
func (r *eventRepository) newID(events []*domain.Event) (string, error) {
	for {
		suffix, err := randomSuffix(idSuffixLength)
		if err != nil {
			return "", err
		}
		id := fmt.Sprintf("event-%d-%s", r.now().UnixMilli(), suffix)
		if findByID(events, id) == nil {
			return id, nil
		}
	}
}

func randomSuffix(length int) (string, error) {
	b := make([]rune, length)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b), nil
}

func findByID(events []*domain.Event, id string) *domain.Event {
	for _, e := range events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func applyPatch(e *domain.Event, p domain.EventPatch) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Online != nil {
		e.Online = *p.Online
	}
	if p.MeetingURL != nil {
		e.MeetingURL = *p.MeetingURL
	}
	if p.MaxParticipants != nil {
		e.MaxParticipants = p.MaxParticipants
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
}
