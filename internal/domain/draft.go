package domain

import "time"

// Field names as they appear on the form, used for validation subsets and
// error maps.
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldDuration        = "duration"
	FieldLocation        = "location"
	FieldOnline          = "online"
	FieldMeetingURL      = "meetingUrl"
	FieldMaxParticipants = "maxParticipants"
	FieldPriority        = "priority"
	FieldRecaptcha       = "recaptcha"
)

// FieldOrder lists every draft field in on-screen order. The first erroring
// field is resolved against this list, not against map iteration order.
var FieldOrder = []string{
	FieldTitle, FieldDescription, FieldCategory,
	FieldDate, FieldTime, FieldDuration,
	FieldLocation, FieldOnline, FieldMeetingURL,
	FieldMaxParticipants, FieldPriority,
	FieldRecaptcha,
}

// Draft holds in-progress form values: the same shape as Event minus
// identity and timestamps, plus the verification token that is checked at
// submit time and never persisted.
type Draft struct {
	Title           string   `json:"title" validate:"required,min=3,max=100,event_title"`
	Description     string   `json:"description" validate:"omitempty,min=10,max=1000"`
	Category        Category `json:"category" validate:"required,oneof=conference workshop meetup webinar"`
	Date            string   `json:"date" validate:"required,event_date"`
	Time            string   `json:"time" validate:"required,event_time"`
	Duration        int      `json:"duration" validate:"required,min=15,max=480"`
	Location        string   `json:"location" validate:"required,min=3,max=200"`
	Online          bool     `json:"online"`
	MeetingURL      string   `json:"meetingUrl" validate:"omitempty,absolute_url"`
	MaxParticipants *int     `json:"maxParticipants" validate:"omitnil,min=1,max=10000"`
	Priority        Priority `json:"priority" validate:"required,oneof=low medium high"`
	Recaptcha       string   `json:"recaptcha" validate:"required"`
}

// NewDraft returns a draft with the form's default values.
func NewDraft() Draft {
	return Draft{
		Category: CategoryConference,
		Duration: 60,
		Priority: PriorityMedium,
	}
}

// ToEvent converts a validated draft into an event with the given id and
// timestamps. The verification token is not carried over, and offline
// events never keep a meeting URL.
func (d Draft) ToEvent(id string, now time.Time) *Event {
	e := &Event{
		ID:              id,
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		Date:            d.Date,
		Time:            d.Time,
		Duration:        d.Duration,
		Location:        d.Location,
		Online:          d.Online,
		MeetingURL:      d.MeetingURL,
		MaxParticipants: d.MaxParticipants,
		Priority:        d.Priority,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !e.Online {
		e.MeetingURL = ""
	}
	return e
}
