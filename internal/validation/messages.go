package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// message renders one human-readable message per failed rule. An empty
// required field reports the same message as its minimum-length rule, so
// the form shows one consistent hint either way.
func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		switch fe.Tag() {
		case "max":
			return "title may be at most 100 characters"
		case "event_title":
			return "title may only contain letters, digits, spaces, hyphens and underscores"
		default:
			return "title must be at least 3 characters"
		}
	case "description":
		if fe.Tag() == "max" {
			return "description may be at most 1000 characters"
		}
		return "description must be at least 10 characters"
	case "category":
		return "category must be one of conference, workshop, meetup or webinar"
	case "date":
		return "date must be in YYYY-MM-DD format"
	case "time":
		return "time must be in HH:MM format"
	case "duration":
		if fe.Tag() == "max" {
			return "duration may be at most 480 minutes"
		}
		return "duration must be at least 15 minutes"
	case "location":
		if fe.Tag() == "max" {
			return "location may be at most 200 characters"
		}
		return "location must be at least 3 characters"
	case "meetingUrl":
		return "meeting URL must be a valid address"
	case "maxParticipants":
		if fe.Tag() == "max" {
			return "maximum participants may be at most 10000"
		}
		return "maximum participants must be at least 1"
	case "priority":
		return "priority must be one of low, medium or high"
	case "recaptcha":
		return "please confirm you are not a robot"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
