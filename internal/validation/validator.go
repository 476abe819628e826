package validation

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"eventforms/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to its human-readable validation messages.
// A nil map means the checked fields are all valid.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether the field has at least one error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// FirstOf returns the first name in order that has an error, or "" when
// none of them do.
func (fe FieldErrors) FirstOf(order []string) string {
	for _, name := range order {
		if fe.Has(name) {
			return name
		}
	}
	return ""
}

var (
	titleRe = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ0-9\s\-_]+$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// structFieldName maps form field names to Draft struct field names for
// partial validation.
var structFieldName = map[string]string{
	domain.FieldTitle:           "Title",
	domain.FieldDescription:     "Description",
	domain.FieldCategory:        "Category",
	domain.FieldDate:            "Date",
	domain.FieldTime:            "Time",
	domain.FieldDuration:        "Duration",
	domain.FieldLocation:        "Location",
	domain.FieldOnline:          "Online",
	domain.FieldMeetingURL:      "MeetingURL",
	domain.FieldMaxParticipants: "MaxParticipants",
	domain.FieldPriority:        "Priority",
	domain.FieldRecaptcha:       "Recaptcha",
}

// Validator checks drafts against the event field rules. It is pure: no
// validation call mutates the draft.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the event-specific rules registered. Field
// names in results are the form names (json tags), not Go field names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "event_title", matchFunc(titleRe))
	mustRegister(v, "event_date", matchFunc(dateRe))
	mustRegister(v, "event_time", matchFunc(timeRe))
	mustRegister(v, "absolute_url", func(fl validator.FieldLevel) bool {
		return isAbsoluteURL(fl.Field().String())
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matchFunc(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ValidateFields checks only the named fields of the draft; the rest of the
// record may be missing or invalid without affecting the result. Unknown
// names are ignored. The online/meetingUrl cross-field rule runs whenever
// the subset contains the online field.
func (v *Validator) ValidateFields(d *domain.Draft, fields []string) FieldErrors {
	var structNames []string
	crossField := false
	for _, f := range fields {
		if f == domain.FieldOnline {
			crossField = true
		}
		if name, ok := structFieldName[f]; ok {
			structNames = append(structNames, name)
		}
	}
	errs := FieldErrors{}
	if len(structNames) > 0 {
		collect(errs, v.v.StructPartial(d, structNames...))
	}
	if crossField {
		refineOnline(d, errs)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateAll checks the whole draft, including cross-field rules.
func (v *Validator) ValidateAll(d *domain.Draft) FieldErrors {
	errs := FieldErrors{}
	collect(errs, v.v.Struct(d))
	refineOnline(d, errs)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func collect(dst FieldErrors, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		dst.Add(fe.Field(), message(fe))
	}
}

// refineOnline enforces that online events carry a meeting URL. The error
// attaches to meetingUrl. URL well-formedness stays a per-field rule, so a
// malformed non-empty URL is not reported twice.
func refineOnline(d *domain.Draft, dst FieldErrors) {
	if d.Online && strings.TrimSpace(d.MeetingURL) == "" {
		dst.Add(domain.FieldMeetingURL, "meeting URL is required for online events")
	}
}
