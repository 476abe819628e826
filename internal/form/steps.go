package form

import "eventforms/internal/domain"

// TotalSteps is the number of form steps.
const TotalSteps = 4

// stepFields maps each step to the fields it validates before advancing,
// in the order the fields appear on that step. Adding or reordering a step
// is a data change here, not a control-flow change.
var stepFields = map[int][]string{
	1: {domain.FieldTitle, domain.FieldDescription, domain.FieldCategory},
	2: {domain.FieldDate, domain.FieldTime, domain.FieldDuration},
	3: {domain.FieldLocation, domain.FieldOnline, domain.FieldPriority},
	4: {domain.FieldRecaptcha},
}

// FieldsForStep returns the validation subset for a step. Step 3 includes
// the meeting URL only for online events, slotted right after the online
// toggle to match its position on screen. The step 4 subset is checked at
// submit time as part of full-record validation, not on step entry.
func FieldsForStep(step int, d *domain.Draft) []string {
	fields, ok := stepFields[step]
	if !ok {
		return nil
	}
	if step == 3 && d.Online {
		withURL := make([]string, 0, len(fields)+1)
		for _, f := range fields {
			withURL = append(withURL, f)
			if f == domain.FieldOnline {
				withURL = append(withURL, domain.FieldMeetingURL)
			}
		}
		return withURL
	}
	return fields
}
