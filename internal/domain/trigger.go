package domain

import "time"

// Daily trigger times, minute granularity, in the user's timezone.
const (
	MorningTrigger = "06:00"
	EveningTrigger = "22:00"
)

// keyDateLayout is the calendar-date part of a dedupe key,
// e.g. "Mon Jan 01 2024-06:00".
const keyDateLayout = "Mon Jan 02 2006"

// TriggerAt reports whether t, expressed in tz, lands exactly on a trigger
// minute. On a match it returns the digest mode and the dedupe key that
// identifies this trigger for the rest of the day.
func TriggerAt(t time.Time, tz string) (Mode, string, bool, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", "", false, err
	}
	local := t.In(loc)

	var mode Mode
	switch local.Format("15:04") {
	case MorningTrigger:
		mode = ModePreview
	case EveningTrigger:
		mode = ModeSummary
	default:
		return "", "", false, nil
	}
	return mode, local.Format(keyDateLayout) + "-" + local.Format("15:04"), true, nil
}

// LocalDate formats t's calendar date in tz the way prompts and digest
// subjects spell it out, e.g. "Monday, January 1, 2024".
func LocalDate(t time.Time, tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format("Monday, January 2, 2006"), nil
}
