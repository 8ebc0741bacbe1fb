package autosave

import (
	"time"

	"github.com/google/uuid"
)

// State is the editing state derived from the draft.
type State int

const (
	// Empty: no record and nothing edited yet.
	Empty State = iota
	// EditingUnsaved: edited but never persisted.
	EditingUnsaved
	// EditingSaved: the draft carries a server-confirmed id.
	EditingSaved
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case EditingUnsaved:
		return "unsaved"
	case EditingSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Draft is the in-memory copy of the intention being edited.
// ID is uuid.Nil until the first successful create.
type Draft struct {
	ID      uuid.UUID
	Content string
	Start   time.Time
	End     time.Time
}

// HasID reports whether the draft is bound to a stored record.
func (d Draft) HasID() bool { return d.ID != uuid.Nil }

// ClockLayout is the wall-clock format used by the time setters.
const ClockLayout = "15:04"

// defaultBlock is a one-hour block starting at the top of now's hour.
func defaultBlock(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	return start, start.Add(time.Hour)
}

// onDate places the wall-clock time hh:mm on the calendar date of day.
func onDate(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
