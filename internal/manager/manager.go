// Package manager holds the client-side controller for the event
// inventory screen: an authoritative local snapshot of events, the
// current search state, and the mutation protocol against the store.
//
// Every mutation follows the same chain: mutate a copy of the snapshot,
// send the request (a full event replace for anything touching
// attendees), then re-fetch the authoritative list. The snapshot is only
// ever swapped wholesale after a successful fetch, so a failed
// round-trip leaves the previous state intact.
package manager

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"innerventory/internal/services/events"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SearchMode selects which entity the search term is matched against.
// Exactly one mode is active at a time; the two modes can never be
// simultaneously on the way two independent checkboxes could be.
type SearchMode int

const (
	ModeNone SearchMode = iota
	ModeByEvent
	ModeByAttendee
)

// Store is the persistence boundary the manager talks to. The HTTP
// client in internal/apiclient implements it against the REST API.
type Store interface {
	ListEvents(ctx context.Context) ([]*events.Event, error)
	CreateEvent(ctx context.Context, req events.CreateEventRequest) (*events.Event, error)
	UpdateEvent(ctx context.Context, id bson.ObjectID, req events.UpdateEventRequest) (*events.Event, error)
	ReplaceEvent(ctx context.Context, id bson.ObjectID, req events.ReplaceEventRequest) (*events.Event, error)
	DeleteEvent(ctx context.Context, id bson.ObjectID) error
}

// ConfirmFunc asks the user to confirm a destructive action.
// Returning false aborts the action as a no-op, not an error.
type ConfirmFunc func(prompt string) bool

// EditTarget identifies the row currently in edit mode, if any.
// AttendeeIndex is -1 when an event row (not an attendee) is targeted;
// EventIndex is -1 when nothing is being edited.
type EditTarget struct {
	EventID       bson.ObjectID
	EventIndex    int
	AttendeeIndex int
}

var noEdit = EditTarget{EventIndex: -1, AttendeeIndex: -1}

// ErrValidation is returned when required input is missing; the store is
// never contacted in that case.
var ErrValidation = errors.New("event name and date are required")

// ErrBusy is returned when a mutation is started while another one is
// still in flight from the same manager.
var ErrBusy = errors.New("another operation is in progress")

// ErrIndexOutOfRange is returned for positional arguments that do not
// exist in the current snapshot.
var ErrIndexOutOfRange = errors.New("position does not exist in the current event list")

// Manager owns the snapshot and serializes mutations against it.
// It follows the single-threaded UI model: one user action drives one
// operation chain at a time, and a mutation started while another is
// pending is rejected with ErrBusy, mirroring a UI that disables its
// buttons for the duration of the request. It is not meant to be shared
// across goroutines.
type Manager struct {
	store   Store
	confirm ConfirmFunc
	log     *slog.Logger

	snapshot []*events.Event
	term     string
	mode     SearchMode
	edit     EditTarget
	draft    events.Attendee
	inFlight bool
}

// New creates a manager. confirm may be nil, in which case destructive
// actions proceed without a prompt.
func New(store Store, confirm ConfirmFunc, log *slog.Logger) *Manager {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		store:   store,
		confirm: confirm,
		log:     log,
		edit:    noEdit,
	}
}

// begin claims the in-flight slot; end releases it.
func (m *Manager) begin() error {
	if m.inFlight {
		return ErrBusy
	}
	m.inFlight = true
	return nil
}

func (m *Manager) end() {
	m.inFlight = false
}

// Refresh re-fetches the authoritative event list. A store with no
// events yields an empty snapshot, not an error.
func (m *Manager) Refresh(ctx context.Context) error {
	list, err := m.store.ListEvents(ctx)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*events.Event{}
	}
	m.snapshot = list
	m.log.Debug("snapshot refreshed", "events", len(list))
	return nil
}

// Events returns a deep copy of the current snapshot.
func (m *Manager) Events() []*events.Event {
	return cloneEvents(m.snapshot)
}

// CreateEvent validates locally, persists a new event with an empty
// attendee list, then refreshes so the snapshot carries the
// store-assigned identifier and canonical formatting.
func (m *Manager) CreateEvent(ctx context.Context, name string, date time.Time) error {
	if strings.TrimSpace(name) == "" || date.IsZero() {
		return ErrValidation
	}

	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if _, err := m.store.CreateEvent(ctx, events.CreateEventRequest{Name: name, Date: date}); err != nil {
		return err
	}

	return m.Refresh(ctx)
}

// UpdateEvent patches the scalar fields of the identified event and
// refreshes. The edit target is cleared on success.
func (m *Manager) UpdateEvent(ctx context.Context, id bson.ObjectID, req events.UpdateEventRequest) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if _, err := m.store.UpdateEvent(ctx, id, req); err != nil {
		return err
	}

	m.edit = noEdit
	return m.Refresh(ctx)
}

// DeleteEvent removes an event and all of its attendees as a unit,
// after confirmation. Declining is a no-op.
func (m *Manager) DeleteEvent(ctx context.Context, id bson.ObjectID) error {
	if !m.confirm("Are you sure you want to delete this event?") {
		m.log.Debug("event delete declined", "event_id", id.Hex())
		return nil
	}

	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if err := m.store.DeleteEvent(ctx, id); err != nil {
		return err
	}

	return m.Refresh(ctx)
}

// AddAttendee appends a new attendee to the event at eventIndex and
// persists the entire parent event. The attendee draft is cleared on
// success.
func (m *Manager) AddAttendee(ctx context.Context, eventIndex int, a events.Attendee) error {
	if eventIndex < 0 || eventIndex >= len(m.snapshot) {
		return ErrIndexOutOfRange
	}

	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	ev := cloneEvent(m.snapshot[eventIndex])
	ev.Attendees = append(ev.Attendees, a)

	if err := m.replaceEvent(ctx, ev); err != nil {
		return err
	}

	m.draft = events.Attendee{}
	return m.Refresh(ctx)
}

// UpdateAttendee overwrites the attendee at the given position in place
// (same ordinal position, no reordering) and persists the full parent.
func (m *Manager) UpdateAttendee(ctx context.Context, eventIndex, attendeeIndex int, a events.Attendee) error {
	if eventIndex < 0 || eventIndex >= len(m.snapshot) {
		return ErrIndexOutOfRange
	}
	if attendeeIndex < 0 || attendeeIndex >= len(m.snapshot[eventIndex].Attendees) {
		return ErrIndexOutOfRange
	}

	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	ev := cloneEvent(m.snapshot[eventIndex])
	ev.Attendees[attendeeIndex] = a

	if err := m.replaceEvent(ctx, ev); err != nil {
		return err
	}

	m.edit = noEdit
	m.draft = events.Attendee{}
	return m.Refresh(ctx)
}

// DeleteAttendee removes the attendee at the given position after
// confirmation; later attendees shift down by one. The full parent is
// persisted.
func (m *Manager) DeleteAttendee(ctx context.Context, eventIndex, attendeeIndex int) error {
	if eventIndex < 0 || eventIndex >= len(m.snapshot) {
		return ErrIndexOutOfRange
	}
	if attendeeIndex < 0 || attendeeIndex >= len(m.snapshot[eventIndex].Attendees) {
		return ErrIndexOutOfRange
	}

	if !m.confirm("Are you sure you want to delete this attendee?") {
		return nil
	}

	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	ev := cloneEvent(m.snapshot[eventIndex])
	ev.Attendees = append(ev.Attendees[:attendeeIndex], ev.Attendees[attendeeIndex+1:]...)

	if err := m.replaceEvent(ctx, ev); err != nil {
		return err
	}

	return m.Refresh(ctx)
}

// replaceEvent ships a mutated copy as a whole-document replace. The
// revision of the snapshot copy rides along so a concurrent overwrite
// surfaces as events.ErrRevisionConflict instead of silently winning.
func (m *Manager) replaceEvent(ctx context.Context, ev *events.Event) error {
	req := events.ReplaceEventRequest{
		Name:      ev.Name,
		Date:      ev.Date,
		Attendees: ev.Attendees,
		Revision:  ev.Revision,
	}
	_, err := m.store.ReplaceEvent(ctx, ev.ID, req)
	return err
}

// SetSearch sets the current search term and mode.
func (m *Manager) SetSearch(term string, mode SearchMode) {
	m.term = term
	m.mode = mode
}

// StartEditEvent marks the event at eventIndex as the edit target.
func (m *Manager) StartEditEvent(eventIndex int) error {
	if eventIndex < 0 || eventIndex >= len(m.snapshot) {
		return ErrIndexOutOfRange
	}
	m.edit = EditTarget{
		EventID:       m.snapshot[eventIndex].ID,
		EventIndex:    eventIndex,
		AttendeeIndex: -1,
	}
	return nil
}

// StartEditAttendee marks the (event, attendee) pair as the edit target
// and preloads the draft with the attendee's current fields.
func (m *Manager) StartEditAttendee(eventIndex, attendeeIndex int) error {
	if eventIndex < 0 || eventIndex >= len(m.snapshot) {
		return ErrIndexOutOfRange
	}
	if attendeeIndex < 0 || attendeeIndex >= len(m.snapshot[eventIndex].Attendees) {
		return ErrIndexOutOfRange
	}
	m.edit = EditTarget{
		EventID:       m.snapshot[eventIndex].ID,
		EventIndex:    eventIndex,
		AttendeeIndex: attendeeIndex,
	}
	m.draft = m.snapshot[eventIndex].Attendees[attendeeIndex]
	return nil
}

// Edit returns the current edit target; EventIndex is -1 when idle.
func (m *Manager) Edit() EditTarget {
	return m.edit
}

// Draft returns the attendee form draft.
func (m *Manager) Draft() events.Attendee {
	return m.draft
}

// SetDraft replaces the attendee form draft.
func (m *Manager) SetDraft(a events.Attendee) {
	m.draft = a
}

// Visible computes the filtered view of the snapshot for rendering.
// It never contacts the store.
//
//   - ModeByEvent: an event is shown iff its name contains the term
//     (case-insensitive); its attendees are unfiltered.
//   - ModeByAttendee: an event is shown iff at least one attendee name
//     contains the term, and only the matching attendees are shown.
//   - ModeNone: everything when the term is empty, nothing otherwise.
func (m *Manager) Visible() []*events.Event {
	term := strings.ToLower(m.term)

	switch m.mode {
	case ModeByEvent:
		var out []*events.Event
		for _, ev := range m.snapshot {
			if strings.Contains(strings.ToLower(ev.Name), term) {
				out = append(out, cloneEvent(ev))
			}
		}
		return out

	case ModeByAttendee:
		var out []*events.Event
		for _, ev := range m.snapshot {
			var matched []events.Attendee
			for _, a := range ev.Attendees {
				if strings.Contains(strings.ToLower(a.Name), term) {
					matched = append(matched, a)
				}
			}
			if len(matched) > 0 {
				c := cloneEvent(ev)
				c.Attendees = matched
				out = append(out, c)
			}
		}
		return out

	default:
		if m.term != "" {
			return nil
		}
		return cloneEvents(m.snapshot)
	}
}

func cloneEvent(ev *events.Event) *events.Event {
	c := *ev
	c.Attendees = make([]events.Attendee, len(ev.Attendees))
	copy(c.Attendees, ev.Attendees)
	return &c
}

func cloneEvents(list []*events.Event) []*events.Event {
	out := make([]*events.Event, len(list))
	for i, ev := range list {
		out[i] = cloneEvent(ev)
	}
	return out
}
