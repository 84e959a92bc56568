package events

import "errors"

// ErrEventNotFound - event not found in DB
var ErrEventNotFound = errors.New("event not found")

// ErrRevisionConflict is returned when a Replace carries a stale revision;
// another writer has rewritten the event since this copy was read.
var ErrRevisionConflict = errors.New("event was modified by another writer")

// ErrCreateEvent is returned when event creation fails.
var ErrCreateEvent = errors.New("failed to create event")

// ErrListEvents is returned when event listing fails.
var ErrListEvents = errors.New("failed to list events")

// ErrUpdateEvent is returned when event update fails.
var ErrUpdateEvent = errors.New("failed to update event")

// ErrReplaceEvent is returned when a full-document replace fails.
var ErrReplaceEvent = errors.New("failed to replace event")

// ErrDeleteEvent is returned when event deletion fails.
var ErrDeleteEvent = errors.New("failed to delete event")

// ErrCreateEventsRepo is returned when events repository creation fails.
var ErrCreateEventsRepo = errors.New("failed to create events repository")
