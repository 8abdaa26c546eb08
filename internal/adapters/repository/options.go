package repository

import "partyconnect/pkg/logger"

// EventOption applies a configuration option to the EventStore.
type EventOption func(*EventStore)

// WithEventLogger sets a custom logger for the event store.
func WithEventLogger(l logger.Logger) EventOption {
	return func(s *EventStore) {
		if l != nil {
			s.log = l
		}
	}
}

// UserOption applies a configuration option to the UserStore.
type UserOption func(*UserStore)

// WithUserLogger sets a custom logger for the user store.
func WithUserLogger(l logger.Logger) UserOption {
	return func(s *UserStore) {
		if l != nil {
			s.log = l
		}
	}
}
