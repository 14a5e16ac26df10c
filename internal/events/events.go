package events

import "github.com/asaskevich/EventBus"

var (
	RoleChangedTopic          = "RoleChangedEvent"
	ThemeChangedTopic         = "ThemeChangedEvent"
	JobsUpdatedTopic          = "JobsUpdatedEvent"
	JobAddedTopic             = "JobAddedEvent"
	JobUpdatedTopic           = "JobUpdatedEvent"
	JobDeletedTopic           = "JobDeletedEvent"
	ApplicationSubmittedTopic = "ApplicationSubmittedEvent"
	ApplicationUpdatedTopic   = "ApplicationUpdatedEvent"
	JobSavedTopic             = "JobSavedEvent"
	JobUnsavedTopic           = "JobUnsavedEvent"
	FiltersChangedTopic       = "FiltersChangedEvent"
	PageChangedTopic          = "PageChangedEvent"
	DataClearedTopic          = "DataClearedEvent"
	DataImportedTopic         = "DataImportedEvent"
)

// Subscribe registers a typed handler and returns a func that removes it
// again. The handler runs synchronously on the publisher's goroutine.
func Subscribe[T any](bus EventBus.Bus, topic string, fn func(T)) (func(), error) {
	if err := bus.Subscribe(topic, fn); err != nil {
		return nil, err
	}
	return func() {
		_ = bus.Unsubscribe(topic, fn)
	}, nil
}
