package events

import "github.com/dshills/richtype/internal/event/topic"

// Config event topics.
const (
	// TopicConfigChanged is published when an option changes.
	TopicConfigChanged topic.Topic = "config.changed"

	// TopicConfigReloaded is published when the options file is reloaded.
	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// ConfigChanged is published when an option changes.
type ConfigChanged struct {
	// Name is the option name (e.g., "defaultBlockTag").
	Name string

	// OldValue is the previous value.
	OldValue any

	// NewValue is the new value.
	NewValue any
}

// ConfigReloaded is published when the options file is reloaded.
type ConfigReloaded struct {
	// Path is the file the options were read from.
	Path string

	// Err is set when the reload failed and the old options were kept.
	Err error
}
