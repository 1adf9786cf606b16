package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventChange          EventType = "Change"
	EventActiveChanged   EventType = "ActiveChanged"
	EventOptionsReplaced EventType = "OptionsReplaced"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventConfigChanged   EventType = "ConfigChanged"
	EventAppReady        EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ChangeEvent is emitted when a listbox commits a new value.
// Value holds the listbox's value type (listbox.Value[T]).
type ChangeEvent struct {
	Source   string // id prefix of the emitting listbox
	Multiple bool
	Value    any
}

func (e ChangeEvent) Type() EventType { return EventChange }

// ActiveChangedEvent is emitted when the active option moves
type ActiveChangedEvent struct {
	Source   string
	OldIndex int
	NewIndex int
}

func (e ActiveChangedEvent) Type() EventType { return EventActiveChanged }

// OptionsReplacedEvent is emitted when the host replaces a listbox's options
type OptionsReplacedEvent struct {
	Source      string
	Count       int
	ActiveIndex int
}

func (e OptionsReplacedEvent) Type() EventType { return EventOptionsReplaced }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the selected values need to be persisted
type ConfigChangedEvent struct {
	SingleValue    string
	MultipleValues []string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	HasExistingConfig bool
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
