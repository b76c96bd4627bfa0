package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventTextChanged         EventType = "TextChanged"
	EventFileLoaded          EventType = "FileLoaded"
	EventFileSaved           EventType = "FileSaved"
	EventMatchFound          EventType = "MatchFound"
	EventSearchWrapped       EventType = "SearchWrapped"
	EventReplaceAllCompleted EventType = "ReplaceAllCompleted"
	EventDictionaryLoaded    EventType = "DictionaryLoaded"
	EventWordAdded           EventType = "WordAdded"
	EventWordIgnored         EventType = "WordIgnored"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// TextChangedEvent is emitted after any document mutation
type TextChangedEvent struct {
	Path string
}

func (e TextChangedEvent) Type() EventType { return EventTextChanged }

// FileLoadedEvent is emitted when a document is read into the buffer
type FileLoadedEvent struct {
	Path string
	Size int
}

func (e FileLoadedEvent) Type() EventType { return EventFileLoaded }

// FileSavedEvent is emitted when the buffer is written back to disk
type FileSavedEvent struct {
	Path string
}

func (e FileSavedEvent) Type() EventType { return EventFileSaved }

// MatchFoundEvent is emitted when a search lands on a match
type MatchFoundEvent struct {
	Pattern   string
	Start     int
	End       int
	Direction Direction
}

func (e MatchFoundEvent) Type() EventType { return EventMatchFound }

// SearchWrappedEvent is emitted when a failed directional search succeeded
// only after retrying from the opposite end of the document
type SearchWrappedEvent struct {
	Pattern   string
	Direction Direction
}

func (e SearchWrappedEvent) Type() EventType { return EventSearchWrapped }

// ReplaceAllCompletedEvent is emitted after a whole-document replacement pass
type ReplaceAllCompletedEvent struct {
	Pattern  string
	Replaced int
}

func (e ReplaceAllCompletedEvent) Type() EventType { return EventReplaceAllCompleted }

// DictionaryLoadedEvent is emitted when the spelling dictionary is trained
type DictionaryLoadedEvent struct {
	Path  string // "" for the embedded base dictionary
	Words int
}

func (e DictionaryLoadedEvent) Type() EventType { return EventDictionaryLoaded }

// WordAddedEvent is emitted when a word is added to the user dictionary
type WordAddedEvent struct {
	Word string
}

func (e WordAddedEvent) Type() EventType { return EventWordAdded }

// WordIgnoredEvent is emitted when a word is ignored for the session
type WordIgnoredEvent struct {
	Word string
}

func (e WordIgnoredEvent) Type() EventType { return EventWordIgnored }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
