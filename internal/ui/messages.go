package ui

import (
	"codeview/internal/domain"
)

// domainEventMsg wraps a domain event forwarded from the event bus into
// the bubbletea update loop.
type domainEventMsg struct {
	event domain.DomainEvent
}

// statusMsg sets the transient status line text.
type statusMsg struct {
	text  string
	level statusLevel
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarning
	statusError
)
