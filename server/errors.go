package server

import (
	"errors"
	"fmt"
)

// ErrEmptyAgentKey is returned when an agent is registered without a key
var ErrEmptyAgentKey = errors.New("agent key cannot be empty")

// CatalogCancelledError represents an enumeration interrupted by its context
type CatalogCancelledError struct {
	Cause error
}

func (e *CatalogCancelledError) Error() string {
	return fmt.Sprintf("catalog enumeration cancelled: %v", e.Cause)
}

func (e *CatalogCancelledError) Unwrap() error {
	return e.Cause
}

// NewCatalogCancelledError creates a new CatalogCancelledError
func NewCatalogCancelledError(cause error) error {
	return &CatalogCancelledError{Cause: cause}
}

// IsCatalogCancelled reports whether err stems from a cancelled enumeration
func IsCatalogCancelled(err error) bool {
	var target *CatalogCancelledError
	return errors.As(err, &target)
}

// DuplicateAgentError represents a second registration under an existing name
type DuplicateAgentError struct {
	Name string
}

func (e *DuplicateAgentError) Error() string {
	return fmt.Sprintf("agent %q is already registered", e.Name)
}

// NewDuplicateAgentError creates a new DuplicateAgentError
func NewDuplicateAgentError(name string) error {
	return &DuplicateAgentError{Name: name}
}

// AgentSourceError wraps a failure of the external agent source
type AgentSourceError struct {
	Provider string
	Cause    error
}

func (e *AgentSourceError) Error() string {
	return fmt.Sprintf("agent source %s failed: %v", e.Provider, e.Cause)
}

func (e *AgentSourceError) Unwrap() error {
	return e.Cause
}

// NewAgentSourceError creates a new AgentSourceError
func NewAgentSourceError(provider string, cause error) error {
	return &AgentSourceError{Provider: provider, Cause: cause}
}
