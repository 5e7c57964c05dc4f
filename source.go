package ansible_inventory

import (
	"context"
	"fmt"
)

// Source produces a complete inventory document. Implementations fetch from
// exactly one backend and wrap every failure in a *SourceError; they do not
// log and they do not retry.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*Document, error)
}

// SourceError marks a failure to obtain the document from a backend
// (unreadable file, unreachable Consul, undecodable payload). The provider
// fails fast on it: there is no stale-document fallback.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

// Cause exposes the underlying error to github.com/pkg/errors.Cause.
func (e *SourceError) Cause() error {
	return e.Err
}

func sourceError(source string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Source: source, Err: err}
}
