package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a malformed or missing required mention field,
	// such as empty text. The orchestrator recovers it per mention.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyDataset marks a pipeline run over zero mentions.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrNotClassified marks an aggregate stage invoked before the
	// per-mention derived fields were written.
	ErrNotClassified = errors.New("mentions not classified")
	ErrBatchNotFound = errors.New("batch not found")
	ErrTemporary     = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
