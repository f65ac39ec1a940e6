package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConfigMissing    = errors.New("required configuration missing")

	ErrEmbeddingFailed      = errors.New("embedding failed")
	ErrIndexUnavailable     = errors.New("vector index unavailable")
	ErrGenerationFailed     = errors.New("answer generation failed")
	ErrClassificationFailed = errors.New("query classification failed")
	ErrSearchUnavailable    = errors.New("web search unavailable")

	ErrTemporary = errors.New("temporary failure")
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
