package domain

import "errors"

var (
	// ErrMissingCredential is returned at construction time when a
	// provider requires an API key that is not set in the environment.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnsupportedProvider is returned for an unknown provider tag.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrDataMismatch is returned when the embeddings and metadata
	// sources disagree on the number of records.
	ErrDataMismatch = errors.New("embeddings and metadata length mismatch")

	// ErrSourceNotFound is returned when an interchange file required
	// by a pipeline stage does not exist.
	ErrSourceNotFound = errors.New("source file not found")
)
