package dto

import (
	"time"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// ProfileResponse contains the results of a batch operation, in request order.
type ProfileResponse struct {
	// Results holds one entry per requested path
	Results []ProfileResult

	// Metadata contains response metadata
	Metadata ResponseMetadata
}

// ProfileResult is the outcome for a single profile.
type ProfileResult struct {
	// Document is the produced document
	Document entities.Document

	// Provenance maps each key to its source profile (concretize only)
	Provenance map[string]string

	// Path is the requested profile path
	Path string

	// WrittenTo is the file the document was written to, if any
	WrittenTo string

	// Ref identifies the profile
	Ref values.ProfileRef
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// RequestID from the original request
	RequestID string

	// Duration is how long the request took
	Duration time.Duration
}
