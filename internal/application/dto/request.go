// Package dto contains data transfer objects for application layer use cases.
package dto

// ConcretizeRequest encapsulates all inputs needed to concretize profiles.
type ConcretizeRequest struct {
	Source     SourceOptions
	Output     OutputOptions
	Metadata   RequestMetadata
	Select     string
	Paths      []string
	Ignored    []string
	Allowed    []string
	Provenance bool
}

// MinimizeRequest encapsulates all inputs needed to minimize profiles.
type MinimizeRequest struct {
	Source   SourceOptions
	Output   OutputOptions
	Metadata RequestMetadata
	Select   string
	Paths    []string
}

// RebaseRequest encapsulates all inputs needed to rebase a profile onto a new parent.
type RebaseRequest struct {
	Source   SourceOptions
	Output   OutputOptions
	Metadata RequestMetadata
	Path     string
	Parent   string
	Select   string
	Ignored  []string
	Allowed  []string
}

// SourceOptions controls how profile paths are opened.
type SourceOptions struct {
	// Category overrides the directory-inferred category ("" = infer)
	Category string

	// SkipValidation disables schema validation of loaded documents
	SkipValidation bool
}

// OutputOptions controls where results go.
type OutputOptions struct {
	// OutDir writes each result to <OutDir>/<category>/<name>.json
	OutDir string

	// Indent is the JSON indentation width for written documents
	Indent int

	// Jobs limits concurrent profile processing (0 = one per profile)
	Jobs int

	// InPlace overwrites the source document with the result
	InPlace bool
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
