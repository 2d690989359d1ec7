// Package validation checks raw profile documents before they reach the domain.
package validation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

//go:embed schemas/profile.schema.json
var profileSchema []byte

const profileSchemaURL = "profile.schema.json"

// DocumentValidator validates documents against the profile JSON Schema.
// The schema only constrains the reserved keys; every other key passes through.
type DocumentValidator struct {
	schema *jsonschema.Schema
}

// NewDocumentValidator compiles the embedded profile schema.
func NewDocumentValidator() (*DocumentValidator, error) {
	return NewDocumentValidatorFromSchema(profileSchema)
}

// NewDocumentValidatorFromSchema compiles a custom schema document.
func NewDocumentValidatorFromSchema(schemaBytes []byte) (*DocumentValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(profileSchemaURL, bytes.NewReader(schemaBytes)); err != nil {
		return nil, fmt.Errorf("failed to add profile schema resource: %w", err)
	}

	schema, err := compiler.Compile(profileSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile schema: %w", err)
	}

	return &DocumentValidator{schema: schema}, nil
}

// Validate checks doc, the raw document of ref.
func (v *DocumentValidator) Validate(ref values.ProfileRef, doc entities.Document) error {
	// The validator only recognises the plain map type produced by encoding/json.
	if err := v.schema.Validate(map[string]any(doc)); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("profile %s: %w", ref.String(), formatSchemaValidationError(validationErr))
		}
		return fmt.Errorf("profile %s: document validation failed: %w", ref.String(), err)
	}
	return nil
}

// formatSchemaValidationError formats a JSON Schema validation error into a readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		// Leaf causes carry the useful messages
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}

	collectErrors(err)

	if len(messages) == 0 {
		return fmt.Errorf("document validation failed")
	}

	return fmt.Errorf("document validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
