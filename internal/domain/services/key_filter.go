package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/profilekit/internal/domain/entities"
)

// KeyEnv defines the variables available during key selection expression evaluation.
type KeyEnv struct {
	Value any    `expr:"value"`
	Key   string `expr:"key"`
}

// KeyFilter selects document keys with a compiled Expr program.
// A nil program selects every key.
type KeyFilter struct {
	program *vm.Program
}

// NewKeyFilter wraps a compiled program. The program must evaluate to a bool
// against KeyEnv.
func NewKeyFilter(program *vm.Program) *KeyFilter {
	return &KeyFilter{program: program}
}

// CompileKeyFilter compiles expression against KeyEnv.
// An empty expression yields a filter that selects everything.
func CompileKeyFilter(expression string) (*KeyFilter, error) {
	if expression == "" {
		return NewKeyFilter(nil), nil
	}
	program, err := expr.Compile(expression, expr.Env(KeyEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid key selection expression: %w\nExample: key startsWith 'filament_' || key == 'inherits'", err)
	}
	return NewKeyFilter(program), nil
}

// Matches evaluates the filter for a single key.
func (f *KeyFilter) Matches(key string, value any) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	output, err := expr.Run(f.program, KeyEnv{Key: key, Value: value})
	if err != nil {
		return false, fmt.Errorf("evaluating key selection for %q: %w", key, err)
	}
	matched, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("key selection for %q returned %T, expected bool", key, output)
	}
	return matched, nil
}

// Apply returns a new document holding only the selected keys.
func (f *KeyFilter) Apply(doc entities.Document) (entities.Document, error) {
	if f == nil || f.program == nil {
		return doc.Clone(), nil
	}
	out := make(entities.Document, len(doc))
	for _, k := range doc.Keys() {
		matched, err := f.Matches(k, doc[k])
		if err != nil {
			return nil, err
		}
		if matched {
			out[k] = entities.CopyValue(doc[k])
		}
	}
	return out, nil
}
