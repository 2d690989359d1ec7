package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// DefaultAlwaysKeep lists the identity and linkage keys a minimized
// document retains regardless of what its parent provides.
var DefaultAlwaysKeep = []string{
	"from",
	entities.KeyInherits,
	"instantiation",
	entities.KeyType,
	"printer_model",
	"nozzle_diameter",
}

// ProfileReducer computes the minimal diff of a profile against its resolved parent.
//
// Reduction Rules:
//   - A document without inherits is returned unchanged
//   - inherits must name exactly one parent
//   - A key is kept if it is in the always-keep set, missing from the parent,
//     or not equivalent to the parent's resolved value
//   - The output is always a subset of the child's keys
type ProfileReducer struct {
	repo       repositories.DocumentRepository
	resolver   *ProfileResolver
	alwaysKeep map[string]bool
}

// NewProfileReducer creates a reducer. extraKeep adds keys to DefaultAlwaysKeep.
func NewProfileReducer(
	repo repositories.DocumentRepository,
	resolver *ProfileResolver,
	extraKeep ...string,
) *ProfileReducer {
	keep := toSet(DefaultAlwaysKeep)
	for _, k := range extraKeep {
		keep[k] = true
	}
	return &ProfileReducer{
		repo:       repo,
		resolver:   resolver,
		alwaysKeep: keep,
	}
}

// Reduce loads a profile and strips the keys its parent already provides.
func (r *ProfileReducer) Reduce(ctx context.Context, ref values.ProfileRef) (entities.Document, error) {
	doc, err := r.repo.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return r.ReduceDocument(ctx, ref, doc)
}

// ReduceDocument reduces doc, which is treated as the document of ref.
// The parent is looked up next to ref.
func (r *ProfileReducer) ReduceDocument(
	ctx context.Context,
	ref values.ProfileRef,
	doc entities.Document,
) (entities.Document, error) {
	names, err := doc.Inherits()
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", ref.String(), err)
	}
	if len(names) == 0 {
		return doc.Clone(), nil
	}
	if len(names) > 1 {
		return nil, &entities.InheritanceConflictError{Ref: ref, Survivors: names}
	}

	category, err := doc.EffectiveCategory(ref.Category())
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", ref.String(), err)
	}
	parentRef, err := locateAncestor(ref, category, names[0])
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", ref.String(), err)
	}

	parent, err := r.resolver.Resolve(ctx, parentRef, ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolving parent %q of %s: %w", names[0], ref.String(), err)
	}

	inherited := parent.Flatten()
	result := make(entities.Document, len(doc))
	for k, v := range doc {
		if r.IsAlwaysKept(k) {
			result[k] = entities.CopyValue(v)
			continue
		}
		if pv, ok := inherited[k]; ok && Equivalent(pv, v) {
			continue
		}
		result[k] = entities.CopyValue(v)
	}
	return result, nil
}

// Rebase concretizes a profile, points it at newParent and reduces it against
// that parent. opts controls the concretize step only.
func (r *ProfileReducer) Rebase(
	ctx context.Context,
	ref values.ProfileRef,
	newParent string,
	opts ResolveOptions,
) (entities.Document, error) {
	if newParent == "" {
		return nil, fmt.Errorf("profile %s: rebase requires a parent name", ref.String())
	}

	resolved, err := r.resolver.Resolve(ctx, ref, opts)
	if err != nil {
		return nil, err
	}
	if resolved.HasParent() && resolved.Parent != newParent {
		return nil, &entities.InheritanceConflictError{
			Ref:       ref,
			Survivors: []string{resolved.Parent, newParent},
		}
	}

	doc := resolved.Flatten()
	doc[entities.KeyInherits] = newParent
	return r.ReduceDocument(ctx, ref, doc)
}

// IsAlwaysKept reports whether key survives reduction unconditionally.
func (r *ProfileReducer) IsAlwaysKept(key string) bool {
	return r.alwaysKeep[key]
}

// Equivalent reports whether a child value is redundant with its parent's value.
// A one-element list is equivalent to the scalar it wraps, in that direction only.
func Equivalent(parentValue, childValue any) bool {
	if valuesEqual(parentValue, childValue) {
		return true
	}
	if list, ok := parentValue.([]any); ok && len(list) == 1 {
		return valuesEqual(list[0], childValue)
	}
	return false
}

// valuesEqual is deep equality where numbers compare by value, so 0.2 equals 0.20.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case json.Number:
		bv, ok := b.(json.Number)
		return ok && numbersEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !valuesEqual(v, other) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// numbersEqual compares integers exactly and everything else as float64.
func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	if isInteger(a) && isInteger(b) {
		ai, aok := new(big.Int).SetString(a.String(), 10)
		bi, bok := new(big.Int).SetString(b.String(), 10)
		return aok && bok && ai.Cmp(bi) == 0
	}
	af, aerr := strconv.ParseFloat(a.String(), 64)
	bf, berr := strconv.ParseFloat(b.String(), 64)
	return aerr == nil && berr == nil && af == bf
}

func isInteger(n json.Number) bool {
	return !strings.ContainsAny(n.String(), ".eE")
}
