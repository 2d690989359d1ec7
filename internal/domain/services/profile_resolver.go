package services

import (
	"context"
	"fmt"

	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/repositories"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// ResolveOptions controls which ancestors are expanded during resolution.
type ResolveOptions struct {
	// Ignored ancestors are skipped entirely and contribute nothing.
	Ignored []string

	// Allowed ancestors are not expanded; their name is kept as the
	// output's inheritance pointer.
	Allowed []string
}

// ProfileResolver flattens a profile's inheritance chain into one document.
//
// Resolution Rules:
//   - Ancestors are processed in declared order
//   - Ignored ancestors are skipped, allowed ancestors are kept un-expanded
//   - Every other ancestor is resolved recursively and merged, later ancestors win
//   - The profile's own keys win over every ancestor
//   - At most one un-expanded ancestor may survive; more is an InheritanceConflictError
//   - Ancestors are looked up next to the profile; its effective category
//     (type key or caller's) only picks the *common* prefix
//
// # Cycle Detection Note
//
// Cycles are detected on the current resolution path only. Two ancestors
// sharing a common grand-ancestor (diamond inheritance) is valid.
type ProfileResolver struct {
	repo   repositories.DocumentRepository
	merger *ProfileMerger
}

// NewProfileResolver creates a resolver reading documents from repo.
func NewProfileResolver(repo repositories.DocumentRepository) *ProfileResolver {
	return &ProfileResolver{
		repo:   repo,
		merger: NewProfileMerger(),
	}
}

// Resolve loads a profile and resolves its inheritance.
// This is the main entry point for concretizing a profile.
func (r *ProfileResolver) Resolve(
	ctx context.Context,
	ref values.ProfileRef,
	opts ResolveOptions,
) (*entities.ResolvedProfile, error) {
	state := &resolveState{
		ignored: toSet(opts.Ignored),
		allowed: toSet(opts.Allowed),
	}
	return r.resolveRecursive(ctx, ref, state, nil)
}

type resolveState struct {
	ignored map[string]bool
	allowed map[string]bool
}

// resolveRecursive resolves ref. path holds the profiles currently being
// resolved, outermost first.
func (r *ProfileResolver) resolveRecursive(
	ctx context.Context,
	ref values.ProfileRef,
	state *resolveState,
	path []values.ProfileRef,
) (*entities.ResolvedProfile, error) {
	for i, seen := range path {
		if seen == ref {
			cycle := make([]values.ProfileRef, 0, len(path)-i+1)
			cycle = append(cycle, path[i:]...)
			return nil, &entities.InheritanceCycleError{Cycle: append(cycle, ref)}
		}
	}
	path = append(path, ref)

	doc, err := r.repo.Load(ctx, ref)
	if err != nil {
		return nil, err
	}

	names, err := doc.Inherits()
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", ref.String(), err)
	}

	acc := &entities.ResolvedProfile{
		Ref:      ref,
		Document: entities.Document{},
		Sources:  make(map[string]values.ProfileRef),
	}

	var kept []string
	if len(names) > 0 {
		category, err := doc.EffectiveCategory(ref.Category())
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", ref.String(), err)
		}

		for _, name := range names {
			if state.ignored[name] {
				continue
			}
			if state.allowed[name] {
				kept = append(kept, name)
				continue
			}

			ancestorRef, err := locateAncestor(ref, category, name)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", ref.String(), err)
			}
			ancestor, err := r.resolveRecursive(ctx, ancestorRef, state, path)
			if err != nil {
				return nil, fmt.Errorf("resolving ancestor %q of %s: %w", name, ref.String(), err)
			}

			if acc.HasParent() && ancestor.HasParent() {
				return nil, &entities.InheritanceConflictError{
					Ref:       ref,
					Survivors: []string{acc.Parent, ancestor.Parent},
				}
			}
			r.merger.Absorb(acc, ancestor)
		}
	}

	// Allowed names come first, then any pointer carried up from ancestors.
	survivors := kept
	if acc.HasParent() {
		survivors = append(survivors, acc.Parent)
	}
	if len(survivors) > 1 {
		return nil, &entities.InheritanceConflictError{
			Ref:       ref,
			Survivors: survivors,
		}
	}

	r.merger.Overlay(acc, doc, ref)

	switch {
	case len(kept) == 1:
		acc.Parent = kept[0]
		acc.Sources[entities.KeyInherits] = ref
	case acc.HasParent():
		// Pointer and its source were carried up by Absorb.
	default:
		delete(acc.Sources, entities.KeyInherits)
	}

	return acc, nil
}

// locateAncestor addresses the ancestor name in ref's directory. category is the
// effective category of ref's document and only selects the *common* prefix.
func locateAncestor(ref values.ProfileRef, category values.Category, name string) (values.ProfileRef, error) {
	return values.NewFileProfileRef(ref.Category(), category.ExpandName(name))
}

// toSet converts a slice of strings to a map for O(1) lookup.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
