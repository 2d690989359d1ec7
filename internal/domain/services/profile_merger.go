// Package services contains domain services for the profilekit domain model.
package services

import (
	"github.com/reglet-dev/profilekit/internal/domain/entities"
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// ProfileMerger merges profile documents according to inheritance semantics.
// This is a DOMAIN SERVICE because merge semantics are business rules.
//
// Merge Semantics:
//   - Keys: flat overwrite, overlay wins on conflict (no deep merge of values)
//   - Ancestors: merged left-to-right, later ancestors win
//   - Current profile: applied last, wins over every ancestor
//   - Inherits: never copied from an overlay document (resolved by ProfileResolver)
type ProfileMerger struct{}

// NewProfileMerger creates a new profile merger service.
func NewProfileMerger() *ProfileMerger {
	return &ProfileMerger{}
}

// mergeTwoDocuments copies overlay onto base (mutates base).
func (m *ProfileMerger) mergeTwoDocuments(base, overlay entities.Document) entities.Document {
	if base == nil {
		base = entities.Document{}
	}
	for k, v := range overlay {
		if k == entities.KeyInherits {
			continue
		}
		base[k] = entities.CopyValue(v)
	}
	return base
}

// Absorb merges a resolved ancestor into the accumulating result (mutates acc).
// The ancestor's keys, sources and surviving parent overwrite acc's.
func (m *ProfileMerger) Absorb(acc, ancestor *entities.ResolvedProfile) {
	acc.Document = m.mergeTwoDocuments(acc.Document, ancestor.Document)
	for k, ref := range ancestor.Sources {
		acc.Sources[k] = ref
	}
	if ancestor.HasParent() {
		acc.Parent = ancestor.Parent
	}
	acc.Chain = append(acc.Chain, ancestor.Chain...)
}

// Overlay applies a profile's own document onto the accumulating result (mutates acc).
// Every key except inherits is attributed to source.
func (m *ProfileMerger) Overlay(acc *entities.ResolvedProfile, own entities.Document, source values.ProfileRef) {
	acc.Document = m.mergeTwoDocuments(acc.Document, own)
	for k := range own {
		if k == entities.KeyInherits {
			continue
		}
		acc.Sources[k] = source
	}
	acc.Chain = append(acc.Chain, source)
}
