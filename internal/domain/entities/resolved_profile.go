package entities

import (
	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// ResolvedProfile is the result of flattening a profile's inheritance chain.
// The survivor invariant is carried by the type: at most one parent name
// remains un-expanded.
type ResolvedProfile struct {
	// Sources maps every key of the flattened document to the profile
	// that supplied its winning value.
	Sources map[string]values.ProfileRef

	// Document holds the merged keys, never the inherits key.
	Document Document

	// Parent is the single surviving un-expanded ancestor, or empty.
	Parent string

	// Ref is the profile that was resolved.
	Ref values.ProfileRef

	// Chain lists every profile merged into Document, in merge order.
	Chain []values.ProfileRef
}

// HasParent reports whether an un-expanded ancestor survived resolution.
func (p *ResolvedProfile) HasParent() bool {
	return p.Parent != ""
}

// Flatten returns the merged document with inherits set to the surviving parent, if any.
func (p *ResolvedProfile) Flatten() Document {
	out := p.Document.Clone()
	if out == nil {
		out = Document{}
	}
	if p.HasParent() {
		out[KeyInherits] = p.Parent
	}
	return out
}

// Provenance returns the source profile name for each key of the flattened document.
func (p *ResolvedProfile) Provenance() map[string]string {
	out := make(map[string]string, len(p.Sources))
	for k, ref := range p.Sources {
		out[k] = ref.String()
	}
	return out
}
