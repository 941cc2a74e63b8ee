package policy

import "fmt"

// ProvenanceKind identifies the configuration level that produced an
// effective policy.
type ProvenanceKind int

const (
	FromGlobal ProvenanceKind = iota
	FromSource
	FromBundle
	FromTool
)

// Provenance records where a resolved policy came from so the console can
// render it ("tool override", "bundle: devtools", "cargo default", ...).
type Provenance struct {
	Kind ProvenanceKind
	Name string // bundle name or source tag, empty otherwise
}

func (p Provenance) Label() string {
	switch p.Kind {
	case FromTool:
		return "tool override"
	case FromBundle:
		return fmt.Sprintf("bundle: %s", p.Name)
	case FromSource:
		return fmt.Sprintf("%s default", p.Name)
	default:
		return "global default"
	}
}

// BundlePolicy is one bundle's contribution to resolution: the bundle lists
// the tool as a member and carries a bundle-level policy.
type BundlePolicy struct {
	Bundle string
	Policy Policy
}

// Resolve computes the single effective policy for a tool and its
// provenance. Precedence: tool override, then bundle policy, then the
// source default, then the global default (stable when unset).
//
// When member bundles disagree, the most restrictive policy wins
// (pinned > stable > latest) and provenance names the first bundle, in
// lookup order, that carries the winning policy.
//
// Resolve is pure and total: it always returns a valid policy.
func Resolve(override *Policy, bundles []BundlePolicy, sourceDefault *Policy, source string, global *Policy) (Policy, Provenance) {
	if override != nil && override.Valid() {
		return *override, Provenance{Kind: FromTool}
	}

	var winner *BundlePolicy
	for i := range bundles {
		bp := &bundles[i]
		if !bp.Policy.Valid() {
			continue
		}
		if winner == nil || bp.Policy.rank() > winner.Policy.rank() {
			winner = bp
		}
	}
	if winner != nil {
		return winner.Policy, Provenance{Kind: FromBundle, Name: winner.Bundle}
	}

	if sourceDefault != nil && sourceDefault.Valid() {
		return *sourceDefault, Provenance{Kind: FromSource, Name: source}
	}

	if global != nil && global.Valid() {
		return *global, Provenance{Kind: FromGlobal}
	}
	return Default, Provenance{Kind: FromGlobal}
}
