// Package picker orchestrates the object-selection pipeline: prefilter the
// catalog, ask the model to pick from the trimmed enumeration, sanitize the
// answer, then repair it against the domain's companion rules.
package picker

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentic-research/moosepick/internal/prefilter"
)

// Selector is the external generation collaborator. Implementations are
// contractually restricted to return identifiers from allowed, but callers
// must not trust that and always re-validate.
type Selector interface {
	Pick(ctx context.Context, prompt string, allowed []string) ([]string, error)
}

// companionRule injects a default object when a trigger object is present
// without its required companion category. Example: a heat-conduction kernel
// is useless without a variable to act on and a boundary condition to close
// the problem.
type companionRule struct {
	triggerPrefix string // category prefix that arms the rule
	triggerTag    string // substring of the object name that arms the rule
	ensurePrefix  string // category that must then be present
	defaultObject string // appended when the category is absent
}

// Conditional tier: runs before the baseline tier. The Variables/BCs
// companions are enforced here (not just hinted in the prompt), so a
// non-compliant model answer still yields a usable selection.
var companionRules = []companionRule{
	{"Kernels/", "HeatConduction", "Variables/", "Variables/MooseVariable"},
	{"Kernels/", "HeatConduction", "BCs/", "BCs/DirichletBC"},
}

// Baseline tier: every selection gets a mesh generator and an output block,
// whatever the task said.
var baselineRules = []struct {
	prefix        string
	defaultObject string
}{
	{"Mesh/", "Mesh/GeneratedMeshGenerator"},
	{"Outputs/", "Outputs/CSV"},
}

// Completer runs the full selection pipeline for one task description.
type Completer struct {
	selector Selector
	minKeep  int
}

// NewCompleter builds a Completer. minKeep <= 0 falls back to the prefilter
// default.
func NewCompleter(selector Selector, minKeep int) *Completer {
	if minKeep <= 0 {
		minKeep = prefilter.DefaultMinKeep
	}
	return &Completer{selector: selector, minKeep: minKeep}
}

// Complete turns a free-text task description into the final object list.
// Any selector failure is fatal to this request; no fallback selection is
// fabricated beyond the deterministic repair rules.
func (c *Completer) Complete(ctx context.Context, prompt string, allObjects []string) ([]string, error) {
	allowed := prefilter.Trim(prompt, allObjects, c.minKeep)

	picked, err := c.selector.Pick(ctx, prompt, allowed)
	if err != nil {
		return nil, fmt.Errorf("object selection: %w", err)
	}

	picked = sanitize(picked, allowed)
	picked = repair(picked)

	return picked, nil
}

// sanitize drops any identifier outside the allowed enumeration, preserving
// order and first occurrence. The model is told to choose only from the
// enumeration; this is where that claim stops being trusted.
func sanitize(picked, allowed []string) []string {
	ok := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		ok[o] = true
	}

	seen := make(map[string]bool, len(picked))
	result := make([]string, 0, len(picked))
	for _, o := range picked {
		if !ok[o] || seen[o] {
			continue
		}
		seen[o] = true
		result = append(result, o)
	}
	return result
}

// repair applies the conditional companion rules, then the unconditional
// baseline rules. Both tiers only ever append defaults.
func repair(picked []string) []string {
	for _, r := range companionRules {
		if triggered(picked, r.triggerPrefix, r.triggerTag) {
			picked = ensure(r.ensurePrefix, r.defaultObject, picked)
		}
	}
	for _, r := range baselineRules {
		picked = ensure(r.prefix, r.defaultObject, picked)
	}
	return picked
}

func triggered(picked []string, prefix, tag string) bool {
	for _, o := range picked {
		if strings.HasPrefix(o, prefix) && strings.Contains(o, tag) {
			return true
		}
	}
	return false
}

// ensure appends defaultObject when no identifier with the category prefix is
// present. Idempotent: a satisfied selection passes through unchanged.
func ensure(prefix, defaultObject string, picked []string) []string {
	for _, o := range picked {
		if strings.HasPrefix(o, prefix) {
			return picked
		}
	}
	return append(picked, defaultObject)
}
