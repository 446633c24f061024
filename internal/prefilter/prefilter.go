// Package prefilter narrows the full object catalog down to a bounded
// candidate set before the model call. The selector receives the candidates
// as a closed enumeration, so the full catalog (thousands of names) is far
// too large to pass through; this heuristic keeps the choice space small
// while guaranteeing both task relevance and a floor of generic basics.
package prefilter

import "strings"

// CoreBlocks are the categories an operator always expects to choose from,
// regardless of what the task text mentions.
var CoreBlocks = []string{
	"Mesh/",
	"Variables/",
	"Kernels/",
	"AuxKernels/",
	"BCs/",
	"Materials/",
	"Outputs/",
	"Postprocessors/",
}

// DefaultMinKeep is the floor on candidate-set size.
const DefaultMinKeep = 200

// Trim returns an ordered, deduplicated subset of allObjects likely relevant
// to the task text:
//
//   - keep any identifier whose category or object name appears anywhere in
//     the text (case-insensitive substring match), in catalog order;
//   - then keep every identifier from a core category, in catalog order;
//   - if still below minKeep, pad from the front of the full catalog.
//
// Padding deliberately draws from the front of the catalog rather than the
// unmatched remainder: it decides which objects the model ever gets to see,
// so the behavior is kept stable.
func Trim(text string, allObjects []string, minKeep int) []string {
	textLC := strings.ToLower(text)

	keep := make([]string, 0, minKeep)
	for _, full := range allObjects {
		category, name, _ := strings.Cut(full, "/")
		if strings.Contains(textLC, strings.ToLower(category)) ||
			(name != "" && strings.Contains(textLC, strings.ToLower(name))) {
			keep = append(keep, full)
		}
	}

	for _, full := range allObjects {
		if hasCorePrefix(full) {
			keep = append(keep, full)
		}
	}

	result := dedupe(keep)

	// Pad back up to minKeep with identifiers from the front of the catalog
	// that were not already kept. The catalog itself is pre-deduplicated, so
	// this only ever adds new names, until the floor is met or the catalog
	// runs out.
	if len(result) < minKeep {
		kept := make(map[string]bool, len(result))
		for _, o := range result {
			kept[o] = true
		}
		for _, o := range allObjects {
			if len(result) >= minKeep {
				break
			}
			if kept[o] {
				continue
			}
			kept[o] = true
			result = append(result, o)
		}
	}

	return result
}

func hasCorePrefix(full string) bool {
	for _, pfx := range CoreBlocks {
		if strings.HasPrefix(full, pfx) {
			return true
		}
	}
	return false
}

// dedupe drops later duplicates while preserving first-occurrence order.
func dedupe(objects []string) []string {
	seen := make(map[string]bool, len(objects))
	result := make([]string, 0, len(objects))
	for _, o := range objects {
		if seen[o] {
			continue
		}
		seen[o] = true
		result = append(result, o)
	}
	return result
}
