// Package catalog turns a raw MOOSE syntax dump into the two flat artifacts
// the rest of the pipeline runs on: a sorted list of Block/Object names and a
// map from each name to a prompt-ready input-deck snippet.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// ErrNoObjects indicates the document parsed fine but contained no concrete
// objects — usually a sign the dump layout changed upstream.
var ErrNoObjects = errors.New("no objects discovered in catalog document")

// skipLayers are structural keys that must be traversed through but never
// contribute a path segment to an object identifier.
var skipLayers = map[string]bool{
	"star":           true,
	"actions":        true,
	"subblock_types": true,
}

// noiseParams are bookkeeping parameters every object declares; they carry no
// information for a snippet template.
var noiseParams = map[string]bool{
	"type":     true,
	"active":   true,
	"inactive": true,
}

// Build parses a raw syntax dump and flattens its "blocks" subtree.
// It returns the sorted object identifiers and the identifier→snippet map,
// which are always in 1:1 correspondence.
func Build(raw []byte) ([]string, map[string]string, error) {
	doc, err := oj.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse catalog document: %w", err)
	}

	sel, err := jp.ParseString("$.blocks")
	if err != nil {
		return nil, nil, fmt.Errorf("parse blocks selector: %w", err)
	}

	var root map[string]any
	for _, m := range sel.Get(doc) {
		if blocks, ok := m.(map[string]any); ok {
			root = blocks
			break
		}
	}

	// The parsed tree drives the walk; the raw bytes are kept alongside it
	// because Go maps forget JSON document order, and snippet parameters must
	// come out in declared order.
	blocksRaw, _, _, _ := jsonparser.Get(raw, "blocks")

	objects, syntaxMap := flatten(root, blocksRaw)
	if len(objects) == 0 {
		return nil, nil, ErrNoObjects
	}
	return objects, syntaxMap, nil
}

// frame is one pending traversal step: a node, the non-skip key chain that
// names it, and the full raw key path (skip layers included) that locates it
// in the document bytes. Both slices are copied on extension so sibling
// branches never alias the same backing array.
type frame struct {
	node    map[string]any
	chain   []string
	rawPath []string
}

// flatten walks the catalog tree iteratively and collects every concrete
// object. A node is concrete when it is a mapping holding a "parameters" key
// and is reachable through at least two non-skip structural keys; the first
// two keys form the Category/Name identifier. Deeper paths that collapse to
// the same pair are deduplicated.
func flatten(root map[string]any, blocksRaw []byte) ([]string, map[string]string) {
	syntaxMap := make(map[string]string)

	if root == nil {
		return nil, syntaxMap
	}

	// Explicit worklist instead of call-stack recursion: the upstream dumps
	// nest arbitrarily deep and must not be able to blow the stack.
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Sorted key order keeps the walk (and snippet overwrites on
		// duplicate identifiers) fully deterministic.
		keys := make([]string, 0, len(f.node))
		for k := range f.node {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			sub, ok := f.node[key].(map[string]any)
			if !ok {
				continue
			}

			rawPath := make([]string, len(f.rawPath), len(f.rawPath)+1)
			copy(rawPath, f.rawPath)
			rawPath = append(rawPath, key)

			// Template layers keep the current chain unchanged.
			if skipLayers[key] {
				stack = append(stack, frame{node: sub, chain: f.chain, rawPath: rawPath})
				continue
			}

			next := make([]string, len(f.chain), len(f.chain)+1)
			copy(next, f.chain)
			next = append(next, key)

			if _, isObject := sub["parameters"]; isObject && len(next) >= 2 {
				id := next[0] + "/" + next[1]
				params := parameterNames(blocksRaw, append(rawPath, "parameters"))
				syntaxMap[id] = formatSnippet(next[0], next[1], params)
			}

			// Objects may nest further structural layers; keep walking.
			stack = append(stack, frame{node: sub, chain: next, rawPath: rawPath})
		}
	}

	objects := make([]string, 0, len(syntaxMap))
	for id := range syntaxMap {
		objects = append(objects, id)
	}
	sort.Strings(objects)

	return objects, syntaxMap
}

// parameterNames lists an object's non-noise parameter names in document
// order. jsonparser iterates object keys as they appear in the bytes, which
// the parsed map cannot do.
func parameterNames(blocksRaw []byte, path []string) []string {
	params, dataType, _, err := jsonparser.Get(blocksRaw, path...)
	if err != nil || dataType != jsonparser.Object {
		return nil
	}

	var names []string
	_ = jsonparser.ObjectEach(params, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		if name := string(key); !noiseParams[name] {
			names = append(names, name)
		}
		return nil
	})
	return names
}

// formatSnippet renders the prompt-ready template for a single object:
// a bracketed category header, the type line, one blank assignment per
// declared parameter (in declared order), and the closing marker.
func formatSnippet(category, name string, params []string) string {
	lines := []string{
		fmt.Sprintf("[%s]", category),
		fmt.Sprintf("  type = %s", name),
	}

	for _, p := range params {
		lines = append(lines, fmt.Sprintf("  %s = ", p))
	}

	lines = append(lines, "[../]")
	return strings.Join(lines, "\n")
}
