package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Conventional artifact file names inside the artifacts directory.
const (
	ObjectsFile   = "objects.json"
	SyntaxMapFile = "syntax_map.json"
)

// MarshalObjects serializes the identifier list in its canonical on-disk
// form: a 2-space-indented JSON array. The caller is expected to pass the
// already-sorted list produced by Build.
func MarshalObjects(objects []string) ([]byte, error) {
	out, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal object list: %w", err)
	}
	return out, nil
}

// MarshalSyntaxMap serializes the snippet map in its canonical on-disk form.
// encoding/json sorts map keys, so the output is byte-stable across runs.
func MarshalSyntaxMap(syntaxMap map[string]string) ([]byte, error) {
	out, err := json.MarshalIndent(syntaxMap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal syntax map: %w", err)
	}
	return out, nil
}

// WriteIfChanged writes content to path only when it differs byte-for-byte
// from what is currently stored, keeping mtimes stable for CI and git. The
// write goes through a temp file in the same directory followed by a rename,
// so a crash mid-write never leaves a half-written artifact.
// Returns whether a write happened.
func WriteIfChanged(fsys billy.Filesystem, path string, content []byte) (bool, error) {
	if existing, err := util.ReadFile(fsys, path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	tmp, err := fsys.TempFile(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return false, fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return false, fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return false, fmt.Errorf("close temp artifact: %w", err)
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return false, fmt.Errorf("rename temp artifact into place: %w", err)
	}
	return true, nil
}

// LoadObjects reads the persisted identifier list. Missing, malformed, or
// empty artifacts are hard errors: every consumer needs the full catalog.
func LoadObjects(fsys billy.Filesystem, path string) ([]string, error) {
	raw, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read object list %s: %w", path, err)
	}
	var objects []string
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("parse object list %s: %w", path, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("object list %s is empty — run 'moosepick regen' first", path)
	}
	return objects, nil
}

// LoadSyntaxMap reads the persisted identifier→snippet map with the same
// fail-fast semantics as LoadObjects.
func LoadSyntaxMap(fsys billy.Filesystem, path string) (map[string]string, error) {
	raw, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read syntax map %s: %w", path, err)
	}
	var syntaxMap map[string]string
	if err := json.Unmarshal(raw, &syntaxMap); err != nil {
		return nil, fmt.Errorf("parse syntax map %s: %w", path, err)
	}
	if len(syntaxMap) == 0 {
		return nil, fmt.Errorf("syntax map %s is empty — run 'moosepick regen' first", path)
	}
	return syntaxMap, nil
}
