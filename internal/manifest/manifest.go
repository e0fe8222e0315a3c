// Package manifest reads the frontend's package.json just far enough for
// the build pipeline: the declared name and version. Everything else in the
// file belongs to the JavaScript toolchain.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	feerrors "git.home.luguber.info/inful/uibuilder/internal/frontend/errors"
)

// FileName is the manifest's conventional name inside the frontend directory.
const FileName = "package.json"

// PackageJSON holds the fields the build pipeline inspects. Version keeps
// its display form even when the JSON value is not a string, so the version
// check can still report what it found.
type PackageJSON struct {
	Name           string
	Version        string
	VersionPresent bool
}

// Load reads and decodes the manifest at path. Read and decode failures both
// wrap ErrManifestParse so callers can classify them with errors.Is.
func Load(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", feerrors.ErrManifestParse, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return nil, fmt.Errorf("%w: %s: offset %d: %w", feerrors.ErrManifestParse, path, syn.Offset, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", feerrors.ErrManifestParse, path, err)
	}

	pkg := &PackageJSON{}
	if name, ok := raw["name"].(string); ok {
		pkg.Name = name
	}
	if v, ok := raw["version"]; ok {
		pkg.VersionPresent = true
		if s, isStr := v.(string); isStr {
			pkg.Version = s
		} else {
			pkg.Version = fmt.Sprintf("%v", v)
		}
	}
	return pkg, nil
}

// IsSyntaxError reports whether err stems from malformed JSON rather than a
// filesystem problem.
func IsSyntaxError(err error) bool {
	var syn *json.SyntaxError
	return errors.As(err, &syn)
}
