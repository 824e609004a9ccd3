package domain

import (
	"fmt"
	"strings"

	"filegrab.dev/pkg/filegrab/internal/adapter"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

// CollisionResolver produces destination paths that do not clash with files
// already present in the destination directory.
type CollisionResolver struct {
	fs adapter.TargetFSAdapter
}

// NewCollisionResolver constructs a CollisionResolver backed by the provided
// filesystem adapter.
func NewCollisionResolver(fs adapter.TargetFSAdapter) *CollisionResolver {
	return &CollisionResolver{fs: fs}
}

// Resolve returns dir/desiredName when it is free, otherwise the first of
// dir/stem_1.ext, dir/stem_2.ext, … that does not exist yet.
//
// The existence check and the later write are deliberately not atomic: two
// workers resolving the same name at the same moment can both see the probe
// as free and one copy then overwrites the other. Accepted as a known
// limitation.
func (r *CollisionResolver) Resolve(dir m.Path, desiredName string) (m.Path, error) {
	candidate := r.fs.JoinPath(string(dir), desiredName)

	exists, err := r.fs.Exists(candidate)
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", candidate, err)
	}

	if !exists {
		return candidate, nil
	}

	stem, ext := splitName(desiredName)

	for index := 1; ; index++ {
		name := fmt.Sprintf("%s_%d%s", stem, index, ext)
		candidate = r.fs.JoinPath(string(dir), name)

		exists, err := r.fs.Exists(candidate)
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", candidate, err)
		}

		if !exists {
			return candidate, nil
		}
	}
}

// splitName splits a file name into stem and extension. A leading dot file
// like ".env" has no extension, matching path stem/suffix semantics.
func splitName(name string) (string, string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name, ""
	}

	return name[:dot], name[dot:]
}
