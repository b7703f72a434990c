package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// The recommended-sections file at <root>/content/recommended/metadata.json
// is accepted in two shapes: a bare array of game identifiers (legacy) and
// an array of section objects carrying an id and a games list (current).
// The shape is detected from the top-level element type, never from a stored
// version flag, and rewrites preserve the shape they read.

// recommendedPath returns the location of the recommended-sections file.
func (s *Store) recommendedPath() string {
	return filepath.Join(s.ContentDir(), RecommendedDirname, DescriptorFilename)
}

// Recommended is the parsed recommended-sections file. Exactly one of IDs
// (legacy) or Sections (current) is meaningful, selected by Legacy. Section
// entries stay as raw maps so fields beyond id and games survive rewrites
// untouched.
type Recommended struct {
	Legacy   bool
	IDs      []any
	Sections []map[string]any
}

// GameIDs flattens the file into canonical game keys regardless of shape.
func (r *Recommended) GameIDs() []string {
	var out []string
	if r.Legacy {
		for _, v := range r.IDs {
			if k := Key(v); k != "" {
				out = append(out, k)
			}
		}
		return out
	}
	for _, sec := range r.Sections {
		games, _ := sec["games"].([]any)
		for _, v := range games {
			if k := Key(v); k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}

// LoadRecommended reads and shape-detects the recommended-sections file. A
// missing file is an empty current-shape document.
func (s *Store) LoadRecommended(ctx context.Context) (*Recommended, error) {
	data, err := os.ReadFile(s.recommendedPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Recommended{}, nil
		}
		return nil, fmt.Errorf("load recommended: %w", err)
	}
	return parseRecommended(data)
}

// SaveRecommended writes the document back in the shape it carries.
func (s *Store) SaveRecommended(ctx context.Context, r *Recommended) error {
	var top []any
	if r.Legacy {
		top = r.IDs
	} else {
		top = make([]any, 0, len(r.Sections))
		for _, sec := range r.Sections {
			top = append(top, sec)
		}
	}
	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return fmt.Errorf("save recommended: %w", err)
	}
	dir := filepath.Dir(s.recommendedPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save recommended: %w", err)
	}
	if err := os.WriteFile(s.recommendedPath(), data, 0o644); err != nil {
		return fmt.Errorf("save recommended: %w", err)
	}
	return nil
}

// RemoveGameFromRecommended filters one game identifier out of the file:
// directly from the legacy identifier array, or from every section's games
// list in the current shape, leaving section objects and all other content
// untouched. Reports whether anything changed; a missing file or absent
// identifier is not an error.
func (s *Store) RemoveGameFromRecommended(ctx context.Context, gameKey string) (bool, error) {
	r, err := s.LoadRecommended(ctx)
	if err != nil {
		return false, err
	}

	changed := false
	if r.Legacy {
		kept := r.IDs[:0]
		for _, v := range r.IDs {
			if Key(v) == gameKey {
				changed = true
				continue
			}
			kept = append(kept, v)
		}
		r.IDs = kept
	} else {
		for _, sec := range r.Sections {
			games, ok := sec["games"].([]any)
			if !ok {
				continue
			}
			kept := games[:0]
			for _, v := range games {
				if Key(v) == gameKey {
					changed = true
					continue
				}
				kept = append(kept, v)
			}
			sec["games"] = kept
		}
	}

	if !changed {
		return false, nil
	}
	return true, s.SaveRecommended(ctx, r)
}

// parseRecommended detects the file shape by inspecting the first top-level
// element: a JSON object means section shape, anything else is the legacy
// identifier array.
func parseRecommended(data []byte) (*Recommended, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Recommended{}, nil
	}
	var top []json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse recommended: %w", err)
	}
	if len(top) == 0 {
		return &Recommended{}, nil
	}

	first := bytes.TrimSpace(top[0])
	if len(first) > 0 && first[0] == '{' {
		sections := make([]map[string]any, 0, len(top))
		for _, raw := range top {
			var sec map[string]any
			if err := json.Unmarshal(raw, &sec); err != nil {
				return nil, fmt.Errorf("parse recommended section: %w", err)
			}
			sections = append(sections, sec)
		}
		return &Recommended{Sections: sections}, nil
	}

	ids := make([]any, 0, len(top))
	for _, raw := range top {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("parse recommended id: %w", err)
		}
		ids = append(ids, v)
	}
	return &Recommended{Legacy: true, IDs: ids}, nil
}
