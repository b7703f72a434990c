package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gamedex/gamedex/pkg/log"
)

// AssetKind names the image slot an asset occupies inside an entity
// directory. Each kind holds at most one file, at a fixed name.
type AssetKind string

const (
	AssetCover      AssetKind = "cover"
	AssetBackground AssetKind = "background"
)

// Valid reports whether k is a known asset kind.
func (k AssetKind) Valid() bool {
	return k == AssetCover || k == AssetBackground
}

// imageExts is the accepted extension set for cover and background images.
var imageExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"webp": {},
	"gif":  {},
}

// DefaultExecutableLabel is recorded when an executable is uploaded without
// a label.
const DefaultExecutableLabel = "default"

var unsafeLabelChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeLabel converts an executable label to a filesystem-safe filename:
// every character outside [A-Za-z0-9_-] becomes an underscore. Only the
// stored filename is sanitized; the user-visible label recorded on the game
// stays untouched.
func SanitizeLabel(label string) string {
	return unsafeLabelChars.ReplaceAllString(label, "_")
}

// SaveAsset writes an image asset for any entity type at its fixed name
// (cover.<ext> or background.<ext>), creating the entity directory when
// needed. An existing asset of the same kind is replaced, including one with
// a different extension; there is no versioning. Returns the stored
// filename.
func (s *Store) SaveAsset(ctx context.Context, t Type, key string, kind AssetKind, ext string, data []byte) (string, error) {
	if !t.Valid() {
		return "", NewValidationError("unknown entity type %q", t)
	}
	if !kind.Valid() {
		return "", NewValidationError("unknown asset kind %q", kind)
	}
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if _, ok := imageExts[ext]; !ok {
		return "", NewValidationError("disallowed file extension %q", ext)
	}

	dir := s.EntityDir(t, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save %s for %s/%s: %w", kind, t, key, err)
	}

	// Drop a previous asset of this kind stored under another extension so
	// the slot never holds two files.
	name := string(kind) + "." + ext
	if err := s.removeAssetFiles(dir, kind, name); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("save %s for %s/%s: %w", kind, t, key, err)
	}
	log.FromContext(ctx).Info("asset saved",
		"type", string(t), "id", key, "asset", name)
	return name, nil
}

// DeleteAsset deletes the asset file of a kind if present, then removes the
// entity directory when and only when it has no remaining files — not even
// the descriptor. An absent asset file is not an error. The rule is uniform
// across every entity type.
func (s *Store) DeleteAsset(ctx context.Context, t Type, key string, kind AssetKind) error {
	if !t.Valid() {
		return NewValidationError("unknown entity type %q", t)
	}
	if !kind.Valid() {
		return NewValidationError("unknown asset kind %q", kind)
	}
	dir := s.EntityDir(t, key)
	if err := s.removeAssetFiles(dir, kind, ""); err != nil {
		return err
	}
	return s.removeDirIfEmpty(dir)
}

// SaveExecutable stores a game's executable script under the sanitized label
// and records the unsanitized label in the game's executable list. Returns
// the recorded label.
func (s *Store) SaveExecutable(ctx context.Context, gameKey, label string, data []byte, update CacheUpdate) (string, error) {
	if strings.TrimSpace(label) == "" {
		label = DefaultExecutableLabel
	}

	d, err := s.Get(ctx, TypeGames, gameKey)
	if err != nil {
		return "", err
	}

	dir := s.EntityDir(TypeGames, gameKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save executable for %s: %w", gameKey, err)
	}
	if err := os.WriteFile(filepath.Join(dir, SanitizeLabel(label)), data, 0o755); err != nil {
		return "", fmt.Errorf("save executable for %s: %w", gameKey, err)
	}

	d.AddExecutable(label)
	if err := s.writeDescriptor(TypeGames, gameKey, d); err != nil {
		return "", err
	}
	if update != nil {
		update(gameKey, func(cur *Descriptor) bool {
			cur.AddExecutable(label)
			return true
		})
	}
	log.FromContext(ctx).Info("executable saved", "id", gameKey, "label", label)
	return label, nil
}

// removeAssetFiles removes every file named <kind>.<ext> in dir except the
// one named keep. A missing directory or missing files succeed silently.
func (s *Store) removeAssetFiles(dir string, kind AssetKind, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	prefix := string(kind) + "."
	for _, e := range entries {
		if e.IsDir() || e.Name() == keep || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
