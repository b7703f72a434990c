package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gamedex/gamedex/pkg/log"
)

const (
	// DescriptorFilename is the JSON descriptor stored inside every entity
	// directory.
	DescriptorFilename = "metadata.json"

	// ContentDirname is the directory under the catalog root holding all
	// entity type directories.
	ContentDirname = "content"

	// RecommendedDirname holds the recommended-sections file, a sibling of
	// the entity type directories.
	RecommendedDirname = "recommended"
)

// Store maps entities to filesystem locations and owns the canonical on-disk
// representation: one directory per entity containing metadata.json plus
// optional assets. An optional Cache receives full collections on Load;
// mutating operations additionally accept CacheUpdate hooks so cached state
// follows the disk without re-scans.
//
// The store is request-scoped and provides no locking: two concurrent
// mutations of the same entity race and the last write wins. That is an
// accepted limitation for a single-user deployment.
type Store struct {
	// Root is the catalog root; entities live under Root/content.
	Root string

	// Cache, when non-nil, is populated by Load and consulted by List.
	Cache *Cache
}

// NewStore returns a Store rooted at root with a fresh cache attached.
func NewStore(root string) *Store {
	return &Store{Root: root, Cache: NewCache()}
}

// ContentDir returns the directory holding all entity type directories.
func (s *Store) ContentDir() string {
	return filepath.Join(s.Root, ContentDirname)
}

// TypeDir returns the directory holding all entities of one type.
func (s *Store) TypeDir(t Type) string {
	return filepath.Join(s.ContentDir(), string(t))
}

// EntityDir returns the directory of a single entity.
func (s *Store) EntityDir(t Type, key string) string {
	return filepath.Join(s.TypeDir(t), key)
}

func (s *Store) descriptorPath(t Type, key string) string {
	return filepath.Join(s.EntityDir(t, key), DescriptorFilename)
}

// updater returns the attached cache's hook for a type, or nil when the
// store runs cache-less.
func (s *Store) updater(t Type) CacheUpdate {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Updater(t)
}

// Load scans every entity directory of a type and parses each descriptor.
// Directories without a parseable descriptor are skipped with a warning,
// not fatal. A missing type directory is an empty catalog, not an error.
// The loaded collection replaces the attached cache's view of the type.
func (s *Store) Load(ctx context.Context, t Type) ([]*Descriptor, error) {
	if !t.Valid() {
		return nil, NewValidationError("unknown entity type %q", t)
	}
	lg := log.FromContext(ctx)

	entries, err := os.ReadDir(s.TypeDir(t))
	if err != nil {
		if os.IsNotExist(err) {
			s.Cache.Put(t, nil)
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", t, err)
	}

	out := make([]*Descriptor, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		d, err := s.readDescriptor(t, e.Name())
		if err != nil {
			lg.Warn("skipping entity with unreadable descriptor",
				"type", string(t), "id", e.Name(), "err", err)
			continue
		}
		out = append(out, d)
	}

	// Directory listing order is lexicographic; present numeric ids in
	// numeric order instead.
	sort.SliceStable(out, func(i, j int) bool {
		a, aErr := strconv.Atoi(out[i].ID())
		b, bErr := strconv.Atoi(out[j].ID())
		if aErr == nil && bErr == nil {
			return a < b
		}
		return out[i].ID() < out[j].ID()
	})

	s.Cache.Put(t, out)
	return out, nil
}

// List returns the cached collection for a type, loading from disk when the
// cache is cold or invalidated.
func (s *Store) List(ctx context.Context, t Type) ([]*Descriptor, error) {
	if list, ok := s.Cache.Get(t); ok {
		return list, nil
	}
	return s.Load(ctx, t)
}

// Get reads one entity descriptor from disk.
func (s *Store) Get(ctx context.Context, t Type, key string) (*Descriptor, error) {
	if !t.Valid() {
		return nil, NewValidationError("unknown entity type %q", t)
	}
	d, err := s.readDescriptor(t, key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(t, key)
		}
		return nil, err
	}
	return d, nil
}

// Create persists a new entity: it fails with a conflict when an entity with
// the same identifier or the same title already exists, then creates the
// entity directory and descriptor. The attached cache picks the entity up
// directly; there is no existing cache element for a hook to mutate.
func (s *Store) Create(ctx context.Context, t Type, d *Descriptor) (*Descriptor, error) {
	if !t.Valid() {
		return nil, NewValidationError("unknown entity type %q", t)
	}
	key := d.ID()
	if key == "" {
		return nil, NewValidationError("missing identifier")
	}
	if _, err := os.Stat(s.descriptorPath(t, key)); err == nil {
		return nil, NewConflictError("%s %s already exists", t, key)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("create %s/%s: %w", t, key, err)
	}
	if title := d.Title(); title != "" {
		existing, err := s.Load(ctx, t)
		if err != nil {
			return nil, err
		}
		for _, cur := range existing {
			if cur.Title() == title {
				return nil, NewConflictError("%s already exists", title)
			}
		}
	}
	if err := s.writeDescriptor(t, key, d); err != nil {
		return nil, err
	}
	s.Cache.upsert(t, d)
	log.FromContext(ctx).Info("entity created", "type", string(t), "id", key)
	return d, nil
}

// Update applies a partial field patch to an entity. Only the per-type
// allow-list is applied; unknown fields are silently dropped. An effectively
// empty patch is a validation error. Every descriptor field outside the
// patch is preserved verbatim, including fields this package knows nothing
// about. A nil patch value clears the field.
func (s *Store) Update(ctx context.Context, t Type, key string, patch map[string]any, update CacheUpdate) (*Descriptor, error) {
	d, err := s.Get(ctx, t, key)
	if err != nil {
		return nil, err
	}

	applied := 0
	for _, field := range updatableFields[t] {
		v, ok := patch[field]
		if !ok {
			continue
		}
		if err := d.Set(v, field); err != nil {
			return nil, NewValidationError("field %q: %v", field, err)
		}
		applied++
	}
	if applied == 0 {
		return nil, NewValidationError("no updatable fields in patch")
	}

	if err := s.writeDescriptor(t, key, d); err != nil {
		return nil, err
	}
	if update != nil {
		update(key, func(cur *Descriptor) bool {
			cur.Data = d.Data
			cur.modified = true
			return true
		})
	}
	log.FromContext(ctx).Info("entity updated", "type", string(t), "id", key, "fields", applied)
	return d, nil
}

// Delete removes an entity's descriptor, then removes its directory only
// when no other files remain. A directory with leftover assets survives
// until a later asset deletion empties it.
func (s *Store) Delete(ctx context.Context, t Type, key string, update CacheUpdate) error {
	if !t.Valid() {
		return NewValidationError("unknown entity type %q", t)
	}
	path := s.descriptorPath(t, key)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return NewNotFoundError(t, key)
		}
		return fmt.Errorf("delete %s/%s: %w", t, key, err)
	}
	if err := s.removeDirIfEmpty(s.EntityDir(t, key)); err != nil {
		return err
	}
	if update != nil {
		update(key, nil)
	}
	log.FromContext(ctx).Info("entity deleted", "type", string(t), "id", key)
	return nil
}

// NextGameID returns the lowest unused numeric game identifier: one past the
// highest existing id. Fixture loads use it; externally added games arrive
// with provider-assigned identifiers.
func (s *Store) NextGameID(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.TypeDir(TypeGames))
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("next game id: %w", err)
	}
	max := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, err := strconv.Atoi(e.Name()); err == nil && n > max {
			max = n
		}
	}
	return max + 1, nil
}

// readDescriptor reads and parses metadata.json. os.IsNotExist errors pass
// through for the caller to classify.
func (s *Store) readDescriptor(t Type, key string) (*Descriptor, error) {
	data, err := os.ReadFile(s.descriptorPath(t, key))
	if err != nil {
		return nil, err
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", t, key, err)
	}
	return d, nil
}

// writeDescriptor serializes and writes metadata.json, creating the entity
// directory when needed. Writes are not pre-truncating a temp file dance: a
// failed serialization leaves the previous on-disk state untouched.
func (s *Store) writeDescriptor(t Type, key string, d *Descriptor) error {
	data, err := d.Bytes()
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", t, key, err)
	}
	dir := s.EntityDir(t, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write %s/%s: %w", t, key, err)
	}
	if err := os.WriteFile(filepath.Join(dir, DescriptorFilename), data, 0o644); err != nil {
		return fmt.Errorf("write %s/%s: %w", t, key, err)
	}
	return nil
}

// removeDirIfEmpty removes dir when it contains no files at all. The rule is
// uniform across games, collections, and every tag category.
func (s *Store) removeDirIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
