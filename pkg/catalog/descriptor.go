package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Descriptor is a wrapper around the raw JSON mapping stored in an entity's
// metadata.json. It preserves unknown fields and provides small helpers for
// reading and writing the fields this package cares about.
//
// The wrapper attempts to return the original bytes supplied to
// ParseDescriptor when no modifications were made, so a read-modify-write of
// one field never reformats or drops the rest of the file. Mutating
// operations mark the Descriptor modified; subsequent serializations emit a
// canonical indented representation.
type Descriptor struct {
	Data map[string]any

	// rawBytes holds the original bytes supplied to ParseDescriptor. They are
	// returned verbatim by Bytes when no changes have been made.
	rawBytes []byte

	modified bool
}

// NewDescriptor returns a Descriptor initialized with an empty map and
// marked as modified.
func NewDescriptor() *Descriptor {
	return &Descriptor{Data: make(map[string]any), modified: true}
}

// NewDescriptorFromRaw returns a Descriptor wrapping the provided map (or an
// empty one). The result is marked modified since it did not originate from
// a parsed byte slice.
func NewDescriptorFromRaw(raw map[string]any) *Descriptor {
	if raw == nil {
		raw = make(map[string]any)
	}
	return &Descriptor{Data: raw, modified: true}
}

// ParseDescriptor parses JSON bytes into a Descriptor. Empty or
// whitespace-only input yields an empty Descriptor.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDescriptor(), nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	return &Descriptor{Data: out, rawBytes: data}, nil
}

// Bytes serializes the descriptor. Unmodified descriptors round-trip their
// original bytes verbatim.
func (d *Descriptor) Bytes() ([]byte, error) {
	if d == nil {
		return nil, errors.New("nil descriptor")
	}
	if !d.modified && d.rawBytes != nil {
		return d.rawBytes, nil
	}
	return json.MarshalIndent(d.Data, "", "  ")
}

// Clone returns a deep copy of the descriptor. The copy is marked modified.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return NewDescriptor()
	}
	cp, err := deepCopyMap(d.Data)
	if err != nil {
		// Data came from JSON, so a JSON round-trip cannot fail in practice;
		// fall back to a shallow copy rather than panicking.
		cp = make(map[string]any, len(d.Data))
		for k, v := range d.Data {
			cp[k] = v
		}
	}
	return NewDescriptorFromRaw(cp)
}

// Get reads the value at path. The second return reports presence.
func (d *Descriptor) Get(path ...string) (any, bool) {
	if d == nil || len(path) == 0 {
		return nil, false
	}
	cur := any(d.Data)
	for _, key := range path {
		mp, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, exists := mp[key]
		if !exists {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Set writes value at the given path, creating intermediate maps as needed.
// A nil value deletes the final key. An intermediate component that exists
// but is not a map is an error rather than being overwritten.
func (d *Descriptor) Set(value any, path ...string) error {
	if d == nil || len(path) == 0 {
		return errors.New("invalid path")
	}
	cur := d.Data
	for _, key := range path[:len(path)-1] {
		if next, ok := cur[key]; ok {
			mp, ok2 := next.(map[string]any)
			if !ok2 {
				return fmt.Errorf("path component %q is not a map", key)
			}
			cur = mp
		} else {
			newMap := make(map[string]any)
			cur[key] = newMap
			cur = newMap
		}
	}
	last := path[len(path)-1]
	if value == nil {
		delete(cur, last)
	} else {
		cur[last] = value
	}
	d.modified = true
	return nil
}

// Delete removes the key at path.
func (d *Descriptor) Delete(path ...string) error {
	return d.Set(nil, path...)
}

// ID returns the canonical string key of the entity identifier, or "" when
// the descriptor has none.
func (d *Descriptor) ID() string {
	if d == nil {
		return ""
	}
	v, ok := d.Get("id")
	if !ok {
		return ""
	}
	return Key(v)
}

// SetID stores the identifier. Numeric keys are stored as JSON numbers.
func (d *Descriptor) SetID(key string) {
	if d == nil {
		return
	}
	_ = d.Set(idValue(key), "id")
}

// Title returns the trimmed title, best-effort for unexpected types.
func (d *Descriptor) Title() string {
	v, ok := d.Get("title")
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// SetTitle writes the trimmed title.
func (d *Descriptor) SetTitle(title string) {
	if d == nil {
		return
	}
	_ = d.Set(strings.TrimSpace(title), "title")
}

// Summary returns the summary field, or "".
func (d *Descriptor) Summary() string {
	v, ok := d.Get("summary")
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// SetSummary writes the summary field.
func (d *Descriptor) SetSummary(summary string) {
	if d == nil {
		return
	}
	_ = d.Set(summary, "summary")
}

// GameIDs returns the canonical keys of the "games" membership list. Entries
// may be stored as numbers or strings; both normalize through Key.
func (d *Descriptor) GameIDs() []string {
	raw, ok := d.Get("games")
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if k := Key(v); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SetGameIDs replaces the "games" membership list. Numeric keys are written
// back as JSON numbers to keep the stored shape.
func (d *Descriptor) SetGameIDs(keys []string) {
	if d == nil {
		return
	}
	list := make([]any, 0, len(keys))
	for _, k := range keys {
		list = append(list, idValue(k))
	}
	_ = d.Set(list, "games")
}

// TagList returns the titles stored under a game tag-list field such as
// "genre" or "platform".
func (d *Descriptor) TagList(field string) []string {
	raw, ok := d.Get(field)
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		// A single string is tolerated and treated as a one-element list.
		if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// SetTagList replaces a tag-list field with the given titles.
func (d *Descriptor) SetTagList(field string, titles []string) {
	if d == nil {
		return
	}
	list := make([]any, 0, len(titles))
	for _, t := range titles {
		list = append(list, t)
	}
	_ = d.Set(list, field)
}

// ReleaseDate extracts the partial release date from the "releaseDate"
// object. The second return is false when the descriptor carries none.
func (d *Descriptor) ReleaseDate() (ReleaseDate, bool) {
	raw, ok := d.Get("releaseDate")
	if !ok || raw == nil {
		return ReleaseDate{}, false
	}
	mp, ok := raw.(map[string]any)
	if !ok {
		return ReleaseDate{}, false
	}
	rd := ReleaseDate{
		Year:  intField(mp, "year"),
		Month: intField(mp, "month"),
		Day:   intField(mp, "day"),
	}
	return rd, true
}

// SetReleaseDate stores the partial release date, omitting zero components.
func (d *Descriptor) SetReleaseDate(rd ReleaseDate) {
	if d == nil {
		return
	}
	mp := map[string]any{"year": rd.Year}
	if rd.Month != 0 {
		mp["month"] = rd.Month
	}
	if rd.Day != 0 {
		mp["day"] = rd.Day
	}
	_ = d.Set(mp, "releaseDate")
}

// Executables returns the recorded executable labels of a game.
func (d *Descriptor) Executables() []string {
	raw, ok := d.Get("executables")
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AddExecutable appends a label to the executable list if not already
// present.
func (d *Descriptor) AddExecutable(label string) {
	if d == nil {
		return
	}
	labels := d.Executables()
	for _, l := range labels {
		if l == label {
			return
		}
	}
	labels = append(labels, label)
	list := make([]any, 0, len(labels))
	for _, l := range labels {
		list = append(list, l)
	}
	_ = d.Set(list, "executables")
}

// intField reads an integer-valued key from a JSON object map.
func intField(mp map[string]any, key string) int {
	switch v := mp[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

// deepCopyMap copies a JSON-shaped map via a marshal/unmarshal round trip.
func deepCopyMap(m map[string]any) (map[string]any, error) {
	if m == nil {
		return make(map[string]any), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
