package catalog

import (
	"context"

	"github.com/gamedex/gamedex/pkg/log"
)

// EnsureTag makes sure a taxonomy value exists for the given title and
// returns the stored title. When an entity with the derived identifier
// already exists its title is returned verbatim (so "ACTION" resolves to an
// existing "Action"); otherwise a minimal tag entity is created and the
// trimmed original-case title is returned.
//
// Invalid input (empty or whitespace-only titles) returns "" with no error:
// this path feeds batch tag attachment from remote imports and must stay
// error-tolerant.
func (s *Store) EnsureTag(ctx context.Context, t Type, title string) (string, error) {
	if !t.IsTag() {
		return "", NewValidationError("%q is not a tag type", t)
	}
	key, err := TagKey(title)
	if err != nil {
		return "", nil
	}

	if existing, err := s.Get(ctx, t, key); err == nil {
		return existing.Title(), nil
	} else if !IsNotFound(err) {
		return "", err
	}

	d, err := newTagDescriptor(title)
	if err != nil {
		return "", nil
	}
	if _, err := s.Create(ctx, t, d); err != nil {
		return "", err
	}
	return d.Title(), nil
}

// CreateTag strictly creates a taxonomy value. It conflicts when a tag with
// the same normalized title already exists; a title differing only by case
// or surrounding whitespace derives the same identifier and therefore
// collides.
func (s *Store) CreateTag(ctx context.Context, t Type, title string) (*Descriptor, error) {
	if !t.IsTag() {
		return nil, NewValidationError("%q is not a tag type", t)
	}
	key, err := TagKey(title)
	if err != nil {
		return nil, NewValidationError("missing title")
	}

	if existing, err := s.Get(ctx, t, key); err == nil {
		if existing.Title() != "" && NormalizeTitle(existing.Title()) != NormalizeTitle(title) {
			// Distinct normalized titles hashing to the same id. Accepted
			// risk of the derivation scheme; surface it in the log.
			log.FromContext(ctx).Warn("tag id collision",
				"type", string(t), "id", key,
				"existing", existing.Title(), "requested", title)
		}
		return nil, NewConflictError("%s already exists", existing.Title())
	} else if !IsNotFound(err) {
		return nil, err
	}

	d, err := newTagDescriptor(title)
	if err != nil {
		return nil, NewValidationError("missing title")
	}
	return s.Create(ctx, t, d)
}

// DeleteTag removes a taxonomy value by title. It fails with NotFound when
// the tag is absent and with a conflict while any game still references the
// tag. Deletion honors the directory-empty cleanup rule, so a tag directory
// holding a leftover cover survives without its descriptor.
func (s *Store) DeleteTag(ctx context.Context, t Type, title string, update CacheUpdate) error {
	if !t.IsTag() {
		return NewValidationError("%q is not a tag type", t)
	}
	key, err := TagKey(title)
	if err != nil {
		return NewNotFoundError(t, title)
	}
	d, err := s.Get(ctx, t, key)
	if err != nil {
		return err
	}

	stored := d.Title()
	n, err := s.TagReferenceCount(ctx, t, stored)
	if err != nil {
		return err
	}
	if n > 0 {
		return NewConflictError("%s is still in use by one or more games", stored)
	}
	return s.Delete(ctx, t, key, update)
}

// TagReferenceCount returns the exact number of games whose tag-list field
// for this tag type contains the title. The match is on the literal title
// string, because games store attached tags as titles, not identifiers.
func (s *Store) TagReferenceCount(ctx context.Context, t Type, title string) (int, error) {
	field := t.TagField()
	if field == "" {
		return 0, NewValidationError("%q is not a tag type", t)
	}
	games, err := s.Load(ctx, TypeGames)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, g := range games {
		for _, attached := range g.TagList(field) {
			if attached == title {
				n++
				break
			}
		}
	}
	return n, nil
}

// newTagDescriptor builds the minimal descriptor for a taxonomy value: the
// derived identifier plus the trimmed original-case title.
func newTagDescriptor(title string) (*Descriptor, error) {
	id, err := DeriveTagID(title)
	if err != nil {
		return nil, err
	}
	d := NewDescriptor()
	_ = d.Set(id, "id")
	d.SetTitle(title)
	return d, nil
}
