package catalog

import (
	"context"

	"github.com/gamedex/gamedex/pkg/log"
)

// RemoveGameFromAllCollections filters one game identifier out of every
// collection membership list that contains it, rewriting each affected
// descriptor and, when a hook is given, echoing the filtered list into the
// cache. Returns the number of collections actually modified; zero is not an
// error.
func (s *Store) RemoveGameFromAllCollections(ctx context.Context, gameKey string, update CacheUpdate) (int, error) {
	cols, err := s.Load(ctx, TypeCollections)
	if err != nil {
		return 0, err
	}

	modified := 0
	for _, col := range cols {
		ids := col.GameIDs()
		kept := make([]string, 0, len(ids))
		removed := false
		for _, id := range ids {
			if id == gameKey {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		if !removed {
			continue
		}
		col.SetGameIDs(kept)
		if err := s.writeDescriptor(TypeCollections, col.ID(), col); err != nil {
			return modified, err
		}
		if update != nil {
			update(col.ID(), func(cur *Descriptor) bool {
				cur.SetGameIDs(kept)
				return true
			})
		}
		modified++
	}
	return modified, nil
}

// DeleteGameCascade deletes a game and every reference to it. Order matters:
// the game descriptor goes first so reference counts reflect its absence,
// then collections and recommended sections are cleaned, then any tag the
// departing game left with zero references is removed from the taxonomy.
// Cleanup steps that find nothing to do are not errors; only the initial
// delete of a missing game fails.
//
// The steps touch many files with no atomicity across them; a crash
// mid-cascade can leave a dangling collection reference. Accepted limitation
// for a single-user catalog.
func (s *Store) DeleteGameCascade(ctx context.Context, gameKey string) error {
	game, err := s.Get(ctx, TypeGames, gameKey)
	if err != nil {
		return err
	}

	// Capture attached tag titles before the descriptor disappears.
	attached := make(map[Type][]string, len(TagTypes))
	for _, t := range TagTypes {
		attached[t] = game.TagList(t.TagField())
	}

	if err := s.Delete(ctx, TypeGames, gameKey, s.updater(TypeGames)); err != nil {
		return err
	}

	removed, err := s.RemoveGameFromAllCollections(ctx, gameKey, s.updater(TypeCollections))
	if err != nil {
		return err
	}

	if _, err := s.RemoveGameFromRecommended(ctx, gameKey); err != nil {
		return err
	}

	orphans := 0
	for _, t := range TagTypes {
		for _, title := range attached[t] {
			n, err := s.TagReferenceCount(ctx, t, title)
			if err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			if err := s.DeleteTag(ctx, t, title, s.updater(t)); err != nil {
				if IsNotFound(err) {
					continue
				}
				return err
			}
			orphans++
		}
	}

	log.FromContext(ctx).Info("game cascade complete",
		"id", gameKey, "collections", removed, "orphanTags", orphans)
	return nil
}
