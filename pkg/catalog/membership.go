package catalog

import (
	"context"
	"sort"
)

// SetMembership replaces a collection's ordered membership list. Input
// identifiers are deduplicated (first occurrence wins), resolved to their
// game's release date, and sorted ascending by (year, month, day) with
// missing components treated as zero, so undated games sort oldest-first.
// The sort is stable: equal dates keep the input's relative order.
// Identifiers that resolve to no live game are dropped silently, not an
// error. Returns the persisted list.
//
// A single insertion into an already-sorted collection goes through the same
// full recompute; collections are small and correctness beats
// incrementalism.
func (s *Store) SetMembership(ctx context.Context, collectionKey string, gameIDs []string, update CacheUpdate) ([]string, error) {
	col, err := s.Get(ctx, TypeCollections, collectionKey)
	if err != nil {
		return nil, err
	}

	games, err := s.Load(ctx, TypeGames)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]ReleaseDate, len(games))
	for _, g := range games {
		rd, _ := g.ReleaseDate()
		dates[g.ID()] = rd
	}

	seen := make(map[string]struct{}, len(gameIDs))
	members := make([]string, 0, len(gameIDs))
	for _, id := range gameIDs {
		key := Key(id)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, live := dates[key]; !live {
			continue
		}
		members = append(members, key)
	}

	sort.SliceStable(members, func(i, j int) bool {
		return dates[members[i]].Before(dates[members[j]])
	})

	col.SetGameIDs(members)
	if err := s.writeDescriptor(TypeCollections, collectionKey, col); err != nil {
		return nil, err
	}
	if update != nil {
		update(collectionKey, func(cur *Descriptor) bool {
			cur.SetGameIDs(members)
			return true
		})
	}
	return members, nil
}

// GameCount derives a collection's live member count at read time: the
// number of membership identifiers that still resolve to a game. It is
// never stored, so it tracks game deletions without explicit invalidation.
func (s *Store) GameCount(ctx context.Context, col *Descriptor) (int, error) {
	games, err := s.List(ctx, TypeGames)
	if err != nil {
		return 0, err
	}
	live := make(map[string]struct{}, len(games))
	for _, g := range games {
		live[g.ID()] = struct{}{}
	}
	n := 0
	for _, id := range col.GameIDs() {
		if _, ok := live[id]; ok {
			n++
		}
	}
	return n, nil
}

// CollectionGameCount is GameCount addressed by collection identifier.
func (s *Store) CollectionGameCount(ctx context.Context, collectionKey string) (int, error) {
	col, err := s.Get(ctx, TypeCollections, collectionKey)
	if err != nil {
		return 0, err
	}
	return s.GameCount(ctx, col)
}
