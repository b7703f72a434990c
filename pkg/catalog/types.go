// Package catalog implements the entity store and consistency engine for a
// personal game library. Entities (games, collections, and the
// controlled-vocabulary tag categories) live on disk as one JSON descriptor
// per entity directory under <root>/content/<type>/<id>/, with optional
// co-located image assets. The package owns the canonical on-disk
// representation, an in-process read cache, referential integrity between
// games and tags/collections, and the cascading cleanup performed when a
// game is deleted.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type names an entity category. The value doubles as the directory name
// under the content root, so it is part of the on-disk layout.
type Type string

const (
	TypeGames        Type = "games"
	TypeCollections  Type = "collections"
	TypeGenres       Type = "categories"
	TypePlatforms    Type = "platforms"
	TypeThemes       Type = "themes"
	TypeGameModes    Type = "game-modes"
	TypeGameEngines  Type = "game-engines"
	TypePerspectives Type = "player-perspectives"
	TypeDevelopers   Type = "developers"
)

// Types lists every entity type in a stable order.
var Types = []Type{
	TypeGames,
	TypeCollections,
	TypeGenres,
	TypePlatforms,
	TypeThemes,
	TypeGameModes,
	TypeGameEngines,
	TypePerspectives,
	TypeDevelopers,
}

// TagTypes lists the controlled-vocabulary tag categories (every type except
// games and collections).
var TagTypes = []Type{
	TypeGenres,
	TypePlatforms,
	TypeThemes,
	TypeGameModes,
	TypeGameEngines,
	TypePerspectives,
	TypeDevelopers,
}

// tagFields maps each tag type to the game descriptor field that lists the
// attached tag titles.
var tagFields = map[Type]string{
	TypeGenres:       "genre",
	TypePlatforms:    "platform",
	TypeThemes:       "theme",
	TypeGameModes:    "gameMode",
	TypeGameEngines:  "gameEngine",
	TypePerspectives: "playerPerspective",
	TypeDevelopers:   "developer",
}

// Valid reports whether t names a known entity type.
func (t Type) Valid() bool {
	_, ok := updatableFields[t]
	return ok
}

// IsTag reports whether t is one of the taxonomy categories.
func (t Type) IsTag() bool {
	_, ok := tagFields[t]
	return ok
}

// TagField returns the game descriptor field holding titles of this tag
// type, or "" when t is not a tag type.
func (t Type) TagField() string { return tagFields[t] }

// ParseType resolves a type name to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(strings.ToLower(s)))
	if !t.Valid() {
		return "", errors.New("unknown entity type: " + s)
	}
	return t, nil
}

// updatableFields is the per-type allow-list applied by Store.Update.
// Fields outside the list are silently dropped; everything else in the
// descriptor is preserved verbatim.
var updatableFields = map[Type][]string{
	TypeGames: {
		"title", "summary", "releaseDate", "rating", "userRating",
		"genre", "platform", "theme", "gameMode", "gameEngine",
		"playerPerspective", "developer",
		"cover", "background", "executables",
	},
	TypeCollections:  {"title", "summary", "cover", "background", "games"},
	TypeGenres:       {"title", "cover", "background"},
	TypePlatforms:    {"title", "cover", "background"},
	TypeThemes:       {"title", "cover", "background"},
	TypeGameModes:    {"title", "cover", "background"},
	TypeGameEngines:  {"title", "cover", "background"},
	TypePerspectives: {"title", "cover", "background"},
	TypeDevelopers:   {"title", "cover", "background"},
}

// ReleaseDate is a partial calendar date. Month and Day are zero when the
// source metadata omits them; a zero Year means the date is unknown
// entirely, which sorts before any known date.
type ReleaseDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Before reports whether r sorts strictly before other on
// (year, month, day).
func (r ReleaseDate) Before(other ReleaseDate) bool {
	if r.Year != other.Year {
		return r.Year < other.Year
	}
	if r.Month != other.Month {
		return r.Month < other.Month
	}
	return r.Day < other.Day
}

// Key canonicalizes an identifier that may arrive as an int, a JSON number
// (float64), or a string into its decimal-string form. Identifiers cross the
// JSON boundary as numbers and the process boundary as strings, so every
// comparison in this package goes through Key.
func Key(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// idValue converts a canonical key back to the value stored in descriptor
// JSON: a number when the key is numeric, otherwise the string itself. Game
// identifier lists are stored as JSON numbers, so rewrites keep that shape.
func idValue(key string) any {
	if n, err := strconv.Atoi(key); err == nil {
		return n
	}
	return key
}
