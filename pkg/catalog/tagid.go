package catalog

import (
	"strconv"
	"strings"
)

// DeriveTagID converts a free-text tag title into its stable numeric
// identifier: the title is trimmed and lowercased, hashed with a 31-multiplier
// polynomial over its characters wrapped to 32 bits, and the absolute value of
// the result is returned. The function is deterministic and collision-possible:
// two distinct normalized titles may map to the same integer. That is accepted
// behavior; tag identity is "normalized title", the integer is only its
// directory name.
//
// Empty, whitespace-only, or otherwise unusable titles fail with
// ErrInvalidTitle.
func DeriveTagID(title string) (int, error) {
	norm := NormalizeTitle(title)
	if norm == "" {
		return 0, ErrInvalidTitle
	}
	var h int32
	for _, r := range norm {
		h = h*31 + int32(r)
	}
	if h == -2147483648 {
		// abs would overflow; wrap to zero like the 32-bit source arithmetic.
		return 0, nil
	}
	if h < 0 {
		h = -h
	}
	return int(h), nil
}

// TagKey returns the canonical string key (directory name) for a tag title,
// or an error for invalid titles.
func TagKey(title string) (string, error) {
	id, err := DeriveTagID(title)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(id), nil
}

// NormalizeTitle trims and lowercases a tag title. Two titles with equal
// normalized forms are the same tag.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
