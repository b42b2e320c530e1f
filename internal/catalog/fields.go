package catalog

import (
	"math"
	"strconv"
	"strings"
)

// firstText returns the first alias holding a non-blank string or a number.
func firstText(v Value, names ...string) (string, bool) {
	for _, name := range names {
		if s, ok := v.Field(name).Text(); ok {
			return s, true
		}
	}
	return "", false
}

func textOr(v Value, fallback string, names ...string) string {
	if s, ok := firstText(v, names...); ok {
		return s
	}
	return fallback
}

func firstFloat(v Value, names ...string) (float64, bool) {
	for _, name := range names {
		if f, ok := v.Field(name).Float(); ok {
			return f, true
		}
	}
	return 0, false
}

func firstTruth(v Value, names ...string) (bool, bool) {
	for _, name := range names {
		if b, ok := v.Field(name).Truth(); ok {
			return b, true
		}
	}
	return false, false
}

// countOf floors the first numeric alias and clamps it at zero.
func countOf(v Value, names ...string) (int, bool) {
	f, ok := firstFloat(v, names...)
	if !ok {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	return int(math.Floor(f)), true
}

// nameOf reads a display name from either a plain string or an object that
// carries one.
func nameOf(v Value, keys ...string) (string, bool) {
	switch v.Kind() {
	case KindString, KindNumber:
		return v.Text()
	case KindObject:
		return firstText(v, keys...)
	case KindNull, KindBool, KindArray:
		return "", false
	default:
		return "", false
	}
}

// stringList flattens an array of names (or a single name) into trimmed,
// non-blank strings. The result is never nil.
func stringList(v Value) []string {
	out := []string{}
	switch v.Kind() {
	case KindArray:
		for _, item := range v.Items() {
			if s, ok := nameOf(item, "name", "title"); ok {
				out = append(out, s)
			}
		}
	case KindString, KindNumber:
		if s, ok := v.Text(); ok {
			out = append(out, s)
		}
	case KindNull, KindBool, KindObject:
	}
	return out
}

// listOf extracts the element list from an array or from the first named
// field of a wrapper object. Paged wrappers ({"items": [...]}) are unwrapped.
func listOf(v Value, names ...string) []Value {
	switch v.Kind() {
	case KindArray:
		return v.Items()
	case KindObject:
		for _, name := range names {
			field := v.Field(name)
			switch field.Kind() {
			case KindArray:
				return field.Items()
			case KindObject:
				if items := field.Field("items"); items.Kind() == KindArray {
					return items.Items()
				}
			case KindNull, KindBool, KindNumber, KindString:
			}
		}
	case KindNull, KindBool, KindNumber, KindString:
	}
	return nil
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func stringPtr(s string) *string  { return &s }

// AlbumKey returns the map key for an album identifier. Numeric identifiers
// are canonicalised so "7", "07" and 7 share one entry.
func AlbumKey(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(id, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return id
}

// ValidRating reports whether r is an allowed user rating.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// userRating rounds the first rating alias and rejects anything outside 1..5.
func userRating(v Value) *int {
	f, ok := firstFloat(v, "user_rating", "userRating", "rating")
	if !ok {
		return nil
	}
	r := int(math.Round(f))
	if f < 1 || f > 5 || !ValidRating(r) {
		return nil
	}
	return &r
}

func favoriteFlag(v Value) bool {
	b, ok := firstTruth(v, "favorited", "favorite", "is_favorite")
	return ok && b
}
