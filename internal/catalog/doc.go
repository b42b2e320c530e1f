// Package catalog models Vinylhound catalog data and normalizes the loosely
// shaped JSON the backend returns into canonical records.
//
// # Overview
//
// The backend has gone through several schema revisions and different
// endpoints spell the same field differently (cover_url, coverUrl, coverURL;
// favorited, favorite, is_favorite). Rather than chase those spellings through
// the rest of the client, every response is decoded into a Value and passed
// through a normalizer that returns one of the canonical types in types.go.
//
// # Raw Values
//
// Value is a tagged union over the six JSON kinds. Normalizers switch on
// Kind and use the small accessors (Field, Items, Text, Float, Truth) rather
// than type-asserting interface{} values:
//
//	v, err := catalog.Parse(body)
//	if err != nil {
//		return err
//	}
//	album := catalog.NormalizeAlbum(v)
//
// Numbers keep their literal text, so large numeric identifiers survive the
// trip to string keys unchanged.
//
// # Normalizers
//
// Each normalizer is total: malformed input degrades to defaults and never
// panics or returns an error. Fields are resolved from a fixed list of
// aliases, first match wins. Notable chains:
//
//   - album id: id, external_id, externalId, _id, slug, then "artist-title"
//   - favorite: favorited, favorite, is_favorite
//   - user rating: user_rating, userRating, rating (rounded, 1..5 only)
//   - average rating: averageRating, average_rating, ratingAverage,
//     rating_average, avg_rating
//
// Track lengths accept seconds as numbers or numeric strings and "M:SS" or
// "H:MM:SS" labels. Negative or unparseable lengths are reported as unknown
// (nil), never as zero.
//
// # Idempotence
//
// The JSON tags on the canonical types are the first alias each normalizer
// reads, so marshalling a normalized record and normalizing it again yields
// the same record. Fixtures and persisted blobs rely on this.
package catalog
