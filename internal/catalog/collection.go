package catalog

// NormalizeCollectionItem maps a collection row, including the album columns
// the backend joins in, onto a CollectionItem. Unknown kinds read as the
// wishlist.
func NormalizeCollectionItem(v Value) CollectionItem {
	item := CollectionItem{Kind: CollectionWishlist}
	if v.Kind() != KindObject {
		return item
	}
	item.ID = textOr(v, "", "id")
	item.UserID = textOr(v, "", "userId", "user_id")
	item.AlbumID = textOr(v, "", "albumId", "album_id")
	if raw, ok := firstText(v, "kind", "collectionType", "collection_type", "type"); ok {
		if kind, ok := ParseCollectionKind(raw); ok {
			item.Kind = kind
		}
	}
	if notes, ok := v.Field("notes").Text(); ok {
		item.Notes = notes
	}
	item.DateAdded = textOr(v, "", "dateAdded", "date_added")
	item.DateAcquired = textOr(v, "", "dateAcquired", "date_acquired")
	if price, ok := firstFloat(v, "purchasePrice", "purchase_price"); ok {
		item.PurchasePrice = floatPtr(price)
	}
	item.Condition = textOr(v, "", "condition")
	item.CreatedAt = textOr(v, "", "createdAt", "created_at")
	item.UpdatedAt = textOr(v, "", "updatedAt", "updated_at")

	item.AlbumTitle = textOr(v, "", "albumTitle", "album_title", "title")
	item.AlbumArtist = textOr(v, "", "albumArtist", "album_artist", "artist")
	if year, ok := firstFloat(v, "albumReleaseYear", "album_release_year", "release_year"); ok && year > 0 {
		item.AlbumReleaseYear = intPtr(int(year))
	}
	item.AlbumGenre = textOr(v, "", "albumGenre", "album_genre", "genre")
	item.AlbumCoverURL = textOr(v, "", "albumCoverUrl", "album_cover_url", "cover_url")
	return item
}

// NormalizeCollectionPage reads a page of collection items. A missing count
// falls back to the number of items received.
func NormalizeCollectionPage(v Value) CollectionPage {
	items := listOf(v, "collections", "items")
	page := CollectionPage{Items: make([]CollectionItem, 0, len(items))}
	for _, item := range items {
		page.Items = append(page.Items, NormalizeCollectionItem(item))
	}
	if count, ok := countOf(v, "count", "total"); ok && count > 0 {
		page.Count = count
	} else {
		page.Count = len(page.Items)
	}
	return page
}

// NormalizeCollectionStats reads collection statistics with zero defaults.
func NormalizeCollectionStats(v Value) CollectionStats {
	stats := CollectionStats{
		ByGenre:     map[string]int{},
		ByCondition: map[string]int{},
	}
	stats.TotalWishlist, _ = countOf(v, "totalWishlist", "total_wishlist")
	stats.TotalOwned, _ = countOf(v, "totalOwned", "total_owned")
	if total, ok := firstFloat(v, "totalValue", "total_value"); ok {
		stats.TotalValue = total
	}
	stats.ByGenre = countMap(v, "byGenre", "by_genre")
	stats.ByCondition = countMap(v, "byCondition", "by_condition")
	return stats
}

func countMap(v Value, names ...string) map[string]int {
	out := map[string]int{}
	for _, name := range names {
		field := v.Field(name)
		if field.Kind() != KindObject {
			continue
		}
		for _, key := range field.Keys() {
			if n, ok := countOf(field, key); ok {
				out[key] = n
			}
		}
		return out
	}
	return out
}
