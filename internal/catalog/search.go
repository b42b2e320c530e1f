package catalog

import "strings"

// NormalizeSearchResults splits a multi-kind search response into its three
// lists. Sections may be top-level arrays, paged wrappers, or a single
// "results" array whose entries carry a "type".
func NormalizeSearchResults(v Value) SearchResults {
	out := EmptySearchResults()
	if v.Kind() != KindObject {
		return out
	}
	for _, item := range listOf(v, "artists") {
		out.Artists = append(out.Artists, NormalizeArtist(item))
	}
	for _, item := range listOf(v, "albums") {
		out.Albums = append(out.Albums, NormalizeAlbum(item))
	}
	for i, item := range listOf(v, "tracks", "songs") {
		out.Tracks = append(out.Tracks, NormalizeTrack(item, i))
	}
	for _, item := range v.Field("results").Items() {
		kind, _ := firstText(item, "type", "kind")
		switch strings.ToLower(kind) {
		case "artist":
			out.Artists = append(out.Artists, NormalizeArtist(item))
		case "album":
			out.Albums = append(out.Albums, NormalizeAlbum(item))
		case "track", "song":
			out.Tracks = append(out.Tracks, NormalizeTrack(item, len(out.Tracks)))
		}
	}
	return out
}

// NormalizeProviders reads the provider listing. Entries may be bare names.
func NormalizeProviders(v Value) []Provider {
	items := listOf(v, "providers", "items")
	out := make([]Provider, 0, len(items))
	for _, item := range items {
		switch item.Kind() {
		case KindString, KindNumber:
			if name, ok := item.Text(); ok {
				out = append(out, Provider{Name: name, DisplayName: name, Enabled: true})
			}
		case KindObject:
			name, ok := firstText(item, "name", "id")
			if !ok {
				continue
			}
			p := Provider{
				Name:        name,
				DisplayName: textOr(item, name, "displayName", "display_name", "label"),
				Enabled:     true,
			}
			if enabled, ok := firstTruth(item, "enabled", "available"); ok {
				p.Enabled = enabled
			}
			out = append(out, p)
		case KindNull, KindBool, KindArray:
		}
	}
	return out
}

// NormalizeContent turns profile content into its lines, trimmed and with
// blanks dropped. The content may be a string, a list, or an object holding
// either under "content".
func NormalizeContent(v Value) []string {
	switch v.Kind() {
	case KindString:
		raw, _ := v.Raw()
		return contentLines(raw)
	case KindArray:
		out := []string{}
		for _, item := range v.Items() {
			out = append(out, NormalizeContent(item)...)
		}
		return out
	case KindObject:
		for _, name := range []string{"content", "lines", "entries"} {
			if v.Has(name) {
				return NormalizeContent(v.Field(name))
			}
		}
		return []string{}
	case KindNumber:
		s, _ := v.Text()
		return []string{s}
	case KindNull, KindBool:
		return []string{}
	default:
		return []string{}
	}
}

func contentLines(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
