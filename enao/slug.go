package enao

import "strings"

// HrefSlug extracts the genre-map id from a genre page href, like "deephouse"
// from "engenremap-deephouse.html". This id is stable across snapshot
// re-parses, so it's the preferred artifact key.
func HrefSlug(href string) (string, bool) {
	m := hrefSlugRE.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SlugFromHref derives the filesystem-safe artifact key for a genre: the id
// embedded in the href when present, otherwise a sanitized form of the genre
// name.
func SlugFromHref(href, genreName string) string {
	if slug, ok := HrefSlug(href); ok {
		return slug
	}
	return SanitizeName(genreName)
}

// SanitizeName reduces a genre name to word characters, hyphens and
// underscores.
func SanitizeName(name string) string {
	safe := slugUnsafeRE.ReplaceAllString(name, "_")
	return strings.ReplaceAll(strings.TrimSpace(safe), " ", "_")
}
