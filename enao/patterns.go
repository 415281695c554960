package enao

import "regexp"

// Everything we assume about the upstream markup lives here. The site's HTML
// is an external interface we don't control; when it drifts, this file is the
// single point of change. The contract tests in this package pin each pattern
// to a fixture snippet.
const (
	// One genre bubble on the map or on a genre's own page.
	genreBubbleSelector = "div.genre.scanme"

	// A "view source" rendering wraps each original source line in one of
	// these cells.
	viewSourceLineSelector = "td.line-content"

	// Attribute carrying a bubble's preview audio URL.
	previewURLAttr = "preview_url"
)

var (
	// Inline-style color, background preferred over foreground.
	styleBackgroundRE = regexp.MustCompile(`(?i)background-color:\s*(#[0-9a-f]{6})`)
	styleColorRE      = regexp.MustCompile(`(?i)(?:^|[;\s])color:\s*(#[0-9a-f]{6})`)

	// Inline-style pixel offsets.
	stylePositionRE = regexp.MustCompile(`(?i)(top|left):\s*([0-9]+)px`)

	// The genre-map id embedded in a genre page's filename.
	hrefSlugRE = regexp.MustCompile(`engenremap-([^.]+)\.html`)

	// An embedded "sound of" playlist link.
	playlistHrefRE = regexp.MustCompile(`open\.spotify\.com/playlist/([a-zA-Z0-9]+)`)

	// The common `Artist "Song"` shape of a bubble's example title.
	exampleTitleRE = regexp.MustCompile(`^(.*?)\s*"(.*)"$`)

	// Characters not allowed in a fallback slug.
	slugUnsafeRE = regexp.MustCompile(`[^\w\- ]+`)
)
