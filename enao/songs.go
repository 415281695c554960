package enao

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nkoval/genremap/data"
)

// ExtractPreviewSongs pulls the embedded preview tracks off a genre's own
// page. Bubbles without a preview URL are skipped; that's the common case.
func ExtractPreviewSongs(doc *goquery.Document) []data.PreviewSong {
	var songs []data.PreviewSong
	doc.Find(genreBubbleSelector).Each(func(_ int, sel *goquery.Selection) {
		previewURL, ok := sel.Attr(previewURLAttr)
		if !ok || previewURL == "" {
			return
		}
		songs = append(songs, data.PreviewSong{
			PreviewURL:   previewURL,
			PreviewTitle: ParsePreviewTitle(sel.AttrOr("title", "")),
		})
	})
	return songs
}

// ParsePreviewTitle derives a readable title from a bubble's title attribute:
// the leading "e.g." marker and surrounding punctuation are stripped, and the
// common `Artist "Song"` shape is rewritten as `Artist - Song`. Titles that
// don't match the shape pass through cleaned but otherwise unchanged.
func ParsePreviewTitle(title string) string {
	title = strings.TrimSpace(title)
	if len(title) >= 4 && strings.EqualFold(title[:4], "e.g.") {
		title = strings.TrimLeft(title[4:], " .")
	}
	if m := exampleTitleRE.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1]) + " - " + strings.TrimSpace(m[2])
	}
	return title
}
