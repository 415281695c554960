// Package enao parses the genre-map website: the all-genres snapshot into a
// catalog, and individual genre pages into playlist links and preview songs.
package enao

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/data"
	"golang.org/x/net/html"
)

// ReadSnapshot loads an HTML snapshot from disk and returns it as a document.
//
// Snapshots saved through the browser's "view source" page wrap every original
// source line in a line-numbered table cell. When we detect that shape, we
// reconstruct the original HTML by joining the cells' text (entities come back
// decoded) and re-parse the result. Anything else is treated as raw HTML.
func ReadSnapshot(path string) (*goquery.Document, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot at '%s': %w", path, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("error parsing snapshot at '%s': %w", path, err)
	}

	lines := doc.Find(viewSourceLineSelector)
	if lines.Length() == 0 {
		return doc, nil
	}

	var b strings.Builder
	lines.Each(func(i int, sel *goquery.Selection) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sel.Text())
	})

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	if err != nil {
		return nil, fmt.Errorf("error parsing reconstructed snapshot at '%s': %w", path, err)
	}
	return doc, nil
}

// ParseCatalog extracts every genre bubble from the snapshot document. A
// malformed bubble is logged and skipped; it never aborts the others.
func ParseCatalog(doc *goquery.Document, logger *log.Logger) *data.Catalog {
	catalog := data.NewCatalog()
	doc.Find(genreBubbleSelector).Each(func(i int, sel *goquery.Selection) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("error parsing genre bubble", "index", i, "err", r)
			}
		}()

		el := genreElement{sel}
		name := el.Name()
		if name == "" {
			logger.Debug("skipping unnamed genre bubble", "index", i)
			return
		}

		entry := data.GenreEntry{Href: el.Href()}
		entry.Color, entry.Top, entry.Left = parseStyle(el.AttrOr("style", ""))
		catalog.Add(name, entry)
	})
	return catalog
}

// A genreElement is the markup for a single genre bubble. It has methods for
// looking into that element and extracting information.
type genreElement struct{ *goquery.Selection }

// Name returns the visible genre name: the bubble's first non-empty text
// child, which excludes the "»" navigation anchor. Falls back to the full
// text with the trailing marker stripped.
func (el genreElement) Name() string {
	if len(el.Nodes) > 0 {
		for node := el.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
			if node.Type != html.TextNode {
				continue
			}
			if name := strings.TrimSpace(node.Data); name != "" {
				return name
			}
		}
	}
	return strings.Trim(el.Text(), "» ")
}

// Href returns the first anchor's href, or "" when the bubble has no link.
func (el genreElement) Href() string {
	href, _ := el.Find("a[href]").First().Attr("href")
	return strings.TrimSpace(href)
}

// parseStyle pulls the display color and layout offsets out of an inline
// style attribute. Absent values stay zero; the color keeps its leading "#"
// and is lowercased.
func parseStyle(style string) (color string, top, left *int) {
	if m := styleBackgroundRE.FindStringSubmatch(style); m != nil {
		color = strings.ToLower(m[1])
	} else if m := styleColorRE.FindStringSubmatch(style); m != nil {
		color = strings.ToLower(m[1])
	}

	for _, m := range stylePositionRE.FindAllStringSubmatch(style, -1) {
		px, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		switch strings.ToLower(m[1]) {
		case "top":
			top = &px
		case "left":
			left = &px
		}
	}
	return color, top, left
}
