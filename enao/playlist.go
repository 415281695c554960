package enao

import "github.com/PuerkitoBio/goquery"

// PlaylistID finds the embedded "sound of" playlist link on a genre's page
// and returns its id segment. Most genres have one, but absence is a normal
// outcome, not an error.
func PlaylistID(doc *goquery.Document) (string, bool) {
	var id string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if m := playlistHrefRE.FindStringSubmatch(href); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	return id, id != ""
}
