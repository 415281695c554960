package data

// GenreEntry holds everything we extract for one genre bubble on the map.
// Every field is optional: a bubble with no href can still be catalogued, it
// just can't be harvested.
type GenreEntry struct {
	// Relative or absolute URL of the genre's detail page, like
	// "engenremap-deephouse.html".
	Href string `json:"href,omitempty"`

	// Display color from the bubble's inline style, like "#1a2b3c".
	Color string `json:"color,omitempty"`

	// Layout offsets in pixels from the bubble's inline style.
	Top  *int `json:"top,omitempty"`
	Left *int `json:"left,omitempty"`
}
