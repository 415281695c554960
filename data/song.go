package data

// SongRecord is one track harvested from a genre's "sound of" playlist. The
// ISRC is the correctness key downstream matching relies on; tracks without
// one never become SongRecords.
type SongRecord struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	ISRC   string `json:"isrc"`
}

// PreviewSong is one embedded preview scraped off a genre's own page, for the
// variant pipeline that doesn't touch the playlist API.
type PreviewSong struct {
	PreviewURL   string `json:"preview_url"`
	PreviewTitle string `json:"preview_title"`
}
