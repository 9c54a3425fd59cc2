package spotify

// Subset of the Spotify Web API response objects used for lookups.

// Paging is an offset-based page of items.
type Paging[T any] struct {
	Href   string  `json:"href"`
	Items  []T     `json:"items"`
	Limit  int     `json:"limit"`
	Next   *string `json:"next"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// SimplifiedArtist is the artist object embedded in tracks.
type SimplifiedArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Artist is a full artist object.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
}

// Track is a full track object.
type Track struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	URI        string             `json:"uri"`
	Artists    []SimplifiedArtist `json:"artists"`
	IsPlayable *bool              `json:"is_playable,omitempty"`
}

// PublicUser is a public user profile.
type PublicUser struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
}

// SimplifiedPlaylist is a playlist as listed in /me/playlists.
type SimplifiedPlaylist struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	URI   string      `json:"uri"`
	Owner *PublicUser `json:"owner"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Tracks  *Paging[Track]  `json:"tracks,omitempty"`
	Artists *Paging[Artist] `json:"artists,omitempty"`
}

// errorResponse is the body of a failed request.
type errorResponse struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
