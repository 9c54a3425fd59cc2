// Package spotify implements library.Lookup against the Spotify Web API.
//
// Songs and artists come from the search endpoint; playlists come from the
// current user's playlists, since commands refer to the user's own lists.
// The client expects a ready OAuth access token; obtaining and refreshing it
// is the caller's job.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/playback"
)

const defaultAPIURL = "https://api.spotify.com/v1"

// ErrUnauthorized is returned when the access token is missing or expired.
var ErrUnauthorized = errors.New("spotify: invalid or expired access token")

// Client looks up tracks, artists and playlists for the current user.
type Client struct {
	apiURL        string
	token         string
	market        string
	searchLimit   int
	playlistPages int
	client        *http.Client
}

// New creates a new Spotify client from config.
func New(cfg config.SpotifyConfig) *Client {
	apiURL := strings.TrimSuffix(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	limit := cfg.SearchLimit
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	pages := cfg.PlaylistPages
	if pages <= 0 {
		pages = 4
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiURL:        apiURL,
		token:         cfg.AccessToken,
		market:        cfg.Market,
		searchLimit:   limit,
		playlistPages: pages,
		client:        &http.Client{Timeout: timeout},
	}
}

// LookupCandidates implements library.Lookup.
func (c *Client) LookupCandidates(ctx context.Context, kind playback.TargetKind, hint string) ([]playback.Candidate, error) {
	switch kind {
	case playback.KindSong:
		return c.searchTracks(ctx, hint)
	case playback.KindArtist:
		return c.searchArtists(ctx, hint)
	case playback.KindPlaylist:
		return c.userPlaylists(ctx)
	}
	return nil, nil
}

// Ping checks that the token is accepted by fetching the current user.
func (c *Client) Ping(ctx context.Context) error {
	var user PublicUser
	if err := c.get(ctx, c.apiURL+"/me", &user); err != nil {
		return err
	}
	slog.Debug("spotify ping ok", "user_id", user.ID)
	return nil
}

func (c *Client) searchTracks(ctx context.Context, hint string) ([]playback.Candidate, error) {
	var resp SearchResponse
	if err := c.get(ctx, c.searchURL(hint, "track"), &resp); err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}
	if resp.Tracks == nil {
		return nil, nil
	}

	out := make([]playback.Candidate, 0, len(resp.Tracks.Items))
	for _, t := range resp.Tracks.Items {
		if t.IsPlayable != nil && !*t.IsPlayable {
			continue
		}
		names := make([]string, len(t.Artists))
		for i, a := range t.Artists {
			names[i] = a.Name
		}
		out = append(out, playback.Candidate{
			ID:          t.URI,
			DisplayName: t.Name,
			Kind:        playback.KindSong,
			Detail:      strings.Join(names, ", "),
		})
	}
	return out, nil
}

func (c *Client) searchArtists(ctx context.Context, hint string) ([]playback.Candidate, error) {
	var resp SearchResponse
	if err := c.get(ctx, c.searchURL(hint, "artist"), &resp); err != nil {
		return nil, fmt.Errorf("searching artists: %w", err)
	}
	if resp.Artists == nil {
		return nil, nil
	}

	out := make([]playback.Candidate, 0, len(resp.Artists.Items))
	for _, a := range resp.Artists.Items {
		out = append(out, playback.Candidate{
			ID:          a.URI,
			DisplayName: a.Name,
			Kind:        playback.KindArtist,
		})
	}
	return out, nil
}

// userPlaylists follows the paging links up to the configured page count.
func (c *Client) userPlaylists(ctx context.Context) ([]playback.Candidate, error) {
	var out []playback.Candidate
	next := c.apiURL + "/me/playlists?limit=50"

	for page := 0; next != "" && page < c.playlistPages; page++ {
		var resp Paging[SimplifiedPlaylist]
		if err := c.get(ctx, next, &resp); err != nil {
			return nil, fmt.Errorf("listing playlists: %w", err)
		}
		for _, p := range resp.Items {
			cand := playback.Candidate{
				ID:          p.URI,
				DisplayName: p.Name,
				Kind:        playback.KindPlaylist,
			}
			if p.Owner != nil && p.Owner.DisplayName != nil {
				cand.Detail = *p.Owner.DisplayName
			}
			out = append(out, cand)
		}
		next = ""
		if resp.Next != nil {
			next = *resp.Next
		}
	}
	return out, nil
}

func (c *Client) searchURL(hint, searchType string) string {
	q := make(url.Values)
	q.Set("q", hint)
	q.Set("type", searchType)
	q.Set("limit", strconv.Itoa(c.searchLimit))
	if c.market != "" {
		q.Set("market", c.market)
	}
	return c.apiURL + "/search?" + q.Encode()
}

func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	if c.token == "" {
		return ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("spotify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("spotify request failed (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("spotify request failed (status %d): %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding spotify response: %w", err)
	}
	return nil
}
