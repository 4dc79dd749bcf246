package spotify

import (
	"fmt"
	"io"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	defaultWebBase = "https://open.spotify.com"
	defaultAPIBase = "https://api.spotify.com"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"
)

// Prefill is the public oEmbed subset used to seed an album form.
type Prefill struct {
	Title        string
	AuthorName   string
	ThumbnailURL string
}

// AlbumDetail is the richer shape the authenticated Web API returns.
type AlbumDetail struct {
	Name        string
	Artist      string
	Tracks      int64
	DurationMin int64
	ReleaseDate string
	CoverURL    string
	Type        string
	Genres      []string
	Label       string
}

// Client talks to Spotify's public and authenticated endpoints.
type Client struct {
	webBase string
	apiBase string
	http    *retryablehttp.Client
}

// NewClient builds a client with retrying transport.
func NewClient() *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	return &Client{
		webBase: defaultWebBase,
		apiBase: defaultAPIBase,
		http:    rc,
	}
}

// Oembed fetches public album metadata. No credential required.
func (c *Client) Oembed(albumID string) (Prefill, error) {
	endpoint := c.webBase + "/oembed?url=" + url.QueryEscape("spotify:album:"+albumID)
	body, err := c.get(endpoint, "")
	if err != nil {
		return Prefill{}, err
	}
	res := gjson.ParseBytes(body)
	return Prefill{
		Title:        res.Get("title").String(),
		AuthorName:   res.Get("author_name").String(),
		ThumbnailURL: res.Get("thumbnail_url").String(),
	}, nil
}

// Album fetches full album detail with a bearer token. Total duration is
// computed in whole minutes from the nested track list.
func (c *Client) Album(albumID, token string) (AlbumDetail, error) {
	body, err := c.get(c.apiBase+"/v1/albums/"+url.PathEscape(albumID), token)
	if err != nil {
		return AlbumDetail{}, err
	}
	res := gjson.ParseBytes(body)

	var totalMs int64
	for _, d := range res.Get("tracks.items.#.duration_ms").Array() {
		totalMs += d.Int()
	}

	genres := []string{}
	for _, g := range res.Get("genres").Array() {
		genres = append(genres, g.String())
	}

	return AlbumDetail{
		Name:        res.Get("name").String(),
		Artist:      res.Get("artists.0.name").String(),
		Tracks:      res.Get("tracks.total").Int(),
		DurationMin: (totalMs + 30000) / 60000,
		ReleaseDate: res.Get("release_date").String(),
		CoverURL:    res.Get("images.0.url").String(),
		Type:        res.Get("album_type").String(),
		Genres:      genres,
		Label:       res.Get("label").String(),
	}, nil
}

// AlbumPage fetches the host page HTML for an album route. The token probe
// scans this for an embedded session credential.
func (c *Client) AlbumPage(albumID string) (string, error) {
	body, err := c.get(c.webBase+"/album/"+url.PathEscape(albumID), "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchToken fetches the album page and probes it for a credential.
// Absence is ordinary control flow, not an error.
func (c *Client) FetchToken(albumID string) (string, bool) {
	page, err := c.AlbumPage(albumID)
	if err != nil {
		return "", false
	}
	return TokenFromPage(page)
}

func (c *Client) get(endpoint, token string) ([]byte, error) {
	req, err := retryablehttp.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, endpoint)
	}
	return body, nil
}
