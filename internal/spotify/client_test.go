package spotify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient()
	c.webBase = srv.URL
	c.apiBase = srv.URL
	c.http.RetryMax = 0
	return c
}

func TestOembed(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oembed", r.URL.Path)
		assert.Equal(t, "spotify:album:abc123", r.URL.Query().Get("url"))
		json.NewEncoder(w).Encode(map[string]any{
			"title":         "Kind of Blue",
			"author_name":   "Miles Davis",
			"thumbnail_url": "https://i.scdn.co/image/xyz",
		})
	})

	pre, err := c.Oembed("abc123")
	require.NoError(t, err)
	assert.Equal(t, "Kind of Blue", pre.Title)
	assert.Equal(t, "Miles Davis", pre.AuthorName)
	assert.Equal(t, "https://i.scdn.co/image/xyz", pre.ThumbnailURL)
}

func TestAlbumComputesDurationFromTracks(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/albums/abc123", r.URL.Path)
		assert.Equal(t, "Bearer BQtok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"name":         "Kind of Blue",
			"artists":      []map[string]any{{"name": "Miles Davis"}},
			"release_date": "1959-08-17",
			"album_type":   "album",
			"label":        "Columbia",
			"genres":       []string{"jazz"},
			"images":       []map[string]any{{"url": "https://i.scdn.co/image/big"}},
			"tracks": map[string]any{
				"total": 5,
				"items": []map[string]any{
					{"duration_ms": 540000},
					{"duration_ms": 560000},
					{"duration_ms": 340000},
					{"duration_ms": 660000},
					{"duration_ms": 580000},
				},
			},
		})
	})

	detail, err := c.Album("abc123", "BQtok")
	require.NoError(t, err)
	assert.Equal(t, "Kind of Blue", detail.Name)
	assert.Equal(t, "Miles Davis", detail.Artist)
	assert.Equal(t, int64(5), detail.Tracks)
	// 2,680,000 ms ~= 45 minutes.
	assert.Equal(t, int64(45), detail.DurationMin)
	assert.Equal(t, "1959-08-17", detail.ReleaseDate)
	assert.Equal(t, "https://i.scdn.co/image/big", detail.CoverURL)
	assert.Equal(t, []string{"jazz"}, detail.Genres)
	assert.Equal(t, "Columbia", detail.Label)
}

func TestAlbumNonSuccessStatusIsAnError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Album("abc123", "expired")
	assert.Error(t, err)
}

func TestFetchTokenFromAlbumPage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/album/abc123", r.URL.Path)
		w.Write([]byte(`<html><body><script>var cfg={"accessToken":"BQabcdefghijklmnopqrstuvwxyz"};</script></body></html>`))
	})

	token, ok := c.FetchToken("abc123")
	require.True(t, ok)
	assert.Equal(t, "BQabcdefghijklmnopqrstuvwxyz", token)
}

func TestFetchTokenPageUnavailable(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, ok := c.FetchToken("abc123")
	assert.False(t, ok)
}
