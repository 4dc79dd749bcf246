package resolver

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/discana/companion/internal/api"
	"github.com/discana/companion/internal/logging"
	"github.com/discana/companion/internal/spotify"
)

// CatalogFinder is the catalog lookup surface the cascade starts from.
type CatalogFinder interface {
	FindCollection(spotifyID string) (api.FindResult, error)
}

// MetadataSource provides the public and authenticated external lookups.
type MetadataSource interface {
	Oembed(albumID string) (spotify.Prefill, error)
	Album(albumID, token string) (spotify.AlbumDetail, error)
}

// TokenSource is the best-effort credential probe. A miss is not a failure.
type TokenSource interface {
	FetchToken(albumID string) (string, bool)
}

// Resolver runs the layered fallback that turns an album reference into the
// best record available: catalog, then public metadata, then authenticated
// metadata, then a minimal stub. It holds no state between calls and every
// navigation re-resolves.
type Resolver struct {
	catalog CatalogFinder
	meta    MetadataSource
	tokens  TokenSource
	log     *logrus.Logger
}

// New wires a resolver over the catalog and external sources.
func New(catalog CatalogFinder, meta MetadataSource, tokens TokenSource) *Resolver {
	return &Resolver{
		catalog: catalog,
		meta:    meta,
		tokens:  tokens,
		log:     logging.Log,
	}
}

// Resolve always succeeds: every failure path degrades to the next layer and
// the stub record guarantees a usable result.
func (r *Resolver) Resolve(albumID string) (api.Membership, api.Record) {
	membership := api.MembershipUnset

	found, err := r.catalog.FindCollection(albumID)
	if err != nil {
		r.log.WithError(err).WithField("album", albumID).Warn("catalog lookup failed")
	} else {
		membership = found.Collection
		if len(found.Album) > 0 {
			return membership, found.Album
		}
	}

	pre, err := r.meta.Oembed(albumID)
	oembedOK := err == nil
	if err != nil {
		r.log.WithError(err).WithField("album", albumID).Debug("oembed lookup failed")
	}

	if token, ok := r.tokens.FetchToken(albumID); ok {
		detail, err := r.meta.Album(albumID, token)
		if err == nil {
			return membership, detailRecord(albumID, detail, pre)
		}
		// Expired token or blocked call: use whatever the public layer gave.
		r.log.WithError(err).WithField("album", albumID).Debug("authenticated lookup failed")
	}

	if oembedOK {
		return membership, prefillRecord(albumID, pre)
	}

	return membership, stubRecord(albumID)
}

// prefillRecord maps the public oEmbed shape onto the form's field names.
func prefillRecord(albumID string, pre spotify.Prefill) api.Record {
	return api.Record{
		"title":      pre.Title,
		"artist":     pre.AuthorName,
		"spotify_id": albumID,
		"year":       "",
		"genres":     "",
		"cover_url":  pre.ThumbnailURL,
		"tracks":     "",
		"duration":   "",
		"label":      "",
	}
}

// detailRecord maps the authenticated shape, falling back to the public
// prefill for fields the richer response left empty.
func detailRecord(albumID string, detail spotify.AlbumDetail, pre spotify.Prefill) api.Record {
	artist := detail.Artist
	if artist == "" {
		artist = pre.AuthorName
	}
	cover := detail.CoverURL
	if cover == "" {
		cover = pre.ThumbnailURL
	}

	genres := make([]string, len(detail.Genres))
	copy(genres, detail.Genres)

	return api.Record{
		"title":      detail.Name,
		"artist":     artist,
		"spotify_id": albumID,
		"year":       detail.ReleaseDate,
		"genres":     genres,
		"cover_url":  cover,
		"tracks":     strconv.FormatInt(detail.Tracks, 10),
		"duration":   strconv.FormatInt(detail.DurationMin, 10),
		"label":      detail.Label,
	}
}

// stubRecord is the floor of the cascade: resolution never comes back empty.
func stubRecord(albumID string) api.Record {
	return api.Record{
		"spotify_id": albumID,
		"title":      "",
		"artist":     "",
		"year":       "",
		"genres":     "",
	}
}
