package api

import (
	"fmt"
	"strings"
)

// Reserved record keys: routing/control data, never rendered as form fields.
const (
	KeyID         = "_id"
	KeyCollection = "collection"
)

// Membership names the catalog collection an album currently lives in.
// The empty value means the album is not tracked yet.
type Membership string

const (
	MembershipUnset      Membership = ""
	CollectionAlbums     Membership = "albums"
	CollectionPendientes Membership = "pendientes"
)

// Collections the overlay offers as move/create targets.
var KnownCollections = []Membership{MembershipUnset, CollectionAlbums, CollectionPendientes}

// Record is an album as the catalog returns it: an open field set with no
// fixed schema. Values are strings or string lists, but anything the service
// sends is tolerated and coerced on access.
type Record map[string]any

// String returns the named field coerced to a string ("" when absent).
func (r Record) String(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ID returns the catalog identity key, empty for unsaved records.
func (r Record) ID() string {
	return r.String(KeyID)
}

// Collection returns the membership recorded on the record itself.
func (r Record) Collection() Membership {
	return Membership(r.String(KeyCollection))
}

// Submission is the flat field→string payload sent on create and update.
type Submission map[string]string

// FindResult is the catalog lookup response for one spotify id.
type FindResult struct {
	Collection Membership `json:"collection"`
	Album      Record     `json:"album"`
}

// MoveInput is the body of the move endpoint.
type MoveInput struct {
	OriginCollection string `json:"origin_collection"`
	DestCollection   string `json:"dest_collection"`
	AlbumID          string `json:"album_id"`
}
