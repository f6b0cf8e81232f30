package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// This file contains the cache keyspace for the catalogue. Point lookups are
// keyed by the raw hex id and stored without expiry; derived and aggregate
// results are keyed per query shape and carry a one hour time-to-live.

// Fixed literal keys for the "list all" queries
const (
	mcArtistsKey   = "Artists"
	mcAlbumsKey    = "Albums"
	mcCompaniesKey = "Record Companies"
)

// mcTTL is the expiry on derived and freshly created entries, in seconds
const mcTTL int32 = 60 * 60 // 1 hour

// mcNoExpiry marks point-lookup entries that live until invalidated
const mcNoExpiry int32 = 0

// mcIDKey is the point-lookup key for any entity
func mcIDKey(id primitive.ObjectID) string {
	return id.Hex()
}

// mcSongsKey keys the derived song listings. The id may be an album id or an
// artist id, the two cannot collide as ids are unique across collections.
func mcSongsKey(id primitive.ObjectID) string {
	return fmt.Sprintf("songs: %s", id.Hex())
}

// mcGenreKey keys the albums-by-genre listing by the canonical genre
func mcGenreKey(genre string) string {
	return genre
}

// mcFoundedKey keys the companies-by-founded-year-range listing
func mcFoundedKey(min int, max int) string {
	return fmt.Sprintf("%d:%d", min, max)
}

// Search keys are namespaced per query type. Song-title search and
// artist-name search previously shared the bare normalised term as their key
// and could serve each other wrong-typed results.
func mcArtistSearchKey(term string) string {
	return "search:artists:" + term
}

func mcSongSearchKey(term string) string {
	return "search:songs:" + term
}
