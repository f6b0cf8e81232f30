package models

import (
	"context"
	"net/http"
	"regexp"

	"github.com/golang/glog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	e "github.com/microcosm-cc/catalogue/errors"
	h "github.com/microcosm-cc/catalogue/helpers"
)

// GetSongByID fetches a single song, cache first
func (c *Catalog) GetSongByID(
	ctx context.Context,
	id string,
) (
	Song,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return Song{}, e.Status(err), err
	}

	mcKey := mcIDKey(oid)
	var m Song
	if c.mc.Get(mcKey, &m) {
		return m, http.StatusOK, nil
	}

	err = c.store.Songs.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		glog.Warningf("song not found for id %s", oid.Hex())
		return Song{}, http.StatusNotFound,
			e.New("GetSongByID", e.NotFound, "song not found")
	} else if err != nil {
		glog.Errorf("store.Songs.FindOne(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("GetSongByID", e.InternalFailure, "store query failed")
	}

	c.mc.Set(mcKey, m, mcNoExpiry)

	return m, http.StatusOK, nil
}

// SongsByAlbumID fetches every song on the given album
func (c *Catalog) SongsByAlbumID(
	ctx context.Context,
	albumID string,
) (
	[]Song,
	int,
	error,
) {
	oid, err := h.CheckID(albumID)
	if err != nil {
		return nil, e.Status(err), err
	}

	mcKey := mcSongsKey(oid)
	var ms []Song
	if c.mc.Get(mcKey, &ms) {
		return ms, http.StatusOK, nil
	}

	// The album must exist for the listing to mean anything
	var album Album
	err = c.store.Albums.FindOne(ctx, bson.M{"_id": oid}, &album)
	if err == h.ErrNoDocument {
		return nil, http.StatusNotFound,
			e.New("SongsByAlbumID", e.NotFound, "album not found")
	} else if err != nil {
		glog.Errorf("store.Albums.FindOne(%s) %+v", oid.Hex(), err)
		return nil, http.StatusInternalServerError,
			e.New("SongsByAlbumID", e.InternalFailure, "store query failed")
	}

	if err := c.store.Songs.FindMany(ctx, bson.M{"albumId": oid}, &ms); err != nil {
		glog.Errorf("store.Songs.FindMany(%s) %+v", oid.Hex(), err)
		return nil, http.StatusInternalServerError,
			e.New("SongsByAlbumID", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Song{}
	}

	c.mc.Set(mcKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// SongsByArtistID fetches every song on every album by the given artist
func (c *Catalog) SongsByArtistID(
	ctx context.Context,
	artistID string,
) (
	[]Song,
	int,
	error,
) {
	oid, err := h.CheckID(artistID)
	if err != nil {
		return nil, e.Status(err), err
	}

	mcKey := mcSongsKey(oid)
	var ms []Song
	if c.mc.Get(mcKey, &ms) {
		return ms, http.StatusOK, nil
	}

	var artist Artist
	err = c.store.Artists.FindOne(ctx, bson.M{"_id": oid}, &artist)
	if err == h.ErrNoDocument {
		return nil, http.StatusNotFound,
			e.New("SongsByArtistID", e.NotFound, "artist not found")
	} else if err != nil {
		glog.Errorf("store.Artists.FindOne(%s) %+v", oid.Hex(), err)
		return nil, http.StatusInternalServerError,
			e.New("SongsByArtistID", e.InternalFailure, "store query failed")
	}

	var albums []Album
	if err := c.store.Albums.FindMany(ctx, bson.M{"artistId": oid}, &albums); err != nil {
		glog.Errorf("store.Albums.FindMany(%s) %+v", oid.Hex(), err)
		return nil, http.StatusInternalServerError,
			e.New("SongsByArtistID", e.InternalFailure, "store query failed")
	}

	albumIDs := make([]primitive.ObjectID, 0, len(albums))
	for _, album := range albums {
		albumIDs = append(albumIDs, album.ID)
	}

	err = c.store.Songs.FindMany(
		ctx, bson.M{"albumId": bson.M{"$in": albumIDs}}, &ms)
	if err != nil {
		glog.Errorf("store.Songs.FindMany(%s) %+v", oid.Hex(), err)
		return nil, http.StatusInternalServerError,
			e.New("SongsByArtistID", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Song{}
	}

	c.mc.Set(mcKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// SearchSongsByTitle fetches every song whose title contains the term,
// case-insensitively
func (c *Catalog) SearchSongsByTitle(
	ctx context.Context,
	term string,
) (
	[]Song,
	int,
	error,
) {
	term, err := h.NormaliseSearchTerm(term)
	if err != nil {
		return nil, e.Status(err), err
	}

	mcKey := mcSongSearchKey(term)
	var ms []Song
	if c.mc.Get(mcKey, &ms) {
		return ms, http.StatusOK, nil
	}

	filter := bson.M{
		"title": primitive.Regex{
			Pattern: regexp.QuoteMeta(term),
			Options: "i",
		},
	}
	if err := c.store.Songs.FindMany(ctx, filter, &ms); err != nil {
		glog.Errorf("store.Songs.FindMany(%s) %+v", term, err)
		return nil, http.StatusInternalServerError,
			e.New("SearchSongsByTitle", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Song{}
	}

	c.mc.Set(mcKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// AddSong creates a song under an existing album, pushing an embedded copy
// into the album
func (c *Catalog) AddSong(
	ctx context.Context,
	req AddSongRequest,
) (
	Song,
	int,
	error,
) {
	if status, err := req.Validate(); err != nil {
		return Song{}, status, err
	}
	albumID, err := h.CheckID(req.AlbumID)
	if err != nil {
		return Song{}, e.Status(err), err
	}

	var album Album
	err = c.store.Albums.FindOne(ctx, bson.M{"_id": albumID}, &album)
	if err == h.ErrNoDocument {
		return Song{}, http.StatusBadRequest,
			e.New("AddSong", e.InvalidReference,
				"albumId does not resolve to an album")
	} else if err != nil {
		glog.Errorf("store.Albums.FindOne(%s) %+v", albumID.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("AddSong", e.InternalFailure, "store query failed")
	}

	m := Song{
		ID:       primitive.NewObjectID(),
		Title:    req.Title,
		Duration: req.Duration,
		AlbumID:  albumID,
	}

	err = c.store.Albums.UpdateOne(
		ctx,
		bson.M{"_id": albumID},
		bson.M{"$push": bson.M{"songs": m}},
	)
	if err != nil {
		glog.Errorf("store.Albums.UpdateOne(%s) %+v", albumID.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("AddSong", e.InternalFailure, "could not add song")
	}

	if err := c.store.Songs.InsertOne(ctx, m); err != nil {
		glog.Errorf("store.Songs.InsertOne() %+v", err)
		return Song{}, http.StatusInternalServerError,
			e.New("AddSong", e.InternalFailure, "could not add song")
	}

	// If the album is already cached, append the new child into the cached
	// blob and refresh its expiry
	var cachedAlbum Album
	if c.mc.Get(mcIDKey(albumID), &cachedAlbum) {
		cachedAlbum.Songs = append(cachedAlbum.Songs, m)
		c.mc.Set(mcIDKey(albumID), cachedAlbum, mcTTL)
	}

	c.mc.Set(mcIDKey(m.ID), m, mcTTL)

	return m, http.StatusOK, nil
}

// EditSong overlays the supplied fields onto the stored document. If the
// album reference changed, the embedded copy is re-homed and the affected
// albums' caches invalidated.
func (c *Catalog) EditSong(
	ctx context.Context,
	req EditSongRequest,
) (
	Song,
	int,
	error,
) {
	oid, err := h.CheckID(req.ID)
	if err != nil {
		return Song{}, e.Status(err), err
	}
	if status, err := req.Validate(); err != nil {
		return Song{}, status, err
	}

	var m Song
	err = c.store.Songs.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return Song{}, http.StatusNotFound,
			e.New("EditSong", e.NotFound,
				"could not update song with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Songs.FindOne(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("EditSong", e.InternalFailure, "store query failed")
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.AlbumID != nil {
		albumID, _ := h.CheckID(*req.AlbumID)
		var album Album
		err = c.store.Albums.FindOne(ctx, bson.M{"_id": albumID}, &album)
		if err == h.ErrNoDocument {
			return Song{}, http.StatusBadRequest,
				e.New("EditSong", e.InvalidReference,
					"albumId does not resolve to an album")
		} else if err != nil {
			glog.Errorf("store.Albums.FindOne(%s) %+v", albumID.Hex(), err)
			return Song{}, http.StatusInternalServerError,
				e.New("EditSong", e.InternalFailure, "store query failed")
		}
		m.AlbumID = albumID
	}

	err = c.store.Songs.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": m})
	if err != nil {
		glog.Errorf("store.Songs.UpdateOne(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("EditSong", e.InternalFailure, "update failed")
	}

	c.mc.Delete(mcIDKey(oid))
	c.mc.Set(mcIDKey(oid), m, mcNoExpiry)

	// Re-home the embedded copy
	priorAlbumIDs, err := c.store.Albums.DistinctIDs(ctx, bson.M{"songs._id": oid})
	if err != nil {
		glog.Errorf("store.Albums.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("EditSong", e.InternalFailure, "cascade failed")
	}

	err = c.store.Albums.UpdateMany(
		ctx,
		bson.M{"songs._id": oid},
		bson.M{"$pull": bson.M{"songs": bson.M{"_id": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Albums.UpdateMany(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("EditSong", e.InternalFailure, "cascade failed")
	}

	err = c.store.Albums.UpdateOne(
		ctx,
		bson.M{"_id": m.AlbumID},
		bson.M{"$push": bson.M{"songs": m}},
	)
	if err != nil {
		glog.Errorf("store.Albums.UpdateOne(%s) %+v", m.AlbumID.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("EditSong", e.InternalFailure, "cascade failed")
	}

	for _, albumID := range priorAlbumIDs {
		c.mc.Delete(mcIDKey(albumID))
		c.mc.Delete(mcSongsKey(albumID))
	}
	c.mc.Delete(mcIDKey(m.AlbumID))
	c.mc.Delete(mcSongsKey(m.AlbumID))

	// The owning artists' derived song listings are stale too. Best effort,
	// an album that vanished mid-flight just leaves its listing to the TTL.
	for _, albumID := range append(priorAlbumIDs, m.AlbumID) {
		var album Album
		if err := c.store.Albums.FindOne(ctx, bson.M{"_id": albumID}, &album); err == nil {
			c.mc.Delete(mcSongsKey(album.ArtistID))
		}
	}

	return m, http.StatusOK, nil
}

// RemoveSong deletes a song and pulls its embedded copy from its owning
// album
func (c *Catalog) RemoveSong(
	ctx context.Context,
	id string,
) (
	Song,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return Song{}, e.Status(err), err
	}

	// Locate the holders before the pull removes the evidence
	albumIDs, err := c.store.Albums.DistinctIDs(ctx, bson.M{"songs._id": oid})
	if err != nil {
		glog.Errorf("store.Albums.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("RemoveSong", e.InternalFailure, "store query failed")
	}

	var m Song
	err = c.store.Songs.FindOneAndDelete(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return Song{}, http.StatusNotFound,
			e.New("RemoveSong", e.NotFound,
				"could not delete song with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Songs.FindOneAndDelete(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("RemoveSong", e.InternalFailure, "delete failed")
	}

	c.mc.Delete(mcIDKey(oid))

	err = c.store.Albums.UpdateMany(
		ctx,
		bson.M{"songs._id": oid},
		bson.M{"$pull": bson.M{"songs": bson.M{"_id": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Albums.UpdateMany(%s) %+v", oid.Hex(), err)
		return Song{}, http.StatusInternalServerError,
			e.New("RemoveSong", e.InternalFailure, "cascade failed")
	}

	for _, albumID := range albumIDs {
		c.mc.Delete(mcIDKey(albumID))
		c.mc.Delete(mcSongsKey(albumID))
	}

	// The owning artist's derived song listing is stale too. Best effort,
	// if the album is gone its listing is left to the TTL.
	var album Album
	if err := c.store.Albums.FindOne(ctx, bson.M{"_id": m.AlbumID}, &album); err == nil {
		c.mc.Delete(mcSongsKey(album.ArtistID))
	}

	return m, http.StatusOK, nil
}
