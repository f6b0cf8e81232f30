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

// GetArtistByID fetches a single artist, cache first
func (c *Catalog) GetArtistByID(
	ctx context.Context,
	id string,
) (
	Artist,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return Artist{}, e.Status(err), err
	}

	// Get from cache if it's available
	mcKey := mcIDKey(oid)
	var m Artist
	if c.mc.Get(mcKey, &m) {
		return m, http.StatusOK, nil
	}

	err = c.store.Artists.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		glog.Warningf("artist not found for id %s", oid.Hex())
		return Artist{}, http.StatusNotFound,
			e.New("GetArtistByID", e.NotFound, "artist not found")
	} else if err != nil {
		glog.Errorf("store.Artists.FindOne(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("GetArtistByID", e.InternalFailure, "store query failed")
	}

	// Update cache. Point lookups live until explicitly invalidated.
	c.mc.Set(mcKey, m, mcNoExpiry)

	return m, http.StatusOK, nil
}

// AllArtists fetches every artist
func (c *Catalog) AllArtists(ctx context.Context) ([]Artist, int, error) {
	var ms []Artist
	if c.mc.Get(mcArtistsKey, &ms) {
		return ms, http.StatusOK, nil
	}

	if err := c.store.Artists.FindMany(ctx, bson.M{}, &ms); err != nil {
		glog.Errorf("store.Artists.FindMany() %+v", err)
		return nil, http.StatusInternalServerError,
			e.New("AllArtists", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Artist{}
	}

	c.mc.Set(mcArtistsKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// SearchArtistsByName fetches every artist whose name contains the term,
// case-insensitively
func (c *Catalog) SearchArtistsByName(
	ctx context.Context,
	term string,
) (
	[]Artist,
	int,
	error,
) {
	term, err := h.NormaliseSearchTerm(term)
	if err != nil {
		return nil, e.Status(err), err
	}

	mcKey := mcArtistSearchKey(term)
	var ms []Artist
	if c.mc.Get(mcKey, &ms) {
		return ms, http.StatusOK, nil
	}

	filter := bson.M{
		"name": primitive.Regex{
			Pattern: regexp.QuoteMeta(term),
			Options: "i",
		},
	}
	if err := c.store.Artists.FindMany(ctx, filter, &ms); err != nil {
		glog.Errorf("store.Artists.FindMany(%s) %+v", term, err)
		return nil, http.StatusInternalServerError,
			e.New("SearchArtistsByName", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Artist{}
	}

	c.mc.Set(mcKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// NumOfAlbumsByArtist derives the album count by query, never from the
// embedded list
func (c *Catalog) NumOfAlbumsByArtist(
	ctx context.Context,
	artistID primitive.ObjectID,
) (
	int64,
	int,
	error,
) {
	n, err := c.store.Albums.Count(ctx, bson.M{"artistId": artistID})
	if err != nil {
		glog.Errorf("store.Albums.Count(%s) %+v", artistID.Hex(), err)
		return 0, http.StatusInternalServerError,
			e.New("NumOfAlbumsByArtist", e.InternalFailure, "store query failed")
	}
	return n, http.StatusOK, nil
}

// AddArtist creates an artist with an empty embedded album list
func (c *Catalog) AddArtist(
	ctx context.Context,
	req AddArtistRequest,
) (
	Artist,
	int,
	error,
) {
	if status, err := req.Validate(); err != nil {
		return Artist{}, status, err
	}

	m := Artist{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		DateFormed: req.DateFormed,
		Members:    req.Members,
		Albums:     []Album{},
	}

	if err := c.store.Artists.InsertOne(ctx, m); err != nil {
		glog.Errorf("store.Artists.InsertOne() %+v", err)
		return Artist{}, http.StatusInternalServerError,
			e.New("AddArtist", e.InternalFailure, "could not add artist")
	}

	// Fresh entry for the new artist's own id
	c.mc.Set(mcIDKey(m.ID), m, mcTTL)

	return m, http.StatusOK, nil
}

// EditArtist overlays the supplied fields onto the stored document and
// refreshes the point cache with the merged result
func (c *Catalog) EditArtist(
	ctx context.Context,
	req EditArtistRequest,
) (
	Artist,
	int,
	error,
) {
	oid, err := h.CheckID(req.ID)
	if err != nil {
		return Artist{}, e.Status(err), err
	}
	if status, err := req.Validate(); err != nil {
		return Artist{}, status, err
	}

	var m Artist
	err = c.store.Artists.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return Artist{}, http.StatusNotFound,
			e.New("EditArtist", e.NotFound,
				"could not update artist with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Artists.FindOne(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("EditArtist", e.InternalFailure, "store query failed")
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.DateFormed != nil {
		m.DateFormed = *req.DateFormed
	}
	if req.Members != nil {
		m.Members = *req.Members
	}

	err = c.store.Artists.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": m})
	if err != nil {
		glog.Errorf("store.Artists.UpdateOne(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("EditArtist", e.InternalFailure, "update failed")
	}

	// Invalidate, then refresh with the merged document so the next read
	// can never observe the pre-edit state
	c.mc.Delete(mcIDKey(oid))
	c.mc.Set(mcIDKey(oid), m, mcNoExpiry)

	return m, http.StatusOK, nil
}

// RemoveArtist deletes an artist and cascades: its albums are deleted, each
// deleted album's songs are deleted, and the embedded album copies are
// pulled out of every record company that held them. Every step is safe to
// re-run if its target is already absent.
func (c *Catalog) RemoveArtist(
	ctx context.Context,
	id string,
) (
	Artist,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return Artist{}, e.Status(err), err
	}

	var m Artist
	err = c.store.Artists.FindOneAndDelete(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return Artist{}, http.StatusNotFound,
			e.New("RemoveArtist", e.NotFound,
				"could not delete artist with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Artists.FindOneAndDelete(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("RemoveArtist", e.InternalFailure, "delete failed")
	}

	c.mc.Delete(mcIDKey(oid))

	// Directly dependent children first: the artist's albums, then each
	// album's songs, dropping the point caches as we go
	var albums []Album
	if err := c.store.Albums.FindMany(ctx, bson.M{"artistId": oid}, &albums); err != nil {
		glog.Errorf("store.Albums.FindMany(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("RemoveArtist", e.InternalFailure, "cascade failed")
	}
	if _, err := c.store.Albums.DeleteMany(ctx, bson.M{"artistId": oid}); err != nil {
		glog.Errorf("store.Albums.DeleteMany(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("RemoveArtist", e.InternalFailure, "cascade failed")
	}
	for _, album := range albums {
		if _, err := c.store.Songs.DeleteMany(ctx, bson.M{"albumId": album.ID}); err != nil {
			glog.Errorf("store.Songs.DeleteMany(%s) %+v", album.ID.Hex(), err)
			return Artist{}, http.StatusInternalServerError,
				e.New("RemoveArtist", e.InternalFailure, "cascade failed")
		}
		// Point entries are stored without expiry, so each deleted song's
		// entry has to go explicitly
		for _, song := range album.Songs {
			c.mc.Delete(mcIDKey(song.ID))
		}
		c.mc.Delete(mcIDKey(album.ID))
		c.mc.Delete(mcSongsKey(album.ID))
	}
	c.mc.Delete(mcSongsKey(oid))

	// Pull the embedded album copies out of every company that held them.
	// The distinct pass runs first so we know whose point caches to drop.
	companyIDs, err := c.store.Companies.DistinctIDs(
		ctx, bson.M{"albums.artistId": oid})
	if err != nil {
		glog.Errorf("store.Companies.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("RemoveArtist", e.InternalFailure, "cascade failed")
	}
	err = c.store.Companies.UpdateMany(
		ctx,
		bson.M{"albums.artistId": oid},
		bson.M{"$pull": bson.M{"albums": bson.M{"artistId": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Companies.UpdateMany(%s) %+v", oid.Hex(), err)
		return Artist{}, http.StatusInternalServerError,
			e.New("RemoveArtist", e.InternalFailure, "cascade failed")
	}
	for _, companyID := range companyIDs {
		c.mc.Delete(mcIDKey(companyID))
	}

	c.mc.Delete(mcArtistsKey)
	c.mc.Delete(mcAlbumsKey)
	c.mc.Delete(mcCompaniesKey)

	return m, http.StatusOK, nil
}
