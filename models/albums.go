package models

import (
	"context"
	"net/http"

	"github.com/golang/glog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	e "github.com/microcosm-cc/catalogue/errors"
	h "github.com/microcosm-cc/catalogue/helpers"
)

// GetAlbumByID fetches a single album, cache first
func (c *Catalog) GetAlbumByID(
	ctx context.Context,
	id string,
) (
	Album,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return Album{}, e.Status(err), err
	}

	mcKey := mcIDKey(oid)
	var m Album
	if c.mc.Get(mcKey, &m) {
		return m, http.StatusOK, nil
	}

	err = c.store.Albums.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		glog.Warningf("album not found for id %s", oid.Hex())
		return Album{}, http.StatusNotFound,
			e.New("GetAlbumByID", e.NotFound, "album not found")
	} else if err != nil {
		glog.Errorf("store.Albums.FindOne(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("GetAlbumByID", e.InternalFailure, "store query failed")
	}

	c.mc.Set(mcKey, m, mcNoExpiry)

	return m, http.StatusOK, nil
}

// AllAlbums fetches every album
func (c *Catalog) AllAlbums(ctx context.Context) ([]Album, int, error) {
	var ms []Album
	if c.mc.Get(mcAlbumsKey, &ms) {
		return ms, http.StatusOK, nil
	}

	if err := c.store.Albums.FindMany(ctx, bson.M{}, &ms); err != nil {
		glog.Errorf("store.Albums.FindMany() %+v", err)
		return nil, http.StatusInternalServerError,
			e.New("AllAlbums", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Album{}
	}

	c.mc.Set(mcAlbumsKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// AlbumsByGenre fetches every album of the given genre
func (c *Catalog) AlbumsByGenre(
	ctx context.Context,
	genre string,
) (
	[]Album,
	int,
	error,
) {
	genre, err := CanonicalGenre(genre)
	if err != nil {
		return nil, e.Status(err), err
	}

	mcKey := mcGenreKey(genre)
	var ms []Album
	if c.mc.Get(mcKey, &ms) {
		return ms, http.StatusOK, nil
	}

	if err := c.store.Albums.FindMany(ctx, bson.M{"genre": genre}, &ms); err != nil {
		glog.Errorf("store.Albums.FindMany(%s) %+v", genre, err)
		return nil, http.StatusInternalServerError,
			e.New("AlbumsByGenre", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []Album{}
	}

	c.mc.Set(mcKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// AddAlbum creates an album owned by an existing artist and record company,
// pushing an embedded copy into both owners
func (c *Catalog) AddAlbum(
	ctx context.Context,
	req AddAlbumRequest,
) (
	Album,
	int,
	error,
) {
	if status, err := req.Validate(); err != nil {
		return Album{}, status, err
	}
	artistID, err := h.CheckID(req.ArtistID)
	if err != nil {
		return Album{}, e.Status(err), err
	}
	companyID, err := h.CheckID(req.CompanyID)
	if err != nil {
		return Album{}, e.Status(err), err
	}

	// Both owners must exist before anything is written
	var artist Artist
	err = c.store.Artists.FindOne(ctx, bson.M{"_id": artistID}, &artist)
	if err == h.ErrNoDocument {
		return Album{}, http.StatusBadRequest,
			e.New("AddAlbum", e.InvalidReference,
				"artistId does not resolve to an artist")
	} else if err != nil {
		glog.Errorf("store.Artists.FindOne(%s) %+v", artistID.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("AddAlbum", e.InternalFailure, "store query failed")
	}

	var company RecordCompany
	err = c.store.Companies.FindOne(ctx, bson.M{"_id": companyID}, &company)
	if err == h.ErrNoDocument {
		return Album{}, http.StatusBadRequest,
			e.New("AddAlbum", e.InvalidReference,
				"companyId does not resolve to a record company")
	} else if err != nil {
		glog.Errorf("store.Companies.FindOne(%s) %+v", companyID.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("AddAlbum", e.InternalFailure, "store query failed")
	}

	m := Album{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
		Genre:       req.Genre,
		ArtistID:    artistID,
		CompanyID:   companyID,
		Songs:       []Song{},
	}

	// Embedded copies go to both owners
	err = c.store.Artists.UpdateOne(
		ctx,
		bson.M{"_id": artistID},
		bson.M{"$push": bson.M{"albums": m}},
	)
	if err != nil {
		glog.Errorf("store.Artists.UpdateOne(%s) %+v", artistID.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("AddAlbum", e.InternalFailure, "could not add album")
	}
	err = c.store.Companies.UpdateOne(
		ctx,
		bson.M{"_id": companyID},
		bson.M{"$push": bson.M{"albums": m}},
	)
	if err != nil {
		glog.Errorf("store.Companies.UpdateOne(%s) %+v", companyID.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("AddAlbum", e.InternalFailure, "could not add album")
	}

	if err := c.store.Albums.InsertOne(ctx, m); err != nil {
		glog.Errorf("store.Albums.InsertOne() %+v", err)
		return Album{}, http.StatusInternalServerError,
			e.New("AddAlbum", e.InternalFailure, "could not add album")
	}

	// If either owner is already cached, append the new child into the
	// cached blob and refresh its expiry rather than dropping it
	var cachedArtist Artist
	if c.mc.Get(mcIDKey(artistID), &cachedArtist) {
		cachedArtist.Albums = append(cachedArtist.Albums, m)
		c.mc.Set(mcIDKey(artistID), cachedArtist, mcTTL)
	}
	var cachedCompany RecordCompany
	if c.mc.Get(mcIDKey(companyID), &cachedCompany) {
		cachedCompany.Albums = append(cachedCompany.Albums, m)
		c.mc.Set(mcIDKey(companyID), cachedCompany, mcTTL)
	}

	c.mc.Set(mcIDKey(m.ID), m, mcTTL)

	return m, http.StatusOK, nil
}

// EditAlbum overlays the supplied fields onto the stored document. If an
// owner reference changed, the embedded copy is pulled from every prior
// owner and pushed to the current ones, and all affected point caches are
// invalidated.
func (c *Catalog) EditAlbum(
	ctx context.Context,
	req EditAlbumRequest,
) (
	Album,
	int,
	error,
) {
	oid, err := h.CheckID(req.ID)
	if err != nil {
		return Album{}, e.Status(err), err
	}
	if status, err := req.Validate(); err != nil {
		return Album{}, status, err
	}

	var m Album
	err = c.store.Albums.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return Album{}, http.StatusNotFound,
			e.New("EditAlbum", e.NotFound,
				"could not update album with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Albums.FindOne(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "store query failed")
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.ReleaseDate != nil {
		m.ReleaseDate = *req.ReleaseDate
	}
	if req.Genre != nil {
		m.Genre = *req.Genre
	}
	if req.ArtistID != nil {
		artistID, _ := h.CheckID(*req.ArtistID)
		var artist Artist
		err = c.store.Artists.FindOne(ctx, bson.M{"_id": artistID}, &artist)
		if err == h.ErrNoDocument {
			return Album{}, http.StatusBadRequest,
				e.New("EditAlbum", e.InvalidReference,
					"artistId does not resolve to an artist")
		} else if err != nil {
			glog.Errorf("store.Artists.FindOne(%s) %+v", artistID.Hex(), err)
			return Album{}, http.StatusInternalServerError,
				e.New("EditAlbum", e.InternalFailure, "store query failed")
		}
		m.ArtistID = artistID
	}
	if req.CompanyID != nil {
		companyID, _ := h.CheckID(*req.CompanyID)
		var company RecordCompany
		err = c.store.Companies.FindOne(ctx, bson.M{"_id": companyID}, &company)
		if err == h.ErrNoDocument {
			return Album{}, http.StatusBadRequest,
				e.New("EditAlbum", e.InvalidReference,
					"companyId does not resolve to a record company")
		} else if err != nil {
			glog.Errorf("store.Companies.FindOne(%s) %+v", companyID.Hex(), err)
			return Album{}, http.StatusInternalServerError,
				e.New("EditAlbum", e.InternalFailure, "store query failed")
		}
		m.CompanyID = companyID
	}

	err = c.store.Albums.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": m})
	if err != nil {
		glog.Errorf("store.Albums.UpdateOne(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "update failed")
	}

	c.mc.Delete(mcIDKey(oid))
	c.mc.Set(mcIDKey(oid), m, mcNoExpiry)

	// Re-home the embedded copy: find every prior holder, pull the stale
	// copy, push the refreshed one to the current owners, and invalidate
	// old and new owners alike
	priorArtistIDs, err := c.store.Artists.DistinctIDs(
		ctx, bson.M{"albums._id": oid})
	if err != nil {
		glog.Errorf("store.Artists.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "cascade failed")
	}
	priorCompanyIDs, err := c.store.Companies.DistinctIDs(
		ctx, bson.M{"albums._id": oid})
	if err != nil {
		glog.Errorf("store.Companies.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "cascade failed")
	}

	err = c.store.Artists.UpdateMany(
		ctx,
		bson.M{"albums._id": oid},
		bson.M{"$pull": bson.M{"albums": bson.M{"_id": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Artists.UpdateMany(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "cascade failed")
	}
	err = c.store.Companies.UpdateMany(
		ctx,
		bson.M{"albums._id": oid},
		bson.M{"$pull": bson.M{"albums": bson.M{"_id": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Companies.UpdateMany(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "cascade failed")
	}

	err = c.store.Artists.UpdateOne(
		ctx,
		bson.M{"_id": m.ArtistID},
		bson.M{"$push": bson.M{"albums": m}},
	)
	if err != nil {
		glog.Errorf("store.Artists.UpdateOne(%s) %+v", m.ArtistID.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "cascade failed")
	}
	err = c.store.Companies.UpdateOne(
		ctx,
		bson.M{"_id": m.CompanyID},
		bson.M{"$push": bson.M{"albums": m}},
	)
	if err != nil {
		glog.Errorf("store.Companies.UpdateOne(%s) %+v", m.CompanyID.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("EditAlbum", e.InternalFailure, "cascade failed")
	}

	for _, artistID := range priorArtistIDs {
		c.mc.Delete(mcIDKey(artistID))
	}
	for _, companyID := range priorCompanyIDs {
		c.mc.Delete(mcIDKey(companyID))
	}
	c.mc.Delete(mcIDKey(m.ArtistID))
	c.mc.Delete(mcIDKey(m.CompanyID))

	return m, http.StatusOK, nil
}

// RemoveAlbum deletes an album, pulls its embedded copy from its artist and
// record company, and deletes its songs
func (c *Catalog) RemoveAlbum(
	ctx context.Context,
	id string,
) (
	Album,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return Album{}, e.Status(err), err
	}

	// Locate the holders before the pulls remove the evidence
	artistIDs, err := c.store.Artists.DistinctIDs(ctx, bson.M{"albums._id": oid})
	if err != nil {
		glog.Errorf("store.Artists.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "store query failed")
	}
	companyIDs, err := c.store.Companies.DistinctIDs(ctx, bson.M{"albums._id": oid})
	if err != nil {
		glog.Errorf("store.Companies.DistinctIDs(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "store query failed")
	}

	var m Album
	err = c.store.Albums.FindOneAndDelete(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return Album{}, http.StatusNotFound,
			e.New("RemoveAlbum", e.NotFound,
				"could not delete album with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Albums.FindOneAndDelete(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "delete failed")
	}

	c.mc.Delete(mcIDKey(oid))

	err = c.store.Artists.UpdateMany(
		ctx,
		bson.M{"albums._id": oid},
		bson.M{"$pull": bson.M{"albums": bson.M{"_id": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Artists.UpdateMany(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "cascade failed")
	}
	err = c.store.Companies.UpdateMany(
		ctx,
		bson.M{"albums._id": oid},
		bson.M{"$pull": bson.M{"albums": bson.M{"_id": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Companies.UpdateMany(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "cascade failed")
	}

	// Dependent songs, dropping each point cache
	var songs []Song
	if err := c.store.Songs.FindMany(ctx, bson.M{"albumId": oid}, &songs); err != nil {
		glog.Errorf("store.Songs.FindMany(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "cascade failed")
	}
	if _, err := c.store.Songs.DeleteMany(ctx, bson.M{"albumId": oid}); err != nil {
		glog.Errorf("store.Songs.DeleteMany(%s) %+v", oid.Hex(), err)
		return Album{}, http.StatusInternalServerError,
			e.New("RemoveAlbum", e.InternalFailure, "cascade failed")
	}
	for _, song := range songs {
		c.mc.Delete(mcIDKey(song.ID))
	}
	c.mc.Delete(mcSongsKey(oid))

	for _, artistID := range artistIDs {
		c.mc.Delete(mcIDKey(artistID))
		c.mc.Delete(mcSongsKey(artistID))
	}
	for _, companyID := range companyIDs {
		c.mc.Delete(mcIDKey(companyID))
	}

	c.mc.Delete(mcAlbumsKey)

	return m, http.StatusOK, nil
}
