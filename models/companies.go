package models

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	e "github.com/microcosm-cc/catalogue/errors"
	h "github.com/microcosm-cc/catalogue/helpers"
)

// Bounds on the founded-year range query. The upper bound predates the
// entity field's own and is carried as-is.
const (
	foundedQueryMin = 1900
	foundedQueryMax = 2024
)

// GetCompanyByID fetches a single record company, cache first
func (c *Catalog) GetCompanyByID(
	ctx context.Context,
	id string,
) (
	RecordCompany,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return RecordCompany{}, e.Status(err), err
	}

	mcKey := mcIDKey(oid)
	var m RecordCompany
	if c.mc.Get(mcKey, &m) {
		return m, http.StatusOK, nil
	}

	err = c.store.Companies.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		glog.Warningf("record company not found for id %s", oid.Hex())
		return RecordCompany{}, http.StatusNotFound,
			e.New("GetCompanyByID", e.NotFound, "record company not found")
	} else if err != nil {
		glog.Errorf("store.Companies.FindOne(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("GetCompanyByID", e.InternalFailure, "store query failed")
	}

	c.mc.Set(mcKey, m, mcNoExpiry)

	return m, http.StatusOK, nil
}

// AllCompanies fetches every record company
func (c *Catalog) AllCompanies(
	ctx context.Context,
) (
	[]RecordCompany,
	int,
	error,
) {
	var ms []RecordCompany
	if c.mc.Get(mcCompaniesKey, &ms) {
		return ms, http.StatusOK, nil
	}

	if err := c.store.Companies.FindMany(ctx, bson.M{}, &ms); err != nil {
		glog.Errorf("store.Companies.FindMany() %+v", err)
		return nil, http.StatusInternalServerError,
			e.New("AllCompanies", e.InternalFailure, "store query failed")
	}
	if ms == nil {
		ms = []RecordCompany{}
	}

	c.mc.Set(mcCompaniesKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// CompaniesByFoundedYear fetches every record company founded within the
// inclusive year range
func (c *Catalog) CompaniesByFoundedYear(
	ctx context.Context,
	min int,
	max int,
) (
	[]RecordCompany,
	int,
	error,
) {
	if min < foundedQueryMin {
		err := e.New("CompaniesByFoundedYear", e.ValidationError,
			fmt.Sprintf("min must be %d or later", foundedQueryMin))
		return nil, e.Status(err), err
	}
	if max <= min {
		err := e.New("CompaniesByFoundedYear", e.ValidationError,
			"max must be greater than min")
		return nil, e.Status(err), err
	}
	if max > foundedQueryMax {
		err := e.New("CompaniesByFoundedYear", e.ValidationError,
			fmt.Sprintf("max must be %d or earlier", foundedQueryMax))
		return nil, e.Status(err), err
	}

	mcKey := mcFoundedKey(min, max)
	var ms []RecordCompany
	if c.mc.Get(mcKey, &ms) {
		return ms, http.StatusOK, nil
	}

	filter := bson.M{"foundedYear": bson.M{"$gte": min, "$lte": max}}
	if err := c.store.Companies.FindMany(ctx, filter, &ms); err != nil {
		glog.Errorf("store.Companies.FindMany(%d:%d) %+v", min, max, err)
		return nil, http.StatusInternalServerError,
			e.New("CompaniesByFoundedYear", e.InternalFailure,
				"store query failed")
	}
	if ms == nil {
		ms = []RecordCompany{}
	}

	c.mc.Set(mcKey, ms, mcTTL)

	return ms, http.StatusOK, nil
}

// NumOfAlbumsByCompany derives the album count by query
func (c *Catalog) NumOfAlbumsByCompany(
	ctx context.Context,
	companyID primitive.ObjectID,
) (
	int64,
	int,
	error,
) {
	n, err := c.store.Albums.Count(ctx, bson.M{"recordCompanyId": companyID})
	if err != nil {
		glog.Errorf("store.Albums.Count(%s) %+v", companyID.Hex(), err)
		return 0, http.StatusInternalServerError,
			e.New("NumOfAlbumsByCompany", e.InternalFailure,
				"store query failed")
	}
	return n, http.StatusOK, nil
}

// AddCompany creates a record company with an empty embedded album list
func (c *Catalog) AddCompany(
	ctx context.Context,
	req AddCompanyRequest,
) (
	RecordCompany,
	int,
	error,
) {
	if status, err := req.Validate(); err != nil {
		return RecordCompany{}, status, err
	}

	m := RecordCompany{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		FoundedYear: req.FoundedYear,
		Country:     req.Country,
		Albums:      []Album{},
	}

	if err := c.store.Companies.InsertOne(ctx, m); err != nil {
		glog.Errorf("store.Companies.InsertOne() %+v", err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("AddCompany", e.InternalFailure, "could not add company")
	}

	c.mc.Set(mcIDKey(m.ID), m, mcTTL)

	return m, http.StatusOK, nil
}

// EditCompany overlays the supplied fields onto the stored document and
// refreshes the point cache with the merged result
func (c *Catalog) EditCompany(
	ctx context.Context,
	req EditCompanyRequest,
) (
	RecordCompany,
	int,
	error,
) {
	oid, err := h.CheckID(req.ID)
	if err != nil {
		return RecordCompany{}, e.Status(err), err
	}
	if status, err := req.Validate(); err != nil {
		return RecordCompany{}, status, err
	}

	var m RecordCompany
	err = c.store.Companies.FindOne(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return RecordCompany{}, http.StatusNotFound,
			e.New("EditCompany", e.NotFound,
				"could not update company with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Companies.FindOne(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("EditCompany", e.InternalFailure, "store query failed")
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.FoundedYear != nil {
		m.FoundedYear = *req.FoundedYear
	}
	if req.Country != nil {
		m.Country = *req.Country
	}

	err = c.store.Companies.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": m})
	if err != nil {
		glog.Errorf("store.Companies.UpdateOne(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("EditCompany", e.InternalFailure, "update failed")
	}

	c.mc.Delete(mcIDKey(oid))
	c.mc.Set(mcIDKey(oid), m, mcNoExpiry)

	return m, http.StatusOK, nil
}

// RemoveCompany deletes a record company and cascades symmetrically to
// RemoveArtist: its albums are deleted, their songs are deleted, and the
// embedded album copies are pulled out of every artist that held them
func (c *Catalog) RemoveCompany(
	ctx context.Context,
	id string,
) (
	RecordCompany,
	int,
	error,
) {
	oid, err := h.CheckID(id)
	if err != nil {
		return RecordCompany{}, e.Status(err), err
	}

	var m RecordCompany
	err = c.store.Companies.FindOneAndDelete(ctx, bson.M{"_id": oid}, &m)
	if err == h.ErrNoDocument {
		return RecordCompany{}, http.StatusNotFound,
			e.New("RemoveCompany", e.NotFound,
				"could not delete company with id "+oid.Hex())
	} else if err != nil {
		glog.Errorf("store.Companies.FindOneAndDelete(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("RemoveCompany", e.InternalFailure, "delete failed")
	}

	c.mc.Delete(mcIDKey(oid))

	var albums []Album
	if err := c.store.Albums.FindMany(ctx, bson.M{"recordCompanyId": oid}, &albums); err != nil {
		glog.Errorf("store.Albums.FindMany(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("RemoveCompany", e.InternalFailure, "cascade failed")
	}
	if _, err := c.store.Albums.DeleteMany(ctx, bson.M{"recordCompanyId": oid}); err != nil {
		glog.Errorf("store.Albums.DeleteMany(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("RemoveCompany", e.InternalFailure, "cascade failed")
	}
	for _, album := range albums {
		if _, err := c.store.Songs.DeleteMany(ctx, bson.M{"albumId": album.ID}); err != nil {
			glog.Errorf("store.Songs.DeleteMany(%s) %+v", album.ID.Hex(), err)
			return RecordCompany{}, http.StatusInternalServerError,
				e.New("RemoveCompany", e.InternalFailure, "cascade failed")
		}
		// Point entries are stored without expiry, so each deleted song's
		// entry has to go explicitly
		for _, song := range album.Songs {
			c.mc.Delete(mcIDKey(song.ID))
		}
		c.mc.Delete(mcIDKey(album.ID))
		c.mc.Delete(mcSongsKey(album.ID))
	}

	artistIDs, err := c.store.Artists.DistinctIDs(
		ctx, bson.M{"albums.recordCompanyId": oid})
	if err != nil {
		glog.Errorf("store.Artists.DistinctIDs(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("RemoveCompany", e.InternalFailure, "cascade failed")
	}
	err = c.store.Artists.UpdateMany(
		ctx,
		bson.M{"albums.recordCompanyId": oid},
		bson.M{"$pull": bson.M{"albums": bson.M{"recordCompanyId": oid}}},
	)
	if err != nil {
		glog.Errorf("store.Artists.UpdateMany(%s) %+v", oid.Hex(), err)
		return RecordCompany{}, http.StatusInternalServerError,
			e.New("RemoveCompany", e.InternalFailure, "cascade failed")
	}
	for _, artistID := range artistIDs {
		c.mc.Delete(mcIDKey(artistID))
		c.mc.Delete(mcSongsKey(artistID))
	}

	c.mc.Delete(mcCompaniesKey)
	c.mc.Delete(mcAlbumsKey)
	c.mc.Delete(mcArtistsKey)

	return m, http.StatusOK, nil
}
