package controller

import (
	"net/http"

	"github.com/microcosm-cc/catalogue/audit"
	"github.com/microcosm-cc/catalogue/models"
)

// AlbumsController handles the album collection
type AlbumsController struct {
	catalog *models.Catalog
}

// AlbumsHandler routes requests for /api/v1/albums
func AlbumsHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := AlbumsController{catalog: catalog}

		switch c.GetHTTPMethod() {
		case http.MethodGet:
			ctl.ReadMany(c)
		case http.MethodPost:
			ctl.Create(c)
		default:
			c.RespondWithNotImplemented()
		}
	}
}

// ReadMany lists every album
func (ctl *AlbumsController) ReadMany(c *Context) {
	ms, status, err := ctl.catalog.AllAlbums(c.Request.Context())
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(ms)
}

// Create adds an album under an artist and a record company
func (ctl *AlbumsController) Create(c *Context) {
	var req models.AddAlbumRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}

	m, status, err := ctl.catalog.AddAlbum(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Create("album", m.ID.Hex())
	c.RespondWithData(m)
}

// AlbumsByGenreHandler routes requests for /api/v1/albums/genre/{genre}
func AlbumsByGenreHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)

		if c.GetHTTPMethod() != http.MethodGet {
			c.RespondWithNotImplemented()
			return
		}

		ms, status, err := catalog.AlbumsByGenre(
			c.Request.Context(), c.RouteVars["genre"])
		if err != nil {
			c.RespondWithErrorDetail(err, status)
			return
		}

		c.RespondWithData(ms)
	}
}

// AlbumController handles a single album
type AlbumController struct {
	catalog *models.Catalog
}

// AlbumHandler routes requests for /api/v1/albums/{album_id}
func AlbumHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := AlbumController{catalog: catalog}

		switch c.GetHTTPMethod() {
		case http.MethodGet:
			ctl.Read(c)
		case http.MethodPut:
			ctl.Update(c)
		case http.MethodDelete:
			ctl.Delete(c)
		default:
			c.RespondWithNotImplemented()
		}
	}
}

// Read fetches one album
func (ctl *AlbumController) Read(c *Context) {
	m, status, err := ctl.catalog.GetAlbumByID(
		c.Request.Context(), c.RouteVars["album_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(m)
}

// Update edits the supplied fields of one album, re-homing its embedded
// copies if an owner reference changed
func (ctl *AlbumController) Update(c *Context) {
	var req models.EditAlbumRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}
	req.ID = c.RouteVars["album_id"]

	m, status, err := ctl.catalog.EditAlbum(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Update("album", m.ID.Hex())
	c.RespondWithData(m)
}

// Delete removes one album, cascading to its songs
func (ctl *AlbumController) Delete(c *Context) {
	m, status, err := ctl.catalog.RemoveAlbum(
		c.Request.Context(), c.RouteVars["album_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Delete("album", m.ID.Hex())
	c.RespondWithData(m)
}

// AlbumSongsHandler routes requests for /api/v1/albums/{album_id}/songs
func AlbumSongsHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)

		if c.GetHTTPMethod() != http.MethodGet {
			c.RespondWithNotImplemented()
			return
		}

		ms, status, err := catalog.SongsByAlbumID(
			c.Request.Context(), c.RouteVars["album_id"])
		if err != nil {
			c.RespondWithErrorDetail(err, status)
			return
		}

		c.RespondWithData(ms)
	}
}
