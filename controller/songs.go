package controller

import (
	"net/http"

	"github.com/microcosm-cc/catalogue/audit"
	"github.com/microcosm-cc/catalogue/models"
)

// SongsController handles the song collection
type SongsController struct {
	catalog *models.Catalog
}

// SongsHandler routes requests for /api/v1/songs
func SongsHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := SongsController{catalog: catalog}

		switch c.GetHTTPMethod() {
		case http.MethodPost:
			ctl.Create(c)
		default:
			c.RespondWithNotImplemented()
		}
	}
}

// Create adds a song under an album
func (ctl *SongsController) Create(c *Context) {
	var req models.AddSongRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}

	m, status, err := ctl.catalog.AddSong(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Create("song", m.ID.Hex())
	c.RespondWithData(m)
}

// SongSearchHandler routes requests for /api/v1/songs/search/{term}
func SongSearchHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)

		if c.GetHTTPMethod() != http.MethodGet {
			c.RespondWithNotImplemented()
			return
		}

		ms, status, err := catalog.SearchSongsByTitle(
			c.Request.Context(), c.RouteVars["term"])
		if err != nil {
			c.RespondWithErrorDetail(err, status)
			return
		}

		c.RespondWithData(ms)
	}
}

// SongController handles a single song
type SongController struct {
	catalog *models.Catalog
}

// SongHandler routes requests for /api/v1/songs/{song_id}
func SongHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := SongController{catalog: catalog}

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

// Read fetches one song
func (ctl *SongController) Read(c *Context) {
	m, status, err := ctl.catalog.GetSongByID(
		c.Request.Context(), c.RouteVars["song_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(m)
}

// Update edits the supplied fields of one song, re-homing its embedded copy
// if the album reference changed
func (ctl *SongController) Update(c *Context) {
	var req models.EditSongRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}
	req.ID = c.RouteVars["song_id"]

	m, status, err := ctl.catalog.EditSong(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Update("song", m.ID.Hex())
	c.RespondWithData(m)
}

// Delete removes one song
func (ctl *SongController) Delete(c *Context) {
	m, status, err := ctl.catalog.RemoveSong(
		c.Request.Context(), c.RouteVars["song_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Delete("song", m.ID.Hex())
	c.RespondWithData(m)
}
