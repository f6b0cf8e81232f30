package controller

import (
	"net/http"

	"github.com/microcosm-cc/catalogue/audit"
	"github.com/microcosm-cc/catalogue/models"
)

// ArtistsController handles the artist collection
type ArtistsController struct {
	catalog *models.Catalog
}

// ArtistsHandler routes requests for /api/v1/artists
func ArtistsHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := ArtistsController{catalog: catalog}

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

// ReadMany lists every artist
func (ctl *ArtistsController) ReadMany(c *Context) {
	ms, status, err := ctl.catalog.AllArtists(c.Request.Context())
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(ms)
}

// Create adds an artist
func (ctl *ArtistsController) Create(c *Context) {
	var req models.AddArtistRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}

	m, status, err := ctl.catalog.AddArtist(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Create("artist", m.ID.Hex())
	c.RespondWithData(m)
}

// ArtistSearchHandler routes requests for /api/v1/artists/search/{term}
func ArtistSearchHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)

		if c.GetHTTPMethod() != http.MethodGet {
			c.RespondWithNotImplemented()
			return
		}

		ms, status, err := catalog.SearchArtistsByName(
			c.Request.Context(), c.RouteVars["term"])
		if err != nil {
			c.RespondWithErrorDetail(err, status)
			return
		}

		c.RespondWithData(ms)
	}
}

// ArtistController handles a single artist
type ArtistController struct {
	catalog *models.Catalog
}

// ArtistHandler routes requests for /api/v1/artists/{artist_id}
func ArtistHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := ArtistController{catalog: catalog}

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

// artistDetail is an artist plus the album count derived by query
type artistDetail struct {
	models.Artist
	NumOfAlbums int64 `json:"numOfAlbums"`
}

// Read fetches one artist with its derived album count
func (ctl *ArtistController) Read(c *Context) {
	m, status, err := ctl.catalog.GetArtistByID(
		c.Request.Context(), c.RouteVars["artist_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	n, status, err := ctl.catalog.NumOfAlbumsByArtist(c.Request.Context(), m.ID)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(artistDetail{Artist: m, NumOfAlbums: n})
}

// Update edits the supplied fields of one artist
func (ctl *ArtistController) Update(c *Context) {
	var req models.EditArtistRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}
	req.ID = c.RouteVars["artist_id"]

	m, status, err := ctl.catalog.EditArtist(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Update("artist", m.ID.Hex())
	c.RespondWithData(m)
}

// Delete removes one artist, cascading to its albums and songs
func (ctl *ArtistController) Delete(c *Context) {
	m, status, err := ctl.catalog.RemoveArtist(
		c.Request.Context(), c.RouteVars["artist_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Delete("artist", m.ID.Hex())
	c.RespondWithData(m)
}

// ArtistSongsHandler routes requests for /api/v1/artists/{artist_id}/songs
func ArtistSongsHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)

		if c.GetHTTPMethod() != http.MethodGet {
			c.RespondWithNotImplemented()
			return
		}

		ms, status, err := catalog.SongsByArtistID(
			c.Request.Context(), c.RouteVars["artist_id"])
		if err != nil {
			c.RespondWithErrorDetail(err, status)
			return
		}

		c.RespondWithData(ms)
	}
}
