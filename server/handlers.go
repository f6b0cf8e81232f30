package server

import (
	"net/http"

	"github.com/microcosm-cc/catalogue/controller"
	"github.com/microcosm-cc/catalogue/models"
)

type route struct {
	path    string
	handler func(http.ResponseWriter, *http.Request)
}

// apiRoutes builds the route table for the catalogue API, in registration
// order: literal paths before the id paths whose variables would otherwise
// swallow them. The id route variables are deliberately unconstrained so a
// malformed id reaches the engine's validation and comes back as a 400, not
// a router 404.
func apiRoutes(catalog *models.Catalog) []route {
	return []route{
		{"/api/v1/artists", controller.ArtistsHandler(catalog)},
		{"/api/v1/artists/search/{term}", controller.ArtistSearchHandler(catalog)},
		{"/api/v1/artists/{artist_id}", controller.ArtistHandler(catalog)},
		{"/api/v1/artists/{artist_id}/songs", controller.ArtistSongsHandler(catalog)},

		{"/api/v1/companies", controller.CompaniesHandler(catalog)},
		{"/api/v1/companies/founded", controller.CompaniesFoundedHandler(catalog)},
		{"/api/v1/companies/{company_id}", controller.CompanyHandler(catalog)},

		{"/api/v1/albums", controller.AlbumsHandler(catalog)},
		{"/api/v1/albums/genre/{genre}", controller.AlbumsByGenreHandler(catalog)},
		{"/api/v1/albums/{album_id}", controller.AlbumHandler(catalog)},
		{"/api/v1/albums/{album_id}/songs", controller.AlbumSongsHandler(catalog)},

		{"/api/v1/songs", controller.SongsHandler(catalog)},
		{"/api/v1/songs/search/{term}", controller.SongSearchHandler(catalog)},
		{"/api/v1/songs/{song_id}", controller.SongHandler(catalog)},
	}
}
