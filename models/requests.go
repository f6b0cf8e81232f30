package models

import (
	"net/http"

	e "github.com/microcosm-cc/catalogue/errors"
	h "github.com/microcosm-cc/catalogue/helpers"
)

// One explicit request struct per mutation. Validate normalises the fields
// in place and rejects malformed values before the engine touches the store
// or the cache. Reference existence (does this artist id resolve to a
// document) is the engine's job, not Validate's.

// AddArtistRequest creates an artist
type AddArtistRequest struct {
	Name       string   `json:"name"`
	DateFormed string   `json:"date_formed"`
	Members    []string `json:"members"`
}

// Validate returns a validation error if any field is malformed
func (r *AddArtistRequest) Validate() (int, error) {
	name, err := h.ValidateName("name", r.Name)
	if err != nil {
		return e.Status(err), err
	}
	r.Name = name

	date, err := h.ValidateDate("date_formed", r.DateFormed)
	if err != nil {
		return e.Status(err), err
	}
	r.DateFormed = date

	members, err := h.ValidateMembers(r.Members)
	if err != nil {
		return e.Status(err), err
	}
	r.Members = members

	return http.StatusOK, nil
}

// EditArtistRequest overlays the present fields onto an existing artist
type EditArtistRequest struct {
	ID         string    `json:"-"`
	Name       *string   `json:"name"`
	DateFormed *string   `json:"date_formed"`
	Members    *[]string `json:"members"`
}

// Validate returns a validation error if any supplied field is malformed
func (r *EditArtistRequest) Validate() (int, error) {
	if r.Name != nil {
		name, err := h.ValidateName("name", *r.Name)
		if err != nil {
			return e.Status(err), err
		}
		*r.Name = name
	}

	if r.DateFormed != nil {
		date, err := h.ValidateDate("date_formed", *r.DateFormed)
		if err != nil {
			return e.Status(err), err
		}
		*r.DateFormed = date
	}

	if r.Members != nil {
		members, err := h.ValidateMembers(*r.Members)
		if err != nil {
			return e.Status(err), err
		}
		*r.Members = members
	}

	return http.StatusOK, nil
}

// AddCompanyRequest creates a record company
type AddCompanyRequest struct {
	Name        string `json:"name"`
	FoundedYear int    `json:"founded_year"`
	Country     string `json:"country"`
}

// Validate returns a validation error if any field is malformed
func (r *AddCompanyRequest) Validate() (int, error) {
	name, err := h.ValidateName("name", r.Name)
	if err != nil {
		return e.Status(err), err
	}
	r.Name = name

	if err := h.ValidateFoundedYear(r.FoundedYear); err != nil {
		return e.Status(err), err
	}

	country, err := h.ValidateName("country", r.Country)
	if err != nil {
		return e.Status(err), err
	}
	r.Country = country

	return http.StatusOK, nil
}

// EditCompanyRequest overlays the present fields onto an existing company
type EditCompanyRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	FoundedYear *int    `json:"founded_year"`
	Country     *string `json:"country"`
}

// Validate returns a validation error if any supplied field is malformed
func (r *EditCompanyRequest) Validate() (int, error) {
	if r.Name != nil {
		name, err := h.ValidateName("name", *r.Name)
		if err != nil {
			return e.Status(err), err
		}
		*r.Name = name
	}

	if r.FoundedYear != nil {
		if err := h.ValidateFoundedYear(*r.FoundedYear); err != nil {
			return e.Status(err), err
		}
	}

	if r.Country != nil {
		country, err := h.ValidateName("country", *r.Country)
		if err != nil {
			return e.Status(err), err
		}
		*r.Country = country
	}

	return http.StatusOK, nil
}

// AddAlbumRequest creates an album under an artist and a record company
type AddAlbumRequest struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"releaseDate"`
	Genre       string `json:"genre"`
	ArtistID    string `json:"artistId"`
	CompanyID   string `json:"companyId"`
}

// Validate returns a validation error if any field is malformed. The genre
// is normalised to its canonical spelling.
func (r *AddAlbumRequest) Validate() (int, error) {
	title, err := h.ValidateName("title", r.Title)
	if err != nil {
		return e.Status(err), err
	}
	r.Title = title

	date, err := h.ValidateDate("releaseDate", r.ReleaseDate)
	if err != nil {
		return e.Status(err), err
	}
	r.ReleaseDate = date

	genre, err := CanonicalGenre(r.Genre)
	if err != nil {
		return e.Status(err), err
	}
	r.Genre = genre

	if _, err := h.CheckID(r.ArtistID); err != nil {
		return e.Status(err), err
	}
	if _, err := h.CheckID(r.CompanyID); err != nil {
		return e.Status(err), err
	}

	return http.StatusOK, nil
}

// EditAlbumRequest overlays the present fields onto an existing album.
// Changing ArtistID or CompanyID re-homes the album's embedded copies.
type EditAlbumRequest struct {
	ID          string  `json:"-"`
	Title       *string `json:"title"`
	ReleaseDate *string `json:"releaseDate"`
	Genre       *string `json:"genre"`
	ArtistID    *string `json:"artistId"`
	CompanyID   *string `json:"companyId"`
}

// Validate returns a validation error if any supplied field is malformed
func (r *EditAlbumRequest) Validate() (int, error) {
	if r.Title != nil {
		title, err := h.ValidateName("title", *r.Title)
		if err != nil {
			return e.Status(err), err
		}
		*r.Title = title
	}

	if r.ReleaseDate != nil {
		date, err := h.ValidateDate("releaseDate", *r.ReleaseDate)
		if err != nil {
			return e.Status(err), err
		}
		*r.ReleaseDate = date
	}

	if r.Genre != nil {
		genre, err := CanonicalGenre(*r.Genre)
		if err != nil {
			return e.Status(err), err
		}
		*r.Genre = genre
	}

	if r.ArtistID != nil {
		if _, err := h.CheckID(*r.ArtistID); err != nil {
			return e.Status(err), err
		}
	}
	if r.CompanyID != nil {
		if _, err := h.CheckID(*r.CompanyID); err != nil {
			return e.Status(err), err
		}
	}

	return http.StatusOK, nil
}

// AddSongRequest creates a song under an album
type AddSongRequest struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	AlbumID  string `json:"albumId"`
}

// Validate returns a validation error if any field is malformed
func (r *AddSongRequest) Validate() (int, error) {
	title, err := h.ValidateName("title", r.Title)
	if err != nil {
		return e.Status(err), err
	}
	r.Title = title

	duration, err := h.ValidateDuration(r.Duration)
	if err != nil {
		return e.Status(err), err
	}
	r.Duration = duration

	if _, err := h.CheckID(r.AlbumID); err != nil {
		return e.Status(err), err
	}

	return http.StatusOK, nil
}

// EditSongRequest overlays the present fields onto an existing song.
// Changing AlbumID re-homes the song's embedded copy.
type EditSongRequest struct {
	ID       string  `json:"-"`
	Title    *string `json:"title"`
	Duration *string `json:"duration"`
	AlbumID  *string `json:"albumId"`
}

// Validate returns a validation error if any supplied field is malformed
func (r *EditSongRequest) Validate() (int, error) {
	if r.Title != nil {
		title, err := h.ValidateName("title", *r.Title)
		if err != nil {
			return e.Status(err), err
		}
		*r.Title = title
	}

	if r.Duration != nil {
		duration, err := h.ValidateDuration(*r.Duration)
		if err != nil {
			return e.Status(err), err
		}
		*r.Duration = duration
	}

	if r.AlbumID != nil {
		if _, err := h.CheckID(*r.AlbumID); err != nil {
			return e.Status(err), err
		}
	}

	return http.StatusOK, nil
}
