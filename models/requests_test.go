package models

import (
	"net/http"
	"testing"

	e "github.com/microcosm-cc/catalogue/errors"
)

func TestEditArtistRequestValidate(t *testing.T) {
	// Absent fields are not validated at all
	r := EditArtistRequest{ID: "ignored"}
	if status, err := r.Validate(); err != nil || status != http.StatusOK {
		t.Errorf("empty edit rejected: %d %+v", status, err)
	}

	// Present fields are, and get normalised in place
	name := "  The Quiet Ones  "
	r = EditArtistRequest{Name: &name}
	if _, err := r.Validate(); err != nil {
		t.Fatalf("Validate: %+v", err)
	}
	if *r.Name != "The Quiet Ones" {
		t.Errorf("name = %q, want trimmed", *r.Name)
	}

	bad := "Blink 182"
	r = EditArtistRequest{Name: &bad}
	status, err := r.Validate()
	if e.Code(err) != e.ValidationError || status != http.StatusBadRequest {
		t.Errorf("code = %d status = %d, want ValidationError 400",
			e.Code(err), status)
	}
}

func TestAddAlbumRequestValidate(t *testing.T) {
	r := AddAlbumRequest{
		Title:       "Blue Hour",
		ReleaseDate: "6/1/1999",
		Genre:       "rock",
		ArtistID:    "64b0c1a2e3f4a5b6c7d8e9f0",
		CompanyID:   "64b0c1a2e3f4a5b6c7d8e9f1",
	}
	if _, err := r.Validate(); err != nil {
		t.Fatalf("Validate: %+v", err)
	}
	if r.Genre != GenreRock {
		t.Errorf("genre = %q, want canonical %q", r.Genre, GenreRock)
	}

	r.ArtistID = "nope"
	if _, err := r.Validate(); e.Code(err) != e.ValidationError {
		t.Errorf("malformed artistId code = %d, want ValidationError",
			e.Code(err))
	}
}

func TestAddSongRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     AddSongRequest
		wantErr bool
	}{
		{
			"valid",
			AddSongRequest{
				Title:    "Night Drive",
				Duration: "3:45",
				AlbumID:  "64b0c1a2e3f4a5b6c7d8e9f0",
			},
			false,
		},
		{
			"seconds out of range",
			AddSongRequest{
				Title:    "Night Drive",
				Duration: "3:61",
				AlbumID:  "64b0c1a2e3f4a5b6c7d8e9f0",
			},
			true,
		},
		{
			"malformed album id",
			AddSongRequest{
				Title:    "Night Drive",
				Duration: "3:45",
				AlbumID:  "zz",
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Validate()
			if tt.wantErr && e.Code(err) != e.ValidationError {
				t.Errorf("code = %d, want ValidationError", e.Code(err))
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate: %+v", err)
			}
		})
	}
}
