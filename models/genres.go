package models

import (
	"strings"

	e "github.com/microcosm-cc/catalogue/errors"
)

// The fixed set of music genres an album may carry
const (
	GenrePop         = "POP"
	GenreRock        = "ROCK"
	GenreHipHop      = "HIP_HOP"
	GenreCountry     = "COUNTRY"
	GenreJazz        = "JAZZ"
	GenreClassical   = "CLASSICAL"
	GenreElectronic  = "ELECTRONIC"
	GenreRAndB       = "R_AND_B"
	GenreIndie       = "INDIE"
	GenreAlternative = "ALTERNATIVE"
)

// Genres lists every valid genre in its canonical spelling
var Genres = []string{
	GenrePop,
	GenreRock,
	GenreHipHop,
	GenreCountry,
	GenreJazz,
	GenreClassical,
	GenreElectronic,
	GenreRAndB,
	GenreIndie,
	GenreAlternative,
}

// CanonicalGenre normalises a genre to its canonical upper-case spelling and
// rejects anything outside the fixed set. Upper-case is the single policy on
// every path, add and edit alike.
func CanonicalGenre(genre string) (string, error) {
	genre = strings.ToUpper(strings.TrimSpace(genre))
	if genre == "" {
		return "", e.New("CanonicalGenre", e.ValidationError,
			"genre is a required field")
	}

	for _, g := range Genres {
		if genre == g {
			return genre, nil
		}
	}

	return "", e.New("CanonicalGenre", e.ValidationError,
		"'"+genre+"' is not a valid genre")
}
