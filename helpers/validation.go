package helpers

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	e "github.com/microcosm-cc/catalogue/errors"
)

var (
	// MM/DD/YYYY with optional leading zeroes
	dateRegex = regexp.MustCompile(
		`^(0?[1-9]|1[0-2])/(0?[1-9]|[1-2][0-9]|3[0-1])/\d{4}$`,
	)
	// Letters and whitespace only, applies to names, titles and countries
	nameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	// M:SS or MM:SS
	durationRegex = regexp.MustCompile(`^[0-5]?[0-9]:[0-5][0-9]$`)
)

// Bounds on the foundedYear field of a record company
const (
	FoundedYearMin = 1900
	FoundedYearMax = 2025
)

// CheckID validates and parses an opaque 24-hex document id. A malformed id
// is a validation error, never a not-found.
func CheckID(id string) (primitive.ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return primitive.NilObjectID,
			e.New("CheckID", e.ValidationError, "you must provide an id")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID,
			e.New("CheckID", e.ValidationError,
				fmt.Sprintf("'%s' is not a valid object id", id))
	}

	return oid, nil
}

// ValidateDate checks an MM/DD/YYYY date string and returns it trimmed
func ValidateDate(field string, date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", e.New("ValidateDate", e.ValidationError,
			fmt.Sprintf("%s is a required field", field))
	}

	if !dateRegex.MatchString(date) {
		return "", e.New("ValidateDate", e.ValidationError,
			fmt.Sprintf("%s must be an MM/DD/YYYY date", field))
	}

	return date, nil
}

// ValidateName checks a letters-and-spaces string (artist and company names,
// album and song titles, countries) and returns it trimmed
func ValidateName(field string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", e.New("ValidateName", e.ValidationError,
			fmt.Sprintf("%s is a required field", field))
	}

	if !nameRegex.MatchString(name) {
		return "", e.New("ValidateName", e.ValidationError,
			fmt.Sprintf("%s may only contain letters and spaces", field))
	}

	return name, nil
}

// ValidateMembers checks every member name in a list
func ValidateMembers(members []string) ([]string, error) {
	for i := range members {
		name, err := ValidateName("member", members[i])
		if err != nil {
			return nil, err
		}
		members[i] = name
	}
	return members, nil
}

// ValidateDuration checks an M:SS or MM:SS duration string and returns it
// trimmed
func ValidateDuration(duration string) (string, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return "", e.New("ValidateDuration", e.ValidationError,
			"duration is a required field")
	}

	if !durationRegex.MatchString(duration) {
		return "", e.New("ValidateDuration", e.ValidationError,
			"duration must be an M:SS or MM:SS time")
	}

	return duration, nil
}

// ValidateFoundedYear checks a record company founding year
func ValidateFoundedYear(year int) error {
	if year < FoundedYearMin || year > FoundedYearMax {
		return e.New("ValidateFoundedYear", e.ValidationError,
			fmt.Sprintf("founded year must be between %d and %d",
				FoundedYearMin, FoundedYearMax))
	}
	return nil
}

// NormaliseSearchTerm trims and case-folds a free-text search term. The
// normalised term doubles as both the cache key suffix and the store filter.
func NormaliseSearchTerm(term string) (string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return "", e.New("NormaliseSearchTerm", e.ValidationError,
			"a search term is required")
	}
	return term, nil
}
