package helpers

import (
	"testing"

	e "github.com/microcosm-cc/catalogue/errors"
)

func TestCheckID(t *testing.T) {
	oid, err := CheckID("5f2a6c9e8b3d4a1f6e0c2b7d")
	if err != nil {
		t.Fatalf("Expected a valid id, got %v", err)
	}
	if oid.Hex() != "5f2a6c9e8b3d4a1f6e0c2b7d" {
		t.Errorf("Round trip changed the id: %s", oid.Hex())
	}

	// Leading and trailing spaces are tolerated
	if _, err := CheckID("  5f2a6c9e8b3d4a1f6e0c2b7d  "); err != nil {
		t.Errorf("Expected a trimmed id to be valid, got %v", err)
	}

	invalid := []string{
		"",
		"   ",
		"not-an-id",
		"5f2a6c9e8b3d4a1f6e0c2b7",   // 23 chars
		"5f2a6c9e8b3d4a1f6e0c2b7dd", // 25 chars
		"zf2a6c9e8b3d4a1f6e0c2b7d",  // non-hex
	}
	for _, id := range invalid {
		_, err := CheckID(id)
		if err == nil {
			t.Errorf("Expected %q to be rejected", id)
			continue
		}
		if e.Code(err) != e.ValidationError {
			t.Errorf("Expected ValidationError for %q, got %d", id, e.Code(err))
		}
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{
		"01/01/2000",
		"1/1/2000",
		"12/31/1999",
		" 06/15/2010 ",
	}
	for _, d := range valid {
		if _, err := ValidateDate("date_formed", d); err != nil {
			t.Errorf("Expected %q to be valid: %v", d, err)
		}
	}

	invalid := []string{
		"",
		"2000/01/01",
		"13/01/2000",
		"01/32/2000",
		"01-01-2000",
		"January 1 2000",
	}
	for _, d := range invalid {
		if _, err := ValidateDate("date_formed", d); err == nil {
			t.Errorf("Expected %q to be rejected", d)
		}
	}
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("name", "  Test Band  ")
	if err != nil {
		t.Fatalf("Expected a valid name, got %v", err)
	}
	if name != "Test Band" {
		t.Errorf("Expected the name to be trimmed, got %q", name)
	}

	invalid := []string{"", "   ", "AC/DC", "Blink182", "M83!"}
	for _, n := range invalid {
		if _, err := ValidateName("name", n); err == nil {
			t.Errorf("Expected %q to be rejected", n)
		}
	}
}

func TestValidateMembers(t *testing.T) {
	members, err := ValidateMembers([]string{" Alice ", "Bob"})
	if err != nil {
		t.Fatalf("Expected valid members, got %v", err)
	}
	if members[0] != "Alice" || members[1] != "Bob" {
		t.Errorf("Expected trimmed members, got %v", members)
	}

	if _, err := ValidateMembers([]string{"Alice", "B0b"}); err == nil {
		t.Error("Expected a digit in a member name to be rejected")
	}
}

func TestValidateDuration(t *testing.T) {
	valid := []string{"3:45", "03:45", "0:00", "59:59"}
	for _, d := range valid {
		if _, err := ValidateDuration(d); err != nil {
			t.Errorf("Expected %q to be valid: %v", d, err)
		}
	}

	invalid := []string{"", "3:5", "60:00", "3:60", "1:2:3", "245"}
	for _, d := range invalid {
		if _, err := ValidateDuration(d); err == nil {
			t.Errorf("Expected %q to be rejected", d)
		}
	}
}

func TestValidateFoundedYear(t *testing.T) {
	for _, y := range []int{1900, 1990, 2025} {
		if err := ValidateFoundedYear(y); err != nil {
			t.Errorf("Expected %d to be valid: %v", y, err)
		}
	}
	for _, y := range []int{0, 1899, 2026} {
		if err := ValidateFoundedYear(y); err == nil {
			t.Errorf("Expected %d to be rejected", y)
		}
	}
}

func TestNormaliseSearchTerm(t *testing.T) {
	term, err := NormaliseSearchTerm("  LOVE  ")
	if err != nil {
		t.Fatalf("Expected a valid term, got %v", err)
	}
	if term != "love" {
		t.Errorf("Expected the term to be folded, got %q", term)
	}

	if _, err := NormaliseSearchTerm("   "); err == nil {
		t.Error("Expected a blank term to be rejected")
	}
}
