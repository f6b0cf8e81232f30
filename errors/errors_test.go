package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCode(t *testing.T) {
	err := New("TestCode", NotFound, "artist not found")
	if Code(err) != NotFound {
		t.Errorf("Expected NotFound, got %d", Code(err))
	}

	wrapped := fmt.Errorf("fetching artist: %w", err)
	if Code(wrapped) != NotFound {
		t.Errorf("Expected NotFound through wrapping, got %d", Code(wrapped))
	}

	if Code(fmt.Errorf("plain")) != 0 {
		t.Error("Expected 0 for an unclassified error")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		code   ErrCode
		status int
	}{
		{ValidationError, http.StatusBadRequest},
		{InvalidReference, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{InternalFailure, http.StatusInternalServerError},
	}

	for _, test := range tests {
		err := New("TestStatus", test.code, "message")
		if Status(err) != test.status {
			t.Errorf(
				"Code %d: expected status %d, got %d",
				test.code,
				test.status,
				Status(err),
			)
		}
	}

	if Status(fmt.Errorf("plain")) != http.StatusInternalServerError {
		t.Error("Expected 500 for an unclassified error")
	}
}
