package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidation_ErrorAndAs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Validation("reason", "is required"))
	if err.Error() != "wrapped: reason is required" {
		t.Fatalf("Error() = %q", err.Error())
	}
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("AsValidation must unwrap")
	}
	if ve.Field != "reason" || ve.Message != "is required" {
		t.Fatalf("unexpected: %+v", ve)
	}
	if _, ok := AsValidation(errors.New("plain")); ok {
		t.Fatal("plain error is not a validation error")
	}
}

func TestRemote(t *testing.T) {
	if Remote(nil) != nil {
		t.Fatal("Remote(nil) must be nil")
	}
	err := Remote(errors.New("dial tcp: refused"))
	if !errors.Is(err, ErrRemoteCall) {
		t.Fatalf("want ErrRemoteCall, got %v", err)
	}
}
