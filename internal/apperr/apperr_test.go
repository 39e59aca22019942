package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewBusinessCollectsMessages(t *testing.T) {
	err := NewBusiness(MsgOriginNotFound, MsgInvalidAmount)

	if len(err.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(err.Messages))
	}
	if err.Date.IsZero() {
		t.Fatalf("expected date to be set")
	}
	want := MsgOriginNotFound + "; " + MsgInvalidAmount
	if err.Error() != want {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestAsBusinessThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("transfer: %w", NewBusiness(MsgSameAccount))

	be, ok := AsBusiness(wrapped)
	if !ok {
		t.Fatalf("expected wrapped error to be recognized")
	}
	if be.Messages[0] != MsgSameAccount {
		t.Fatalf("unexpected message: %q", be.Messages[0])
	}

	if _, ok := AsBusiness(errors.New("storage down")); ok {
		t.Fatalf("plain errors must not be business violations")
	}
}
