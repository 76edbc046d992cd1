package domain

import (
	"errors"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindAuth, "token_invalid", "invalid token")

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInternal, "hash_failed", "hash failed", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := Wrap(KindInternal, "internal_error", "internal", root)

	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrUserNotFound()

	if !Is(err, "user_not_found") {
		t.Fatalf("expected code match")
	}
	if Is(err, "role_not_found") {
		t.Fatalf("did not expect code match")
	}
	if Is(errors.New("plain"), "user_not_found") {
		t.Fatalf("plain errors carry no code")
	}
}

func TestErrFieldRequired_CarriesFieldMessage(t *testing.T) {
	err := ErrFieldRequired("name", "Name is required")

	msgs := FieldMessages(err)
	if got := msgs["name"]; len(got) != 1 || got[0] != "Name is required" {
		t.Fatalf("unexpected field messages: %v", msgs)
	}
	if err.Kind != KindValidation {
		t.Fatalf("expected validation kind, got %v", err.Kind)
	}
}

func TestErrFieldConflict_CodeIncludesField(t *testing.T) {
	err := ErrFieldConflict("email", "A user with this email already exists")

	if err.Code != "duplicate_email" {
		t.Fatalf("expected duplicate_email, got %q", err.Code)
	}
	if err.Kind != KindConflict {
		t.Fatalf("expected conflict kind, got %v", err.Kind)
	}
	msgs := FieldMessages(err)
	if got := msgs["email"]; len(got) != 1 || got[0] != "A user with this email already exists" {
		t.Fatalf("unexpected field messages: %v", msgs)
	}
}

func TestErrReservedRole_Message(t *testing.T) {
	err := ErrReservedRole()

	if err.Kind != KindForbidden {
		t.Fatalf("expected forbidden kind, got %v", err.Kind)
	}
	msgs := FieldMessages(err)
	if got := msgs["roleName"]; len(got) != 1 || got[0] != "Cannot delete system roles" {
		t.Fatalf("unexpected field messages: %v", msgs)
	}
}

func TestFieldMessages_NonDomainError_Nil(t *testing.T) {
	if FieldMessages(errors.New("plain")) != nil {
		t.Fatalf("expected nil for plain errors")
	}
}
