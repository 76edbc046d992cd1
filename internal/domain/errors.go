package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients
// - Fields: ordered human-readable messages per form field; the rendering
//   layer surfaces the first message of each list
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Fields  map[string][]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// FieldMessages extracts the per-field messages from a domain error, if any.
func FieldMessages(err error) map[string][]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrInvalidForm(cause error) *Error {
	return Wrap(KindValidation, "invalid_form", "malformed form data", cause)
}

func ErrInvalidIntent(intent string) *Error {
	e := New(KindValidation, "invalid_intent", "unknown form intent")
	e.Fields = map[string][]string{"intent": {fmt.Sprintf("Unknown intent %q", intent)}}
	return e
}

// ErrInvalidFields rejects a write with field-scoped validation messages.
func ErrInvalidFields(fields map[string][]string) *Error {
	e := New(KindValidation, "invalid_fields", "validation failed")
	e.Fields = fields
	return e
}

// ErrFieldRequired flags a single empty required field.
func ErrFieldRequired(field, msg string) *Error {
	e := New(KindValidation, "missing_field", "missing required field")
	e.Fields = map[string][]string{field: {msg}}
	return e
}

// ----------------------
// Auth errors (401)
// ----------------------

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "no token provided")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

func ErrSessionInvalid() *Error {
	return New(KindAuth, "session_invalid", "invalid or expired session")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrForbidden() *Error {
	return New(KindForbidden, "forbidden", "forbidden")
}

func ErrInsufficientRole(required string) *Error {
	e := New(KindForbidden, "insufficient_role", "insufficient role")
	e.Fields = map[string][]string{"role": {fmt.Sprintf("Requires the %s role", required)}}
	return e
}

// ErrReservedRole rejects deletion of the admin/user system roles,
// regardless of the caller.
func ErrReservedRole() *Error {
	e := New(KindForbidden, "reserved_role", "cannot delete system roles")
	e.Fields = map[string][]string{"roleName": {"Cannot delete system roles"}}
	return e
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

func ErrRoleNotFound() *Error {
	return New(KindNotFound, "role_not_found", "role not found")
}

// ----------------------
// Conflict (409)
// ----------------------

// ErrFieldConflict reports a uniqueness violation scoped to one form field.
// The message is surfaced verbatim by the rendering layer.
func ErrFieldConflict(field, msg string) *Error {
	e := New(KindConflict, "duplicate_"+field, msg)
	e.Fields = map[string][]string{field: {msg}}
	return e
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
