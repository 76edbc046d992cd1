package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// ---------- fakes ----------

type fakeHealth struct{}

func (fakeHealth) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (fakeHealth) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type fakeAdmin struct{}

func (fakeAdmin) write(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}

func (a fakeAdmin) ListUsers(w http.ResponseWriter, r *http.Request)    { a.write(w, "list") }
func (a fakeAdmin) NewUserForm(w http.ResponseWriter, r *http.Request)  { a.write(w, "new_form") }
func (a fakeAdmin) Submit(w http.ResponseWriter, r *http.Request)       { a.write(w, "submit") }
func (a fakeAdmin) EditUserForm(w http.ResponseWriter, r *http.Request) { a.write(w, "edit_form") }
func (a fakeAdmin) UpdateUser(w http.ResponseWriter, r *http.Request)   { a.write(w, "update") }

// Middleware helper
func noopMW(next http.Handler) http.Handler { return next }

func headerMW(key, val string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, val)
			next.ServeHTTP(w, r)
		})
	}
}

func denyMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
}

func newRouterForTest(t *testing.T, deps Deps) http.Handler {
	t.Helper()

	if deps.Health == nil {
		deps.Health = fakeHealth{}
	}
	if deps.Admin == nil {
		deps.Admin = fakeAdmin{}
	}
	if deps.AuthMW == nil {
		deps.AuthMW = noopMW
	}
	if deps.AdminMW == nil {
		deps.AdminMW = noopMW
	}

	h, err := New(deps)
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}
	return h
}

// ---------- tests ----------

func TestRouter_NilDepsRejected(t *testing.T) {
	t.Parallel()

	cases := []Deps{
		{Admin: fakeAdmin{}, AuthMW: noopMW, AdminMW: noopMW},
		{Health: fakeHealth{}, AuthMW: noopMW, AdminMW: noopMW},
		{Health: fakeHealth{}, Admin: fakeAdmin{}, AdminMW: noopMW},
		{Health: fakeHealth{}, Admin: fakeAdmin{}, AuthMW: noopMW},
	}
	for i, deps := range cases {
		if _, err := New(deps); err == nil {
			t.Fatalf("case %d: expected error for missing dep", i)
		}
	}
}

func TestRouter_HealthRoutesBypassAuth(t *testing.T) {
	t.Parallel()

	h := newRouterForTest(t, Deps{AuthMW: denyMW, AdminMW: denyMW})

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	t.Parallel()

	h := newRouterForTest(t, Deps{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_AdminRoutesWired(t *testing.T) {
	t.Parallel()

	h := newRouterForTest(t, Deps{})

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/admin/v1/users", "list"},
		{http.MethodPost, "/admin/v1/users", "submit"},
		{http.MethodGet, "/admin/v1/users/new", "new_form"},
		{http.MethodGet, "/admin/v1/users/u1", "edit_form"},
		{http.MethodPost, "/admin/v1/users/u1", "update"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", tc.method, tc.path, rec.Code)
		}
		if rec.Body.String() != tc.want {
			t.Fatalf("%s %s: expected %q, got %q", tc.method, tc.path, tc.want, rec.Body.String())
		}
	}
}

func TestRouter_AdminRoutesGated(t *testing.T) {
	t.Parallel()

	h := newRouterForTest(t, Deps{AdminMW: denyMW})

	cases := []struct{ method, path string }{
		{http.MethodGet, "/admin/v1/users"},
		{http.MethodPost, "/admin/v1/users"},
		{http.MethodGet, "/admin/v1/users/new"},
		{http.MethodGet, "/admin/v1/users/u1"},
		{http.MethodPost, "/admin/v1/users/u1"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouter_OptionalMiddlewareApplied(t *testing.T) {
	t.Parallel()

	h := newRouterForTest(t, Deps{RequestIDMW: headerMW("X-Test", "yes")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Test") != "yes" {
		t.Fatalf("expected optional middleware to run")
	}
}
