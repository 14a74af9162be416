package authenticate

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"launchlist/entity"
	"launchlist/lib/api/cont"
)

type fakeAuth struct {
	users map[string]*entity.User
}

func (f *fakeAuth) AuthenticateByToken(token string) (*entity.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, fmt.Errorf("token not found")
	}
	return user, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestMissingHeader(t *testing.T) {
	called := false
	handler := New(testLogger(), &fakeAuth{})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if called {
		t.Error("next handler was called without a token")
	}
}

func TestUnknownToken(t *testing.T) {
	called := false
	handler := New(testLogger(), &fakeAuth{users: map[string]*entity.User{}})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if called {
		t.Error("next handler was called with a bad token")
	}
}

func TestValidToken(t *testing.T) {
	called := false
	auth := &fakeAuth{users: map[string]*entity.User{
		"secret": {Username: "alice", Token: "secret", Role: entity.RoleAdmin},
	}}
	handler := New(testLogger(), auth)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !called {
		t.Error("next handler was not called")
	}
}

func TestAdminGateDeniesNonAdmin(t *testing.T) {
	called := false
	handler := Admin(testLogger())(okHandler(&called))

	user := &entity.User{Username: "bob", Role: entity.RoleUser}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req = req.WithContext(cont.PutUser(req.Context(), user))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if called {
		t.Error("next handler was called for a non-admin")
	}
}

func TestAdminGateFailsClosedWithoutUser(t *testing.T) {
	called := false
	handler := Admin(testLogger())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAdminGateAllowsAdmin(t *testing.T) {
	called := false
	handler := Admin(testLogger())(okHandler(&called))

	user := &entity.User{Username: "alice", Role: entity.RoleAdmin}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req = req.WithContext(cont.PutUser(req.Context(), user))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !called {
		t.Error("next handler was not called for an admin")
	}
}
