package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	session "github.com/interviewsim/go-session"
	"github.com/interviewsim/go-session/middleware/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	snap session.Snapshot
}

func (p *fakeProvider) Snapshot() session.Snapshot {
	return p.snap
}

func studentSnapshot() session.Snapshot {
	return session.Snapshot{
		User:   &session.User{ID: "u1", Username: "ana", Email: "ana@x.com", Role: session.RoleStudent},
		Status: session.StatusAuthenticatedStudent,
	}
}

func teacherSnapshot() session.Snapshot {
	return session.Snapshot{
		User:   &session.User{ID: "u2", Username: "bob", Email: "bob@x.com", Role: session.RoleTeacher},
		Status: session.StatusAuthenticatedTeacher,
	}
}

func newGuardedApp(handler fiber.Handler, visited *bool) *fiber.App {
	app := fiber.New()
	app.Get("/area", handler, func(c *fiber.Ctx) error {
		*visited = true
		return c.SendString("area")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	return resp
}

func TestRequireAuthenticatedRedirectsAnonymous(t *testing.T) {
	provider := &fakeProvider{snap: session.Snapshot{Status: session.StatusUnauthenticated}}

	var visited bool
	app := newGuardedApp(guard.RequireAuthenticated(guard.Config{Provider: provider}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.False(t, visited)
}

func TestRequireAuthenticatedAdmitsAndStoresSnapshot(t *testing.T) {
	provider := &fakeProvider{snap: studentSnapshot()}

	app := fiber.New()
	app.Get("/area", guard.RequireAuthenticated(guard.Config{Provider: provider}), func(c *fiber.Ctx) error {
		snap, ok := guard.SnapshotFromLocals(c)
		require.True(t, ok)
		return c.SendString(snap.User.Username)
	})

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleWrongRoleGoesHomeNotLogin(t *testing.T) {
	provider := &fakeProvider{snap: studentSnapshot()}

	var visited bool
	app := newGuardedApp(guard.RequireRole(session.RoleTeacher, guard.Config{Provider: provider}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.False(t, visited, "the guarded view must never render for the wrong role")
}

func TestRequireRoleAdmitsMatchingRole(t *testing.T) {
	provider := &fakeProvider{snap: teacherSnapshot()}

	var visited bool
	app := newGuardedApp(guard.RequireRole(session.RoleTeacher, guard.Config{Provider: provider}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, visited)
}

func TestRequireRoleAnonymousGoesToLogin(t *testing.T) {
	provider := &fakeProvider{snap: session.Snapshot{Status: session.StatusUnauthenticated}}

	var visited bool
	app := newGuardedApp(guard.RequireRole(session.RoleTeacher, guard.Config{Provider: provider}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.False(t, visited)
}

func TestLoadingDefersInsteadOfRedirecting(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
	}{
		{"initializing", session.Snapshot{Status: session.StatusInitializing}},
		{"operation in flight", session.Snapshot{Status: session.StatusUnauthenticated, Loading: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{snap: tt.snap}

			var visited bool
			app := newGuardedApp(guard.RequireRole(session.RoleTeacher, guard.Config{Provider: provider}), &visited)

			resp := get(t, app, "/area")
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("Location"), "no redirect may happen while state is unresolved")
			assert.False(t, visited)
		})
	}
}

func TestLoadingHandlerOverride(t *testing.T) {
	provider := &fakeProvider{snap: session.Snapshot{Status: session.StatusInitializing}}

	var visited bool
	app := newGuardedApp(guard.RequireAuthenticated(guard.Config{
		Provider: provider,
		LoadingHandler: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).SendString("spinner")
		},
	}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, visited)
}

func TestRequirePublicSendsAuthenticatedHome(t *testing.T) {
	provider := &fakeProvider{snap: studentSnapshot()}

	var visited bool
	app := newGuardedApp(guard.RequirePublic(guard.Config{Provider: provider}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/student", resp.Header.Get("Location"))
	assert.False(t, visited)
}

func TestRequirePublicAdmitsAnonymous(t *testing.T) {
	provider := &fakeProvider{snap: session.Snapshot{Status: session.StatusUnauthenticated}}

	var visited bool
	app := newGuardedApp(guard.RequirePublic(guard.Config{Provider: provider}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, visited)
}

func TestNonGETRedirectsUseSeeOther(t *testing.T) {
	provider := &fakeProvider{snap: session.Snapshot{Status: session.StatusUnauthenticated}}

	app := fiber.New()
	app.Post("/area", guard.RequireAuthenticated(guard.Config{Provider: provider}), func(c *fiber.Ctx) error {
		return c.SendString("area")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/area", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestFilterSkipsGuard(t *testing.T) {
	provider := &fakeProvider{snap: session.Snapshot{Status: session.StatusUnauthenticated}}

	var visited bool
	app := newGuardedApp(guard.RequireAuthenticated(guard.Config{
		Provider: provider,
		Filter:   func(c *fiber.Ctx) bool { return true },
	}), &visited)

	resp := get(t, app, "/area")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, visited)
}

func TestMissingProviderPanics(t *testing.T) {
	assert.Panics(t, func() {
		guard.RequireAuthenticated()
	})
}
