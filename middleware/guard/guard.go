// Package guard provides navigation-time checks built on the session
// manager's snapshots: allow the request, redirect it, or defer the
// decision while the startup verification is still pending.
package guard

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	session "github.com/interviewsim/go-session"
)

// ContextKey is the fiber locals key guards store the snapshot under.
const ContextKey = "session"

// SnapshotProvider supplies the session state consulted per navigation.
// *session.Manager satisfies it.
type SnapshotProvider interface {
	Snapshot() session.Snapshot
}

type Config struct {
	// Provider is required
	Provider SnapshotProvider

	// LoginPath receives unauthenticated visitors. Defaults to /login.
	LoginPath string

	// HomePath receives authenticated visitors whose role does not
	// match a role-gated area. Defaults to /.
	HomePath string

	// LoadingHandler renders the placeholder while the session state
	// is still being resolved. No redirect may happen from here.
	LoadingHandler fiber.Handler

	// Filter skips the guard when it returns true
	Filter func(*fiber.Ctx) bool
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Provider == nil {
		panic("guard: missing session snapshot provider")
	}

	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}

	if cfg.HomePath == "" {
		cfg.HomePath = "/"
	}

	if cfg.LoadingHandler == nil {
		cfg.LoadingHandler = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusServiceUnavailable).SendString("loading")
		}
	}

	return cfg
}

// RequireAuthenticated admits any authenticated session and redirects
// everyone else to the login view.
func RequireAuthenticated(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		snap := cfg.Provider.Snapshot()

		// The loading check runs before everything else so a pending
		// startup verification never causes a redirect flash.
		if deferred(snap) {
			return cfg.LoadingHandler(c)
		}

		if !snap.IsAuthenticated() {
			return redirect(c, cfg.LoginPath)
		}

		c.Locals(ContextKey, snap)
		return c.Next()
	}
}

// RequireRole admits only sessions holding the given role. A wrong-role
// visit is a navigation-scope mismatch, not an auth failure, so it goes
// home rather than to login.
func RequireRole(role session.Role, config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		snap := cfg.Provider.Snapshot()

		if deferred(snap) {
			return cfg.LoadingHandler(c)
		}

		if !snap.IsAuthenticated() {
			return redirect(c, cfg.LoginPath)
		}

		if !snap.HasRole(role) {
			return redirect(c, cfg.HomePath)
		}

		c.Locals(ContextKey, snap)
		return c.Next()
	}
}

// RequirePublic protects anonymous-only areas such as login and
// register: authenticated visitors are sent to their role home.
func RequirePublic(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		snap := cfg.Provider.Snapshot()

		if deferred(snap) {
			return cfg.LoadingHandler(c)
		}

		if snap.IsAuthenticated() && snap.User != nil {
			return redirect(c, snap.User.Role.HomePath())
		}

		return c.Next()
	}
}

// SnapshotFromLocals retrieves the snapshot a guard stored for the
// request, if any.
func SnapshotFromLocals(c *fiber.Ctx) (session.Snapshot, bool) {
	snap, ok := c.Locals(ContextKey).(session.Snapshot)
	return snap, ok
}

func deferred(snap session.Snapshot) bool {
	return snap.Loading || snap.Status == session.StatusInitializing
}

func redirect(c *fiber.Ctx, location string) error {
	statusCode := http.StatusSeeOther
	if c.Method() == fiber.MethodGet {
		statusCode = http.StatusFound
	}
	return c.Redirect(location, statusCode)
}
