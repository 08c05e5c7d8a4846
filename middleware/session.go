package middleware

import (
	"cdesk/config"
	"cdesk/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// session keys
const (
	sessionKeyUserID  = "userId"
	sessionKeyName    = "name"
	sessionKeyRole    = "role"
	sessionKeyFlashes = "flashes"
)

const identityLocal = "identity"

// Identity is the per-request authenticated user context, populated once
// from the session and passed to handlers via Locals.
type Identity struct {
	ID   uint
	Name string
	Role string
}

// Flash is a one-shot notice queued for the next rendered page.
type Flash struct {
	Category string // success, info, warning, danger
	Message  string
}

// SessionStore is the global cookie-backed session store
var SessionStore *session.Store

// InitSessionStore initializes the session store. Must be called before
// any route using LoadIdentity is registered.
func InitSessionStore() {
	SessionStore = session.New(session.Config{
		KeyLookup:      "cookie:" + config.AppConfig.SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     24 * time.Hour,
	})
	// session data is gob-encoded into the backing storage
	SessionStore.RegisterType([]Flash{})
}

// LoadIdentity populates the request's Identity from the session, if any.
// It never rejects a request; gating is done by RequireLogin/RequireRole.
func LoadIdentity(c *fiber.Ctx) error {
	sess, err := SessionStore.Get(c)
	if err != nil {
		return c.Next()
	}

	id, ok := sess.Get(sessionKeyUserID).(uint)
	if !ok {
		return c.Next()
	}
	name, _ := sess.Get(sessionKeyName).(string)
	role, _ := sess.Get(sessionKeyRole).(string)

	c.Locals(identityLocal, Identity{ID: id, Name: name, Role: role})
	return c.Next()
}

// CurrentIdentity returns the authenticated identity for this request.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	ident, ok := c.Locals(identityLocal).(Identity)
	return ident, ok
}

// RequireLogin redirects unauthenticated requests to the login page with
// a one-shot notice.
func RequireLogin(c *fiber.Ctx) error {
	if _, ok := CurrentIdentity(c); !ok {
		AddFlash(c, "warning", "Please log in to continue")
		return c.Redirect("/login")
	}
	return c.Next()
}

// RequireRole gates a route group on an exact role match. A logged-in
// identity with the wrong role gets Forbidden, terminal for the request.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := CurrentIdentity(c)
		if !ok {
			AddFlash(c, "warning", "Please log in to continue")
			return c.Redirect("/login")
		}
		if ident.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "You do not have access to this page.")
		}
		return c.Next()
	}
}

// SetIdentity writes the user's identity into the session after a
// successful credential check.
func SetIdentity(c *fiber.Ctx, user models.User) error {
	sess, err := SessionStore.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionKeyUserID, user.ID)
	sess.Set(sessionKeyName, user.Name)
	sess.Set(sessionKeyRole, user.Role)
	return sess.Save()
}

// ClearSession drops all session state unconditionally.
func ClearSession(c *fiber.Ctx) error {
	sess, err := SessionStore.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// AddFlash queues a one-shot notice for the next rendered page.
func AddFlash(c *fiber.Ctx, category, message string) {
	sess, err := SessionStore.Get(c)
	if err != nil {
		return
	}
	flashes, _ := sess.Get(sessionKeyFlashes).([]Flash)
	flashes = append(flashes, Flash{Category: category, Message: message})
	sess.Set(sessionKeyFlashes, flashes)
	sess.Save()
}

// ConsumeFlashes returns queued notices and clears them.
func ConsumeFlashes(c *fiber.Ctx) []Flash {
	sess, err := SessionStore.Get(c)
	if err != nil {
		return nil
	}
	flashes, _ := sess.Get(sessionKeyFlashes).([]Flash)
	if len(flashes) > 0 {
		sess.Delete(sessionKeyFlashes)
		sess.Save()
	}
	return flashes
}
