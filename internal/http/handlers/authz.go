package handlers

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "threadbound/internal/log"
	"threadbound/internal/services"
)

const sessionCookie = "admin_session"

// RequireAdmin authenticates either a signed session cookie or HTTP Basic
// credentials (password only; the username is ignored). A successful Basic
// check mints a fresh cookie. With no password configured every request
// passes — auth is deliberately disabled.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.Enabled() {
			return c.Next()
		}
		if cookie := c.Cookies(sessionCookie); cookie != "" && auth.ValidSession(cookie, time.Now()) {
			return c.Next()
		}
		if _, pass, ok := parseBasic(c.Get(fiber.HeaderAuthorization)); ok && auth.CheckPassword(pass) {
			setSessionCookie(c, auth)
			return c.Next()
		}
		applog.Security(c, "access.denied.admin", nil)
		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="admin"`)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
}

func parseBasic(header string) (user, pass string, ok bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	user, pass, ok = strings.Cut(string(raw), ":")
	return user, pass, ok
}

func setSessionCookie(c *fiber.Ctx, auth *services.AuthService) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    auth.MintSession(now),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  now.Add(services.SessionTTL),
	})
}
