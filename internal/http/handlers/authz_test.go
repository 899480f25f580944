package handlers_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"threadbound/internal/config"
)

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestAdminOpenWhenNoPassword(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp, err := app.Test(newRequest("GET", "/api/admin/product/prod-hoodie/sizes", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("auth disabled: expected 200, got %d", resp.StatusCode)
	}
}

func TestAdminRequiresCredentials(t *testing.T) {
	app, _ := newTestApp(t, config.Config{AdminPassword: "s3cret"})

	// Anonymous
	resp, err := app.Test(newRequest("GET", "/api/admin/product/prod-hoodie/sizes", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("WWW-Authenticate"); got == "" {
		t.Fatal("expected a WWW-Authenticate challenge")
	}

	// Wrong password
	req := newRequest("GET", "/api/admin/product/prod-hoodie/sizes", "")
	req.Header.Set("Authorization", basicAuth("admin", "wrong"))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminBasicAuthMintsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t, config.Config{AdminPassword: "s3cret"})

	// The username is ignored; only the password is checked.
	req := newRequest("GET", "/api/admin/product/prod-hoodie/sizes", "")
	req.Header.Set("Authorization", basicAuth("anything", "s3cret"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("basic auth: expected 200, got %d", resp.StatusCode)
	}

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "admin_session" {
			session = ck
		}
	}
	if session == nil {
		t.Fatal("expected an admin_session cookie to be set")
	}
	if !session.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	// The cookie alone authenticates the next request.
	req = newRequest("GET", "/api/admin/product/prod-hoodie/sizes", "")
	req.AddCookie(&http.Cookie{Name: session.Name, Value: session.Value})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cookie auth: expected 200, got %d", resp.StatusCode)
	}

	// A forged cookie does not.
	req = newRequest("GET", "/api/admin/product/prod-hoodie/sizes", "")
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "1234.deadbeef"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("forged cookie: expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	app, _ := newTestApp(t, config.Config{AdminPassword: "s3cret"})

	resp, err := app.Test(newRequest("GET", "/admin/login", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login form: expected 200, got %d", resp.StatusCode)
	}

	// Wrong password re-renders the form with 401.
	req := newRequest("POST", "/admin/login", "password=wrong")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", resp.StatusCode)
	}

	// Correct password mints the cookie and redirects to the dashboard.
	req = newRequest("POST", "/admin/login", "password=s3cret")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", got)
	}

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "admin_session" {
			session = ck
		}
	}
	if session == nil {
		t.Fatal("expected an admin_session cookie after login")
	}

	req = newRequest("GET", "/admin/", "")
	req.AddCookie(&http.Cookie{Name: session.Name, Value: session.Value})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", resp.StatusCode)
	}
}
