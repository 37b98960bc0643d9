package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

func newApp(logger *log.Logger) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(logger).Middleware())
	return app
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Error
}

func TestErrorMiddleware_Mapping(t *testing.T) {
	app := newApp(log.New(io.Discard, "", 0))
	app.Get("/app", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "All fields are required", nil)
	})
	app.Get("/app500", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "Failed to save message", errors.New("disk full"))
	})
	app.Get("/fiber", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "taken")
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("secret detail")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("boom")
	})

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/app", 400, "All fields are required"},
		{"/app500", 500, "Failed to save message"},
		{"/fiber", 409, "taken"},
		{"/plain", 500, "Internal server error"},
		{"/panic", 500, "Internal server error"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		if got := errorBody(t, resp); got != tc.msg {
			t.Fatalf("%s: expected %q, got %q", tc.path, tc.msg, got)
		}
	}
}

func TestAccessLog_SetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(log.New(io.Discard, "", 0))
	app.Use(NewAccessLogMiddleware(log.New(&buf, "", 0), "/health").Middleware())
	app.Get("/x", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/health", func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "given-id")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.Header.Get(HeaderRequestID) != "given-id" {
		t.Fatalf("expected request id to be echoed")
	}

	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil)); err != nil {
		t.Fatalf("test: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "rid=given-id") {
		t.Fatalf("unexpected access log:\n%s", buf.String())
	}
}

func TestAccessLog_RedactsQueryToken(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(log.New(io.Discard, "", 0))
	app.Use(NewAccessLogMiddleware(log.New(&buf, "", 0)).Middleware())
	app.Get("/ws", func(c fiber.Ctx) error { return c.SendString("ok") })

	const secret = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.payload.sig"
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws?token="+secret+"&since=5", nil)); err != nil {
		t.Fatalf("test: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, secret) {
		t.Fatalf("access log leaked the token:\n%s", out)
	}
	if !strings.Contains(out, "path=/ws?") || !strings.Contains(out, "token=REDACTED") || !strings.Contains(out, "since=5") {
		t.Fatalf("unexpected access log:\n%s", out)
	}
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	access, _ := svc.GenerateAccessToken("admin")
	refresh, _ := svc.GenerateRefreshToken("admin")
	mw := NewAuthMiddleware(svc)

	app := newApp(log.New(io.Discard, "", 0))
	app.Get("/h", mw.Middleware(), func(c fiber.Ctx) error { return c.SendString(Subject(c)) })
	app.Get("/q", mw.WebSocket(), func(c fiber.Ctx) error { return c.SendString(Subject(c)) })

	cases := []struct {
		path   string
		header string
		status int
	}{
		{"/h", "Bearer " + access, 200},
		{"/h", "", 401},
		{"/h", "Bearer " + refresh, 401},
		{"/h", "Basic abc", 401},
		{"/h?token=" + access, "", 401},
		{"/q?token=" + access, "", 200},
		{"/q?token=" + refresh, "", 401},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s %q: expected %d, got %d", tc.path, tc.header, tc.status, resp.StatusCode)
		}
		if tc.status == 200 {
			b, _ := io.ReadAll(resp.Body)
			if string(b) != "admin" {
				t.Fatalf("expected subject admin, got %q", b)
			}
		}
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := BearerToken("  bearer  abc "); !ok || tok != "abc" {
		t.Fatalf("unexpected %q %v", tok, ok)
	}
	if _, ok := BearerToken("Bearer"); ok {
		t.Fatalf("expected failure for missing token")
	}
}
