package middleware

import (
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
	skip   map[string]bool
}

// NewAccessLogMiddleware logs one line per request except for the exact
// paths in skip, typically health probes.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skip: make(map[string]bool, len(skip))}
	for _, p := range skip {
		m.skip[p] = true
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()
		if m.skip[c.Path()] {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			// The error middleware sits outside this one and has not
			// written the final status yet.
			status, _ = normalizeError(err)
		}

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s resp_bytes=%d subject=%q ua=%q",
			rid, c.IP(), c.Method(), loggedURL(c), status, time.Since(start),
			len(c.Response().Body()), Subject(c), c.Get(fiber.HeaderUserAgent),
		)
		return err
	}
}

// loggedURL is the request URI with access tokens masked.
func loggedURL(c fiber.Ctx) string {
	u, err := url.ParseRequestURI(c.OriginalURL())
	if err != nil {
		return c.Path()
	}
	q := u.Query()
	if !q.Has(QueryToken) {
		return u.RequestURI()
	}
	q.Set(QueryToken, "REDACTED")
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
