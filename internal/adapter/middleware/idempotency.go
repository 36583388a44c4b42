package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderRequestAt = "X-Request-At"
	HeaderActorID   = "X-Actor-Id"

	// ActorKey holds the acting user id in the echo context.
	ActorKey = "actor_id"

	// How long the in-progress marker lives if the handler never finishes.
	provisionalLockTTL = 60 * time.Second
	// Allowed client/server clock skew for X-Request-At.
	maxClockSkew = 10 * time.Minute
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type,omitempty"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	ActorID     string    `json:"actor_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Actor returns the actor id set by Idempotency, or "" outside it.
func Actor(c echo.Context) string {
	s, _ := c.Get(ActorKey).(string)
	return s
}

// Idempotency guards mutating requests. The key is method + route + actor +
// request id; a finished request with the same key and body is replayed.
// X-Request-At must be epoch (s or ms) or RFC3339 with a zone.
func Idempotency(rdb redis.Cmdable, ttl time.Duration, log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.ToLower(strings.TrimSpace(req.Header.Get(HeaderRequestID)))
			if reqID == "" {
				return badRequest(c, "missing "+HeaderRequestID)
			}
			if !validReqID(reqID) {
				return badRequest(c, "invalid "+HeaderRequestID+" format")
			}

			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return badRequest(c, err.Error())
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return badRequest(c, HeaderRequestAt+" too skewed")
			}

			actor := strings.TrimSpace(req.Header.Get(HeaderActorID))
			if actor == "" {
				return badRequest(c, "missing "+HeaderActorID)
			}
			if !validActor(actor) {
				return badRequest(c, "invalid "+HeaderActorID)
			}
			c.Set(ActorKey, actor)

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, c.Path(), actor, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				ActorID:     actor,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			ok, err := provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				log.WithFields(logrus.Fields{"module": "idempotency", "key": key}).WithError(err).Error("provisional set failed")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.WithFields(logrus.Fields{"module": "idempotency", "key": key}).WithError(errLoad).Warn("load entry failed")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": HeaderRequestID + " reused with different body"})
				}
				if !cur.InProgress && cur.Code != 0 {
					ct := cur.ContentType
					if ct == "" {
						ct = echo.MIMEApplicationJSON
					}
					return c.Blob(cur.Code, ct, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := idempEntry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				ContentType: rec.Header().Get(echo.HeaderContentType),
				BodySHA256:  bhash,
				RequestID:   reqID,
				ActorID:     actor,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.WithFields(logrus.Fields{"module": "idempotency", "key": key}).WithError(err).Warn("save final failed")
			}
			return nil
		}
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
