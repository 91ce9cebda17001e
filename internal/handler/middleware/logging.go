package middleware

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxRequestIDKey = "request_id"
)

// NewLogger builds the process logger: JSON in release mode, text
// otherwise, timestamps rendered in the configured zone.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// RequestLogger logs one line per request. A caller-supplied X-Request-ID
// is kept so a booking can be traced across retries.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			attrs = append(attrs, slog.String("idempotency_key", key))
		}
		logger.LogAttrs(context.Background(), slog.LevelDebug, "Request started", attrs...)

		c.Next()

		// The caller is known only after the auth middleware ran.
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}
		if tenantID, ok := GetTenantID(c); ok {
			attrs = append(attrs, slog.String("tenant_id", tenantID.String()))
		}
		if actor, ok := GetActor(c); ok {
			attrs = append(attrs, slog.String("user_id", actor.UserID.String()), slog.String("role", string(actor.Role)))
		}

		status := c.Writer.Status()
		attrs = append(attrs,
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if last := c.Errors.Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok {
				attrs = append(attrs, slog.String("error_code", resp.Error.Code))
			}
			attrs = append(attrs, slog.String("error", last.Err.Error()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(context.Background(), level, "Request completed", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(ctxRequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
