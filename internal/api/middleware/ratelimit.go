package middleware

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/api/metrics"
)

const msgRateLimited = "Too many submissions. Please wait 1 hour before submitting again."

// Limiter counts one submission attempt for key and reports whether it is
// still within quota.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// SubmissionRateLimit throttles public form submissions per caller. Callers
// are identified by a hash of IP and user agent. The limiter fails open: if
// the backing store is unreachable, submissions pass through and the error
// is logged.
func SubmissionRateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := callerKey(c.RealIP(), c.Request().UserAgent())

			ok, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Error().Err(err).Str("path", c.Path()).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				log.Warn().
					Str("ip", c.RealIP()).
					Str("path", c.Path()).
					Msg("submission rate limit exceeded")
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": msgRateLimited,
				})
			}
			return next(c)
		}
	}
}

func callerKey(ip, userAgent string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ip))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(userAgent))
	return fmt.Sprintf("%x", h.Sum64())
}
