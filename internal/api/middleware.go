package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/auth"
	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/pkg/logger"
)

const (
	actorContextKey = "actor"

	// SessionCookieName holds the session token for browser clients;
	// API clients send it as a bearer token instead.
	SessionCookieName = "hh_session"
)

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			latency := time.Since(start)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", latency),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

// ActorResolverMiddleware resolves the current actor from the session token
// and stashes it in the request. It never rejects: an absent or invalid
// token just leaves the actor anonymous, and the policy engine decides what
// that actor may do.
func ActorResolverMiddleware(tokens *auth.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := model.Actor{}

			if tokenString := sessionToken(c); tokenString != "" {
				if claims, err := tokens.Verify(tokenString); err == nil {
					actor = model.Actor{
						ID:    claims.Subject,
						Email: claims.Email,
					}
				}
			}

			c.Set(actorContextKey, actor)

			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// CurrentActor returns the actor resolved for this request, or the zero
// value for anonymous requests.
func CurrentActor(c echo.Context) model.Actor {
	if actor, ok := c.Get(actorContextKey).(model.Actor); ok {
		return actor
	}
	return model.Actor{}
}

// clearSessionCookie is the sign-out side effect for domain-rejected actors.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
