package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/ctxutil"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SessionCookie is read when no Authorization header is present. Browsers
// cannot attach headers to an EventSource, so streams rely on it.
const SessionCookie = "session_token"

// Identity resolves the caller's session and stores the user id in the request
// context. It never rejects a request for lack of identity; handlers decide
// what anonymous callers may do. A failing session store is a 500.
func Identity(resolver ports.IdentityResolver, logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "identity")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c.Request())
			if token == "" {
				return next(c)
			}

			req := c.Request()
			userID, err := resolver.Resolve(req.Context(), token)
			switch {
			case err == nil:
				c.SetRequest(req.WithContext(ctxutil.WithUserID(req.Context(), userID.Bytes())))
			case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrValueIsRequired):
				// unknown or expired session: treat as anonymous
			default:
				logger.ErrorContext(req.Context(), "Session lookup failed", "error", err)
				return c.JSON(http.StatusInternalServerError, servers.Result{
					Error:   true,
					Message: "Session lookup failed",
				})
			}

			return next(c)
		}
	}
}

func sessionToken(r *http.Request) string {
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
