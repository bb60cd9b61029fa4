// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides echo middleware shared by the API routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/tourbooking/internal/ctxkeys"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// RequireAuth validates the bearer token and stores the session
// claims in the request context.
func RequireAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := authService.ParseSessionToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			ctx := context.WithValue(c.Request().Context(), ctxkeys.Session{}, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose session does not carry the
// administrator role. It must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := SessionFromContext(c.Request().Context())
			if claims == nil || claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "administrator role required")
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the session claims stored by
// RequireAuth, or nil.
func SessionFromContext(ctx context.Context) *auth.SessionClaims {
	claims, _ := ctx.Value(ctxkeys.Session{}).(*auth.SessionClaims)
	return claims
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
