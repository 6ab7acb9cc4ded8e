package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wardlink/hospital-system/internal/api/middleware"
	"github.com/wardlink/hospital-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails when they are absent or structurally unusable: a token without
// an id or role is valid JWT but useless to every handler.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if claims.ID == "" || claims.Role == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
	}
	return claims, nil
}
