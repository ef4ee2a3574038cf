package http

import (
	"fmt"
	"net/http"
	"strings"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is the echo context key under which the middleware stores
// the request's ActorContext.
const actorContextKey = "actor"

// actorClaims are the token claims this service reads. Subject carries the
// actor id: the user id for administrative roles, the profile id otherwise.
// Credential verification and token issuance happen upstream; this service
// only checks the signature and extracts the identity claim.
type actorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ActorMiddleware parses the bearer token into an ActorContext and stores it
// on the request context. Requests without a valid token are rejected with
// 401 before reaching any handler.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return unauthorized(c, "missing bearer token")
			}

			claims := &actorClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return unauthorized(c, "invalid token")
			}

			actorID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return unauthorized(c, "invalid subject claim")
			}

			role, err := kernel.RoleFromString(claims.Role)
			if err != nil {
				return unauthorized(c, "invalid role claim")
			}

			actor, err := auth.NewActorContext(actorID, role)
			if err != nil {
				return unauthorized(c, "invalid identity claims")
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// actorFromContext retrieves the ActorContext stored by ActorMiddleware.
func actorFromContext(c echo.Context) (auth.ActorContext, error) {
	actor, ok := c.Get(actorContextKey).(auth.ActorContext)
	if !ok {
		return auth.ActorContext{}, errs.NewValueIsRequiredError("actor")
	}
	return actor, nil
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
