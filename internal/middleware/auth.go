package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/auth"
	"menu-api/internal/logger"
	"menu-api/internal/models"
	"menu-api/internal/store"
)

const claimsKey = "claims"

type TokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// AdminLookup confirms an admin account still exists.
type AdminLookup interface {
	FindUser(ctx context.Context, username, role string) (models.User, error)
}

// AuthGuard admits requests whose bearer token grants required. Missing or
// invalid tokens get 401; valid tokens with too little privilege get 403.
//
// Super-admin tokens (or any token for the reserved username) satisfy every
// level. An ADMIN token is honored only while that admin still exists, so
// deleting an admin revokes their outstanding tokens.
func AuthGuard(tokens TokenVerifier, users AdminLookup, superAdminUsername string, required auth.Privilege) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized)
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized)
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			logger.Get("app").WithError(err).WithFields(logrus.Fields{
				"path":     c.FullPath(),
				"required": required.String(),
			}).Debug("token rejected")
			abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized)
			return
		}

		if !auth.IsSuperAdmin(claims, superAdminUsername) {
			if required == auth.PrivilegeSuperAdmin || claims.Role != models.RoleAdmin {
				abort(c, http.StatusForbidden, apperr.CodeForbidden)
				return
			}
			if _, err := users.FindUser(c.Request.Context(), claims.Username, claims.Role); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized)
					return
				}
				logger.Get("app").WithFields(logrus.Fields{
					"username": claims.Username,
					"error":    err.Error(),
				}).Error("admin lookup failed")
				abort(c, http.StatusInternalServerError, apperr.CodeInternalServerError)
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthGuard.
func ClaimsFrom(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}

func abort(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{"msg": code, "isOk": false, "data": nil})
}
