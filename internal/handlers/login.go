package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"menu-api/internal/apperr"
	"menu-api/internal/auth"
	"menu-api/internal/dto"
	"menu-api/internal/logger"
	"menu-api/internal/models"
	"menu-api/internal/store"
	"menu-api/internal/validation"
)

// SuperAdmin is the reserved account configured through the environment.
// It never exists in the store.
type SuperAdmin struct {
	Username string
	Password string
}

func (s SuperAdmin) matches(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) == 1
	return s.Username != "" && userOK && passOK
}

/*
POST /login
- reserved super-admin credentials first, then ADMIN accounts
*/
func Login(users store.UserStore, tokens *auth.TokenService, super SuperAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /login"
		defer handlePanic(c, route)

		var req dto.Credentials
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}
		if err := validation.Login(req); err != nil {
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}

		role := models.RoleSuperAdmin
		if !super.matches(req.Username, req.Password) {
			user, err := users.FindUser(c.Request.Context(), req.Username, models.RoleAdmin)
			if err == nil {
				err = auth.ComparePassword(user.PasswordHash, req.Password)
			}
			if err != nil {
				if errors.Is(err, store.ErrNotFound) || errors.Is(err, auth.ErrPasswordMismatch) {
					err = apperr.Wrap(http.StatusUnauthorized, apperr.CodeInvalidCredentials, err)
				}
				respondWithError(c, route, err, apperr.CodeInternalServerError)
				return
			}
			role = models.RoleAdmin
		}

		token, err := tokens.Issue(req.Username, role)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}

		logger.Get("audit").WithField("username", req.Username).WithField("role", role).Info("login")
		respondOK(c, apperr.CodeLoginSuccess, gin.H{
			"role":     role,
			"token":    token,
			"username": req.Username,
		})
	}
}
