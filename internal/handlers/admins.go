package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/auth"
	"menu-api/internal/dto"
	"menu-api/internal/models"
	"menu-api/internal/store"
	"menu-api/internal/validation"
)

/*
POST /manage
- super admin only; creates an ADMIN account with a bcrypt hash
*/
func CreateAdmin(users store.UserStore, super SuperAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /manage"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.Credentials
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateAdmin)
			return
		}
		if err := validation.AdminCreate(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateAdmin)
			return
		}

		_, err := users.FindUser(ctx, req.Username, models.RoleAdmin)
		switch {
		case err == nil:
			respondWithError(c, route, apperr.BadRequest(apperr.CodeAdminAlreadyExists), "")
			return
		case !errors.Is(err, store.ErrNotFound):
			respondWithError(c, route, err, apperr.CodeFailedToCreateAdmin)
			return
		}

		if req.Username == super.Username {
			respondWithError(c, route, apperr.New(http.StatusForbidden, apperr.CodeCannotCreateSuperAdmin), "")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateAdmin)
			return
		}

		admin := models.User{Username: req.Username, PasswordHash: hash, Role: models.RoleAdmin}
		if err := users.CreateUser(ctx, &admin); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				err = apperr.Wrap(http.StatusBadRequest, apperr.CodeAdminAlreadyExists, err)
			}
			respondWithError(c, route, err, apperr.CodeFailedToCreateAdmin)
			return
		}

		audit(c, route, logrus.Fields{"admin": admin.Username})
		respondOK(c, apperr.CodeAdminCreated, gin.H{"admin": admin})
	}
}

/*
DELETE /manage
*/
func DeleteAdmin(users store.UserStore, super SuperAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /manage"
		defer handlePanic(c, route)

		var req dto.AdminDeleteRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteAdmin)
			return
		}
		if err := validation.AdminDelete(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteAdmin)
			return
		}
		if req.Username == super.Username {
			respondWithError(c, route, apperr.New(http.StatusForbidden, apperr.CodeCannotDeleteSuperAdmin), "")
			return
		}

		deleted, err := users.DeleteUser(c.Request.Context(), req.Username, models.RoleAdmin)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteAdmin)
			return
		}
		if deleted == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeAdminNotFound), "")
			return
		}

		audit(c, route, logrus.Fields{"admin": req.Username})
		respondOK(c, apperr.CodeAdminDeleted, gin.H{"deletedUsername": req.Username})
	}
}

/*
GET /manage
*/
func ListAdmins(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /manage"
		defer handlePanic(c, route)

		admins, err := users.ListUsers(c.Request.Context(), models.RoleAdmin)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToFetchAdmins)
			return
		}
		if len(admins) == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeNoAdminsFound), "")
			return
		}

		respondOK(c, apperr.CodeAdminsFetched, gin.H{"admins": admins})
	}
}
