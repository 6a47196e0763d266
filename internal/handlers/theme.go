package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/cache"
	"menu-api/internal/dto"
	"menu-api/internal/merge"
	"menu-api/internal/models"
	"menu-api/internal/store"
	"menu-api/internal/validation"
)

/*
GET /manage/theme
- public; creates the default theme on first read
*/
func GetTheme(st store.ThemeStore, cc cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /manage/theme"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var theme models.Theme
		if cacheGet(c, cc, cache.ThemeKey, &theme) {
			respondOK(c, apperr.CodeThemeFetched, gin.H{"theme": theme})
			return
		}

		if err := st.EnsureTheme(ctx); err != nil {
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}
		theme, err := st.FindTheme(ctx)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = apperr.NotFound(apperr.CodeThemeNotFound)
			}
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}

		cacheSet(c, cc, cache.ThemeKey, theme)
		respondOK(c, apperr.CodeThemeFetched, gin.H{"theme": theme})
	}
}

/*
PUT /manage/theme
- each sent color is merged into colors; unknown color keys are dropped
*/
func UpdateTheme(st store.ThemeStore, cc cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /manage/theme"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.ThemeUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateTheme)
			return
		}
		if err := validation.Theme(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateTheme)
			return
		}

		update := merge.Theme(req)
		if update.Empty() {
			respondWithError(c, route, apperr.BadRequest(apperr.CodeColorsOrViewStyleRequired), "")
			return
		}

		if err := st.EnsureTheme(ctx); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateTheme)
			return
		}
		theme, err := st.UpdateTheme(ctx, update)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = apperr.NotFound(apperr.CodeThemeNotFound)
			}
			respondWithError(c, route, err, apperr.CodeFailedToUpdateTheme)
			return
		}

		cacheInvalidate(c, cc, cache.ThemeKey)
		audit(c, route, logrus.Fields{"fields": update.Paths()})
		respondOK(c, apperr.CodeThemeUpdated, gin.H{"theme": theme})
	}
}
