package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/cache"
	"menu-api/internal/dto"
	"menu-api/internal/imaging"
	"menu-api/internal/merge"
	"menu-api/internal/models"
	"menu-api/internal/store"
	"menu-api/internal/validation"
)

/*
GET /content?lang_abbr=
- creates the language's default document on first read
*/
func GetContent(st store.ContentStore, cc cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /content"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		lang, err := queryLang(c)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}

		var content models.Content
		if cacheGet(c, cc, cache.ContentKey(lang), &content) {
			respondOK(c, apperr.CodeContentFetched, gin.H{"content": content})
			return
		}

		if err := st.EnsureContent(ctx, lang); err != nil {
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}
		content, err = st.FindContent(ctx, lang)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = apperr.NotFound(apperr.CodeContentNotFound)
			}
			respondWithError(c, route, err, apperr.CodeInternalServerError)
			return
		}

		cacheSet(c, cc, cache.ContentKey(lang), content)
		respondOK(c, apperr.CodeContentFetched, gin.H{"content": content})
	}
}

/*
PUT /content
- partial update of the language's document; only sent leaves change
- bg_image: null or "" removes it
*/
func UpdateContent(st store.ContentStore, cc cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /content"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.ContentUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}
		if err := validation.ContentLang(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}

		if err := compressContentImages(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}
		if err := checkContentImageSizes(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}
		if err := validation.ContentAllergies(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}

		update := merge.Content(req)
		if update.Empty() {
			respondWithError(c, route, apperr.BadRequest(apperr.CodeAtLeastOneFieldRequired), "")
			return
		}

		lang := models.LangOrDefault(req.LangAbbr)
		if err := st.EnsureContent(ctx, lang); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}
		content, err := st.UpdateContent(ctx, lang, update)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = apperr.NotFound(apperr.CodeContentNotFound)
			}
			respondWithError(c, route, err, apperr.CodeFailedToUpdateContent)
			return
		}

		cacheInvalidate(c, cc, cache.ContentKey(lang))
		audit(c, route, logrus.Fields{"lang_abbr": lang, "fields": update.Paths()})
		respondOK(c, apperr.CodeContentUpdated, gin.H{"content": content})
	}
}

// compressContentImages replaces the logo, header and background images in
// req with their compressed forms. Header images run concurrently.
func compressContentImages(c *gin.Context, req *dto.ContentUpdateRequest) error {
	ctx := c.Request.Context()

	logo, err := compressImage(ctx, req.Logo, imaging.Logo)
	if err != nil {
		return err
	}
	req.Logo = logo

	if req.HeaderImages.Valid() {
		headers, err := compressImages(ctx, req.HeaderImages.Value, imaging.HeaderImage)
		if err != nil {
			return err
		}
		req.HeaderImages.Value = headers
	}

	if req.BgImage.Valid() {
		bg, err := compressImage(ctx, req.BgImage.Value, imaging.Background)
		if err != nil {
			return err
		}
		req.BgImage.Value = bg
	}
	return nil
}

func checkContentImageSizes(req dto.ContentUpdateRequest) error {
	if err := checkSize(req.Logo, imaging.Logo, apperr.CodeLogoSizeExceeds1MB); err != nil {
		return err
	}
	for _, header := range req.HeaderImages.Value {
		if err := checkSize(header, imaging.HeaderImage, apperr.CodeHeaderImageSizeExceeds4M); err != nil {
			return err
		}
	}
	return checkSize(req.BgImage.Value, imaging.Background, apperr.CodeBgImageSizeExceeds4MB)
}
