package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/dto"
	"menu-api/internal/imaging"
	"menu-api/internal/merge"
	"menu-api/internal/models"
	"menu-api/internal/store"
	"menu-api/internal/validation"
)

/*
GET /category?lang_abbr=
- categories of one language, "ar" by default
*/
func GetCategories(st store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /category"
		defer handlePanic(c, route)

		lang, err := queryLang(c)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToFetchCategories)
			return
		}

		categories, err := st.ListCategories(c.Request.Context(), lang)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToFetchCategories)
			return
		}
		if len(categories) == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeNoCategoriesFound), "")
			return
		}

		respondOK(c, apperr.CodeCategoriesFetched, gin.H{"categories": categories})
	}
}

/*
POST /category
- (name, lang_abbr) is unique
*/
func CreateCategory(st store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /category"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.CategoryCreateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateCategory)
			return
		}
		if err := validation.CategoryCreate(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateCategory)
			return
		}

		image, err := compressImage(ctx, req.Image, imaging.CategoryImage)
		if err == nil {
			err = checkSize(image, imaging.CategoryImage, apperr.CodeImageSizeExceeds1MB)
		}
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateCategory)
			return
		}

		lang := models.LangOrDefault(req.LangAbbr)
		_, err = st.FindCategory(ctx, req.Name, lang)
		switch {
		case err == nil:
			respondWithError(c, route, apperr.BadRequest(apperr.CodeCategoryAlreadyExists), "")
			return
		case !errors.Is(err, store.ErrNotFound):
			respondWithError(c, route, err, apperr.CodeFailedToCreateCategory)
			return
		}

		category := models.Category{
			Name:        req.Name,
			Description: req.Description,
			Image:       image,
			LangAbbr:    lang,
		}
		if err := st.CreateCategory(ctx, &category); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				err = apperr.Wrap(http.StatusBadRequest, apperr.CodeCategoryAlreadyExists, err)
			}
			respondWithError(c, route, err, apperr.CodeFailedToCreateCategory)
			return
		}

		audit(c, route, logrus.Fields{"category": category.Name, "lang_abbr": lang})
		respondOK(c, apperr.CodeCategoryCreated, gin.H{"category": category})
	}
}

/*
PUT /category
- looks up (current_name, lang_abbr)
- renaming does not touch products
*/
func UpdateCategory(st store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /category"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.CategoryUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateCategory)
			return
		}
		if err := validation.CategoryUpdate(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateCategory)
			return
		}

		image, err := compressImage(ctx, req.Image, imaging.CategoryImage)
		if err == nil {
			err = checkSize(image, imaging.CategoryImage, apperr.CodeImageSizeExceeds1MB)
		}
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateCategory)
			return
		}
		req.Image = image

		update := merge.Category(req)
		if update.Empty() {
			respondWithError(c, route, apperr.BadRequest(apperr.CodeAtLeastOneFieldRequired), "")
			return
		}

		lang := models.LangOrDefault(req.LangAbbr)
		existing, err := st.FindCategory(ctx, req.CurrentName, lang)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = apperr.NotFound(apperr.CodeCategoryNotFound)
			}
			respondWithError(c, route, err, apperr.CodeFailedToUpdateCategory)
			return
		}

		if req.Name != "" && req.Name != req.CurrentName {
			_, err := st.FindCategory(ctx, req.Name, lang)
			switch {
			case err == nil:
				respondWithError(c, route, apperr.BadRequest(apperr.CodeCategoryNameAlreadyExists), "")
				return
			case !errors.Is(err, store.ErrNotFound):
				respondWithError(c, route, err, apperr.CodeFailedToUpdateCategory)
				return
			}
		}

		updated, err := st.UpdateCategory(ctx, existing.ID, update)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicate):
				err = apperr.Wrap(http.StatusBadRequest, apperr.CodeCategoryNameAlreadyExists, err)
			case errors.Is(err, store.ErrNotFound):
				err = apperr.NotFound(apperr.CodeCategoryNotFound)
			}
			respondWithError(c, route, err, apperr.CodeFailedToUpdateCategory)
			return
		}

		audit(c, route, logrus.Fields{"category": updated.Name, "fields": update.Paths()})
		respondOK(c, apperr.CodeCategoryUpdated, gin.H{"category": updated})
	}
}

/*
DELETE /category
- deletes the products named after the category first, then the category
- product category names carry no language: products of a same-named
category in the other language are deleted too
*/
func DeleteCategory(categories store.CategoryStore, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /category"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.CategoryDeleteRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteCategory)
			return
		}
		if err := validation.CategoryDelete(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteCategory)
			return
		}

		removed, err := products.DeleteProductsByCategory(ctx, req.Name)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteCategory)
			return
		}

		lang := models.LangOrDefault(req.LangAbbr)
		deleted, err := categories.DeleteCategory(ctx, req.Name, lang)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteCategory)
			return
		}
		if deleted == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeCategoryNotFound), "")
			return
		}

		audit(c, route, logrus.Fields{"category": req.Name, "lang_abbr": lang, "products": removed})
		respondOK(c, apperr.CodeCategoryDeleted, gin.H{
			"deletedName":          req.Name,
			"deletedProductsCount": removed,
		})
	}
}
