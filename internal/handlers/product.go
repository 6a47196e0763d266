package handlers

import (
	"errors"
	"net/http"
	"strings"

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
GET /product?lang_abbr=&category=
- products whose category is one of the language's category names
*/
func GetProducts(categories store.CategoryStore, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		lang, err := queryLang(c)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToFetchProducts)
			return
		}

		cats, err := categories.ListCategories(ctx, lang)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToFetchProducts)
			return
		}
		if len(cats) == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeNoCategoriesFound), "")
			return
		}

		names := make([]string, 0, len(cats))
		for _, cat := range cats {
			names = append(names, cat.Name)
		}

		filter := names
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			found := false
			for _, name := range names {
				if name == category {
					found = true
					break
				}
			}
			if !found {
				respondWithError(c, route, apperr.NotFound(apperr.CodeCategoryNotFoundForLang), "")
				return
			}
			filter = []string{category}
		}

		list, err := products.ListProducts(ctx, filter)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToFetchProducts)
			return
		}
		if len(list) == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeNoProductsFound), "")
			return
		}

		respondOK(c, apperr.CodeProductsFetched, gin.H{"products": list})
	}
}

// requireCategory checks the product's category name exists in some
// language.
func requireCategory(c *gin.Context, categories store.CategoryStore, name string) error {
	ok, err := categories.CategoryExists(c.Request.Context(), name)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.BadRequest(apperr.CodeCategoryNotFound)
	}
	return nil
}

/*
POST /product
- name is unique across languages
*/
func CreateProduct(categories store.CategoryStore, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.ProductCreateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}
		if err := validation.ProductCreateFields(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}
		if err := requireCategory(c, categories, req.Category); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}

		image, err := compressImage(ctx, req.Image, imaging.ProductImage)
		if err == nil {
			err = checkSize(image, imaging.ProductImage, apperr.CodeImageSizeExceeds1MB)
		}
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}

		addons, err := validation.ProductDetails(req.Calories, req.Addons, req.Allergies)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}

		_, err = products.FindProduct(ctx, req.Name)
		switch {
		case err == nil:
			respondWithError(c, route, apperr.BadRequest(apperr.CodeProductAlreadyExists), "")
			return
		case !errors.Is(err, store.ErrNotFound):
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}

		product := models.Product{
			Name:        req.Name,
			Price:       req.Price.Value,
			Description: req.Description,
			Category:    req.Category,
			Image:       image,
			Allergies:   req.Allergies.Value,
			Addons:      addons,
		}
		if req.Calories.Valid() {
			calories := req.Calories.Value
			product.Calories = &calories
		}

		if err := products.CreateProduct(ctx, &product); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				err = apperr.Wrap(http.StatusBadRequest, apperr.CodeProductAlreadyExists, err)
			}
			respondWithError(c, route, err, apperr.CodeFailedToCreateProduct)
			return
		}

		audit(c, route, logrus.Fields{"product": product.Name, "category": product.Category})
		respondOK(c, apperr.CodeProductCreated, gin.H{"product": product})
	}
}

/*
PUT /product
- looks up current_name
- price, description, calories, image, allergies and addons are written
whenever the key is sent; null clears them (price excepted)
*/
func UpdateProduct(categories store.CategoryStore, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /product"
		defer handlePanic(c, route)
		ctx := c.Request.Context()

		var req dto.ProductUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
			return
		}
		if err := validation.ProductUpdateFields(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
			return
		}
		if req.Category != "" {
			if err := requireCategory(c, categories, req.Category); err != nil {
				respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
				return
			}
		}

		if req.Image.Valid() {
			image, err := compressImage(ctx, req.Image.Value, imaging.ProductImage)
			if err == nil {
				err = checkSize(image, imaging.ProductImage, apperr.CodeImageSizeExceeds1MB)
			}
			if err != nil {
				respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
				return
			}
			req.Image.Value = image
		}

		addons, err := validation.ProductDetails(req.Calories, req.Addons, req.Allergies)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
			return
		}

		update := merge.Product(req, addons)
		if update.Empty() {
			respondWithError(c, route, apperr.BadRequest(apperr.CodeAtLeastOneFieldRequired), "")
			return
		}

		existing, err := products.FindProduct(ctx, req.CurrentName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = apperr.NotFound(apperr.CodeProductNotFound)
			}
			respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
			return
		}

		if req.Name != "" && req.Name != req.CurrentName {
			_, err := products.FindProduct(ctx, req.Name)
			switch {
			case err == nil:
				respondWithError(c, route, apperr.BadRequest(apperr.CodeProductNameAlreadyExists), "")
				return
			case !errors.Is(err, store.ErrNotFound):
				respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
				return
			}
		}

		updated, err := products.UpdateProduct(ctx, existing.ID, update)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicate):
				err = apperr.Wrap(http.StatusBadRequest, apperr.CodeProductNameAlreadyExists, err)
			case errors.Is(err, store.ErrNotFound):
				err = apperr.NotFound(apperr.CodeProductNotFound)
			}
			respondWithError(c, route, err, apperr.CodeFailedToUpdateProduct)
			return
		}

		audit(c, route, logrus.Fields{"product": updated.Name, "fields": update.Paths()})
		respondOK(c, apperr.CodeProductUpdated, gin.H{"product": updated})
	}
}

/*
DELETE /product
*/
func DeleteProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /product"
		defer handlePanic(c, route)

		var req dto.ProductDeleteRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteProduct)
			return
		}
		if err := validation.ProductDelete(req); err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteProduct)
			return
		}

		deleted, err := products.DeleteProduct(c.Request.Context(), req.Name)
		if err != nil {
			respondWithError(c, route, err, apperr.CodeFailedToDeleteProduct)
			return
		}
		if deleted == 0 {
			respondWithError(c, route, apperr.NotFound(apperr.CodeProductNotFound), "")
			return
		}

		audit(c, route, logrus.Fields{"product": req.Name})
		respondOK(c, apperr.CodeProductDeleted, gin.H{"deletedName": req.Name})
	}
}
