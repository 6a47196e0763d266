package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-api/internal/apperr"
	"menu-api/internal/models"
)

func seedCategory(t *testing.T, s *testServer, token, name, lang string) {
	t.Helper()
	res := s.do(t, http.MethodPost, "/category", token, map[string]any{"name": name, "lang_abbr": lang})
	requireCode(t, res, http.StatusOK, apperr.CodeCategoryCreated)
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)
	seedCategory(t, s, token, "Drinks", "en")

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"missing name", `{"price":2,"category":"Drinks"}`, apperr.CodeNameRequired},
		{"zero price", `{"name":"Tea","price":0,"category":"Drinks"}`, apperr.CodeValidPriceRequired},
		{"missing price", `{"name":"Tea","category":"Drinks"}`, apperr.CodeValidPriceRequired},
		{"missing category", `{"name":"Tea","price":2}`, apperr.CodeCategoryRequired},
		{"unknown category", `{"name":"Tea","price":2,"category":"Soups"}`, apperr.CodeCategoryNotFound},
		{"negative calories", `{"name":"Tea","price":2,"category":"Drinks","calories":-1}`, apperr.CodeCaloriesMustBeNonNegative},
		{"addons object", `{"name":"Tea","price":2,"category":"Drinks","addons":{"name":"Milk"}}`, apperr.CodeAddonsMustBeArray},
		{"addon without name", `{"name":"Tea","price":2,"category":"Drinks","addons":[{"price":1}]}`, apperr.CodeAddonNameRequired},
		{"addon negative price", `{"name":"Tea","price":2,"category":"Drinks","addons":[{"name":"Milk","price":-1}]}`, apperr.CodeAddonPriceMustBeNonNegative},
		{"unknown allergy", `{"name":"Tea","price":2,"category":"Drinks","allergies":["POLLEN"]}`, apperr.CodeInvalidAllergies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.do(t, http.MethodPost, "/product", token, tt.body)
			requireCode(t, res, http.StatusBadRequest, tt.msg)
		})
	}
}

func TestCreateProductStoresDetails(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)
	seedCategory(t, s, token, "Drinks", "en")

	res := s.do(t, http.MethodPost, "/product", token, `{
		"name": "Latte",
		"price": 4.5,
		"category": "Drinks",
		"calories": 0,
		"allergies": ["MILK"],
		"addons": [{"name": "Oat milk", "price": 0.5}]
	}`)
	requireCode(t, res, http.StatusOK, apperr.CodeProductCreated)

	got, err := s.store.FindProduct(t.Context(), "Latte")
	require.NoError(t, err)
	require.NotNil(t, got.Calories)
	assert.Zero(t, *got.Calories)
	assert.Equal(t, []string{"MILK"}, got.Allergies)
	assert.Equal(t, []models.Addon{{Name: "Oat milk", Price: 0.5}}, got.Addons)

	res = s.do(t, http.MethodPost, "/product", token, map[string]any{"name": "Latte", "price": 5, "category": "Drinks"})
	requireCode(t, res, http.StatusBadRequest, apperr.CodeProductAlreadyExists)
}

func TestGetProductsByLanguageAndCategory(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)

	res := s.do(t, http.MethodGet, "/product?lang_abbr=en", "", nil)
	requireCode(t, res, http.StatusNotFound, apperr.CodeNoCategoriesFound)

	seedCategory(t, s, token, "Drinks", "en")
	seedCategory(t, s, token, "Mains", "en")
	seedCategory(t, s, token, "مشروبات", "ar")

	res = s.do(t, http.MethodGet, "/product?lang_abbr=en", "", nil)
	requireCode(t, res, http.StatusNotFound, apperr.CodeNoProductsFound)

	for _, body := range []map[string]any{
		{"name": "Tea", "price": 2, "category": "Drinks"},
		{"name": "Steak", "price": 20, "category": "Mains"},
		{"name": "شاي", "price": 2, "category": "مشروبات"},
	} {
		requireCode(t, s.do(t, http.MethodPost, "/product", token, body), http.StatusOK, apperr.CodeProductCreated)
	}

	var listed struct {
		Products []models.Product `json:"products"`
	}
	res = s.do(t, http.MethodGet, "/product?lang_abbr=en&category=Mains", "", nil)
	requireCode(t, res, http.StatusOK, apperr.CodeProductsFetched)
	res.decode(t, &listed)
	require.Len(t, listed.Products, 1)
	assert.Equal(t, "Steak", listed.Products[0].Name)

	res = s.do(t, http.MethodGet, "/product", "", nil)
	requireCode(t, res, http.StatusOK, apperr.CodeProductsFetched)
	res.decode(t, &listed)
	require.Len(t, listed.Products, 1)
	assert.Equal(t, "شاي", listed.Products[0].Name)

	res = s.do(t, http.MethodGet, "/product?lang_abbr=en&category="+url.QueryEscape("مشروبات"), "", nil)
	requireCode(t, res, http.StatusNotFound, apperr.CodeCategoryNotFoundForLang)

	res = s.do(t, http.MethodGet, "/product?lang_abbr=de", "", nil)
	requireCode(t, res, http.StatusBadRequest, apperr.CodeInvalidLangAbbr)
}

func TestUpdateProduct(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)
	seedCategory(t, s, token, "Drinks", "en")
	res := s.do(t, http.MethodPost, "/product", token, `{
		"name": "Tea",
		"price": 2,
		"category": "Drinks",
		"description": "Black tea",
		"calories": 5,
		"addons": [{"name": "Lemon", "price": 0.2}]
	}`)
	requireCode(t, res, http.StatusOK, apperr.CodeProductCreated)
	requireCode(t, s.do(t, http.MethodPost, "/product", token, map[string]any{"name": "Juice", "price": 3, "category": "Drinks"}),
		http.StatusOK, apperr.CodeProductCreated)

	t.Run("nothing to change", func(t *testing.T) {
		res := s.do(t, http.MethodPut, "/product", token, map[string]any{"current_name": "Tea"})
		requireCode(t, res, http.StatusBadRequest, apperr.CodeAtLeastOneFieldRequired)
	})

	t.Run("null price", func(t *testing.T) {
		res := s.do(t, http.MethodPut, "/product", token, `{"current_name":"Tea","price":null}`)
		requireCode(t, res, http.StatusBadRequest, apperr.CodeValidPriceRequired)
	})

	t.Run("unknown product", func(t *testing.T) {
		res := s.do(t, http.MethodPut, "/product", token, map[string]any{"current_name": "Soda", "price": 1})
		requireCode(t, res, http.StatusNotFound, apperr.CodeProductNotFound)
	})

	t.Run("rename onto existing", func(t *testing.T) {
		res := s.do(t, http.MethodPut, "/product", token, map[string]any{"current_name": "Tea", "name": "Juice"})
		requireCode(t, res, http.StatusBadRequest, apperr.CodeProductNameAlreadyExists)
	})

	t.Run("price only keeps the rest", func(t *testing.T) {
		res := s.do(t, http.MethodPut, "/product", token, map[string]any{"current_name": "Tea", "price": 2.75})
		requireCode(t, res, http.StatusOK, apperr.CodeProductUpdated)

		got, err := s.store.FindProduct(t.Context(), "Tea")
		require.NoError(t, err)
		assert.Equal(t, 2.75, got.Price)
		assert.Equal(t, "Black tea", got.Description)
		require.NotNil(t, got.Calories)
		assert.Equal(t, 5.0, *got.Calories)
		assert.Len(t, got.Addons, 1)
	})

	t.Run("null clears optional fields", func(t *testing.T) {
		res := s.do(t, http.MethodPut, "/product", token, `{"current_name":"Tea","description":null,"calories":null,"addons":null}`)
		requireCode(t, res, http.StatusOK, apperr.CodeProductUpdated)

		got, err := s.store.FindProduct(t.Context(), "Tea")
		require.NoError(t, err)
		assert.Empty(t, got.Description)
		assert.Nil(t, got.Calories)
		assert.Empty(t, got.Addons)
	})
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)
	seedCategory(t, s, token, "Drinks", "en")
	requireCode(t, s.do(t, http.MethodPost, "/product", token, map[string]any{"name": "Tea", "price": 2, "category": "Drinks"}),
		http.StatusOK, apperr.CodeProductCreated)

	res := s.do(t, http.MethodDelete, "/product", token, map[string]any{"name": "Tea"})
	requireCode(t, res, http.StatusOK, apperr.CodeProductDeleted)

	res = s.do(t, http.MethodDelete, "/product", token, map[string]any{"name": "Tea"})
	requireCode(t, res, http.StatusNotFound, apperr.CodeProductNotFound)

	res = s.do(t, http.MethodDelete, "/product", token, map[string]any{})
	requireCode(t, res, http.StatusBadRequest, apperr.CodeNameRequired)
}
