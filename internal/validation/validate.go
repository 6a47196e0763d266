// Package validation checks mutation requests before anything is written.
// Each function returns the first failing rule as an *apperr.Error; callers
// run them in route order so the reported code is deterministic.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"menu-api/internal/apperr"
	"menu-api/internal/dto"
	"menu-api/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// prefix menu_ = menu domain value
	rules := map[string]validator.Func{
		"menu_lang":       validateLang,
		"menu_allergy":    validateAllergy,
		"menu_view_style": validateViewStyle,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	return v
}

func validateLang(fl validator.FieldLevel) bool {
	return models.ValidLang(fl.Field().String())
}

func validateAllergy(fl validator.FieldLevel) bool {
	return models.ValidAllergy(fl.Field().String())
}

func validateViewStyle(fl validator.FieldLevel) bool {
	return models.ValidViewStyle(fl.Field().String())
}

// Lang accepts an empty value (the caller falls back to the default
// language) or one of the supported abbreviations.
func Lang(lang string) error {
	if lang == "" {
		return nil
	}
	if validate.Var(lang, "menu_lang") != nil {
		return apperr.BadRequest(apperr.CodeInvalidLangAbbr)
	}
	return nil
}

// Allergies checks every tag against the English and Arabic lists.
func Allergies(tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	if validate.Var(tags, "dive,menu_allergy") != nil {
		return apperr.BadRequest(apperr.CodeInvalidAllergies)
	}
	return nil
}

// Price enforces a positive price. On create the price is mandatory; on
// update it is checked only when the key was sent, and null counts as
// invalid.
func Price(price dto.Optional[float64], required bool) error {
	if !price.Present && !required {
		return nil
	}
	if !price.Valid() || price.Value <= 0 {
		return apperr.BadRequest(apperr.CodeValidPriceRequired)
	}
	return nil
}

func Calories(calories dto.Optional[float64]) error {
	if calories.Valid() && calories.Value < 0 {
		return apperr.BadRequest(apperr.CodeCaloriesMustBeNonNegative)
	}
	return nil
}

// Addons parses the raw addons value. Absent or null yields nil. Each entry
// needs a non-empty string name and a non-negative numeric price.
func Addons(raw dto.Optional[json.RawMessage]) ([]models.Addon, error) {
	if !raw.Valid() {
		return nil, nil
	}
	data := bytes.TrimSpace(raw.Value)
	if len(data) == 0 || data[0] != '[' {
		return nil, apperr.BadRequest(apperr.CodeAddonsMustBeArray)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperr.Wrap(http.StatusBadRequest, apperr.CodeAddonsMustBeArray, err)
	}

	addons := make([]models.Addon, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]any
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			return nil, apperr.BadRequest(apperr.CodeAddonNameRequired)
		}
		name, ok := fields["name"].(string)
		if !ok || name == "" {
			return nil, apperr.BadRequest(apperr.CodeAddonNameRequired)
		}
		price, ok := fields["price"].(float64)
		if !ok || price < 0 {
			return nil, apperr.BadRequest(apperr.CodeAddonPriceMustBeNonNegative)
		}
		addons = append(addons, models.Addon{Name: name, Price: price})
	}
	return addons, nil
}

func CategoryCreate(req dto.CategoryCreateRequest) error {
	if req.Name == "" {
		return apperr.BadRequest(apperr.CodeNameRequired)
	}
	return Lang(req.LangAbbr)
}

func CategoryUpdate(req dto.CategoryUpdateRequest) error {
	if req.CurrentName == "" {
		return apperr.BadRequest(apperr.CodeCurrentNameRequired)
	}
	return Lang(req.LangAbbr)
}

func CategoryDelete(req dto.CategoryDeleteRequest) error {
	if req.Name == "" {
		return apperr.BadRequest(apperr.CodeNameRequired)
	}
	return Lang(req.LangAbbr)
}

// ProductCreateFields covers the checks that need no lookup and run before
// the category lookup.
func ProductCreateFields(req dto.ProductCreateRequest) error {
	if req.Name == "" {
		return apperr.BadRequest(apperr.CodeNameRequired)
	}
	if err := Price(req.Price, true); err != nil {
		return err
	}
	if req.Category == "" {
		return apperr.BadRequest(apperr.CodeCategoryRequired)
	}
	return nil
}

func ProductUpdateFields(req dto.ProductUpdateRequest) error {
	if req.CurrentName == "" {
		return apperr.BadRequest(apperr.CodeCurrentNameRequired)
	}
	return Price(req.Price, false)
}

func ProductDelete(req dto.ProductDeleteRequest) error {
	if req.Name == "" {
		return apperr.BadRequest(apperr.CodeNameRequired)
	}
	return nil
}

// ProductDetails runs the checks that follow image compression: calories,
// addons, then allergies. It returns the parsed addons.
func ProductDetails(calories dto.Optional[float64], addons dto.Optional[json.RawMessage], allergies dto.Optional[[]string]) ([]models.Addon, error) {
	if err := Calories(calories); err != nil {
		return nil, err
	}
	parsed, err := Addons(addons)
	if err != nil {
		return nil, err
	}
	if err := Allergies(allergies.Value); err != nil {
		return nil, err
	}
	return parsed, nil
}

func ContentLang(req dto.ContentUpdateRequest) error {
	return Lang(req.LangAbbr)
}

// ContentAllergies validates the info bar allergy list when one was sent.
func ContentAllergies(req dto.ContentUpdateRequest) error {
	if req.InfoBar == nil || !req.InfoBar.Allergies.Valid() {
		return nil
	}
	return Allergies(req.InfoBar.Allergies.Value)
}

// Theme requires colors or a view style. A view style must be one of the
// known layouts and every known color key sent with a value must be a CSS
// color (hex, rgb(a) or hsl(a)).
func Theme(req dto.ThemeUpdateRequest) error {
	if req.Colors == nil && req.ViewStyle == "" {
		return apperr.BadRequest(apperr.CodeColorsOrViewStyleRequired)
	}
	if req.ViewStyle != "" && validate.Var(req.ViewStyle, "menu_view_style") != nil {
		return apperr.BadRequest(apperr.CodeInvalidViewStyle)
	}
	for _, key := range models.ColorKeys {
		value := req.Colors[key]
		if value == "" {
			continue
		}
		if validate.Var(value, "iscolor") != nil {
			return apperr.BadRequest(apperr.CodeInvalidColor)
		}
	}
	return nil
}

func AdminCreate(req dto.Credentials) error {
	if req.Username == "" || req.Password == "" {
		return apperr.BadRequest(apperr.CodeUsernamePasswordRequired)
	}
	return nil
}

func Login(req dto.Credentials) error {
	if req.Username == "" || req.Password == "" {
		return apperr.BadRequest(apperr.CodeUsernamePasswordRequired)
	}
	return nil
}

func AdminDelete(req dto.AdminDeleteRequest) error {
	if req.Username == "" {
		return apperr.BadRequest(apperr.CodeUsernameRequired)
	}
	return nil
}
