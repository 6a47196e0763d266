package apperr

// Response codes. The UI localizes these strings, so they must not change.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeInvalidBody         = "INVALID_BODY"

	CodeNameRequired             = "NAME_REQUIRED"
	CodeCurrentNameRequired      = "CURRENT_NAME_REQUIRED"
	CodeInvalidLangAbbr          = "INVALID_LANG_ABBR"
	CodeAtLeastOneFieldRequired  = "AT_LEAST_ONE_FIELD_REQUIRED"
	CodeImageCompressionFailed   = "IMAGE_COMPRESSION_FAILED"
	CodeImageSizeExceeds1MB      = "IMAGE_SIZE_EXCEEDS_1MB"
	CodeLogoSizeExceeds1MB       = "LOGO_SIZE_EXCEEDS_1MB"
	CodeHeaderImageSizeExceeds4M = "HEADER_IMAGE_SIZE_EXCEEDS_4MB"
	CodeBgImageSizeExceeds4MB    = "BG_IMAGE_SIZE_EXCEEDS_4MB"
	CodeInvalidAllergies         = "INVALID_ALLERGIES"

	CodeCategoryCreated           = "CATEGORY_CREATED"
	CodeCategoryUpdated           = "CATEGORY_UPDATED"
	CodeCategoryDeleted           = "CATEGORY_DELETED"
	CodeCategoriesFetched         = "CATEGORIES_FETCHED"
	CodeCategoryRequired          = "CATEGORY_REQUIRED"
	CodeCategoryAlreadyExists     = "CATEGORY_ALREADY_EXISTS"
	CodeCategoryNameAlreadyExists = "CATEGORY_NAME_ALREADY_EXISTS"
	CodeCategoryNotFound          = "CATEGORY_NOT_FOUND"
	CodeCategoryNotFoundForLang   = "CATEGORY_NOT_FOUND_FOR_LANGUAGE"
	CodeNoCategoriesFound         = "NO_CATEGORIES_FOUND"
	CodeFailedToCreateCategory    = "FAILED_TO_CREATE_CATEGORY"
	CodeFailedToUpdateCategory    = "FAILED_TO_UPDATE_CATEGORY"
	CodeFailedToDeleteCategory    = "FAILED_TO_DELETE_CATEGORY"
	CodeFailedToFetchCategories   = "FAILED_TO_FETCH_CATEGORIES"

	CodeProductCreated              = "PRODUCT_CREATED"
	CodeProductUpdated              = "PRODUCT_UPDATED"
	CodeProductDeleted              = "PRODUCT_DELETED"
	CodeProductsFetched             = "PRODUCTS_FETCHED"
	CodeValidPriceRequired          = "VALID_PRICE_REQUIRED"
	CodeCaloriesMustBeNonNegative   = "CALORIES_MUST_BE_NON_NEGATIVE"
	CodeAddonNameRequired           = "ADDON_NAME_REQUIRED"
	CodeAddonPriceMustBeNonNegative = "ADDON_PRICE_MUST_BE_NON_NEGATIVE"
	CodeAddonsMustBeArray           = "ADDONS_MUST_BE_ARRAY"
	CodeProductAlreadyExists        = "PRODUCT_ALREADY_EXISTS"
	CodeProductNameAlreadyExists    = "PRODUCT_NAME_ALREADY_EXISTS"
	CodeProductNotFound             = "PRODUCT_NOT_FOUND"
	CodeNoProductsFound             = "NO_PRODUCTS_FOUND"
	CodeFailedToCreateProduct       = "FAILED_TO_CREATE_PRODUCT"
	CodeFailedToUpdateProduct       = "FAILED_TO_UPDATE_PRODUCT"
	CodeFailedToDeleteProduct       = "FAILED_TO_DELETE_PRODUCT"
	CodeFailedToFetchProducts       = "FAILED_TO_FETCH_PRODUCTS"

	CodeContentUpdated        = "CONTENT_UPDATED"
	CodeContentFetched        = "CONTENT_FETCHED"
	CodeContentNotFound       = "CONTENT_NOT_FOUND"
	CodeFailedToUpdateContent = "FAILED_TO_UPDATE_CONTENT"

	CodeThemeUpdated              = "THEME_UPDATED"
	CodeThemeFetched              = "THEME_FETCHED"
	CodeThemeNotFound             = "THEME_NOT_FOUND"
	CodeColorsOrViewStyleRequired = "COLORS_OR_VIEW_STYLE_REQUIRED"
	CodeInvalidViewStyle          = "INVALID_VIEW_STYLE"
	CodeInvalidColor              = "INVALID_COLOR"
	CodeFailedToUpdateTheme       = "FAILED_TO_UPDATE_THEME"

	CodeLoginSuccess             = "LOGIN_SUCCESS"
	CodeInvalidCredentials       = "INVALID_CREDENTIALS"
	CodeUsernamePasswordRequired = "USERNAME_PASSWORD_REQUIRED"
	CodeUsernameRequired         = "USERNAME_REQUIRED"
	CodeAdminCreated             = "ADMIN_CREATED"
	CodeAdminDeleted             = "ADMIN_DELETED"
	CodeAdminsFetched            = "ADMINS_FETCHED"
	CodeAdminAlreadyExists       = "ADMIN_ALREADY_EXISTS"
	CodeAdminNotFound            = "ADMIN_NOT_FOUND"
	CodeNoAdminsFound            = "NO_ADMINS_FOUND"
	CodeCannotCreateSuperAdmin   = "CANNOT_CREATE_SUPERADMIN"
	CodeCannotDeleteSuperAdmin   = "CANNOT_DELETE_SUPERADMIN"
	CodeFailedToCreateAdmin      = "FAILED_TO_CREATE_ADMIN"
	CodeFailedToDeleteAdmin      = "FAILED_TO_DELETE_ADMIN"
	CodeFailedToFetchAdmins      = "FAILED_TO_FETCH_ADMINS"

	CodeOK               = "OK"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)
