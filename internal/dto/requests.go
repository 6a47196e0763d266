package dto

import (
	"encoding/json"

	"menu-api/internal/models"
)

type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LangAbbr    string `json:"lang_abbr"`
}

type CategoryUpdateRequest struct {
	CurrentName string `json:"current_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LangAbbr    string `json:"lang_abbr"`
}

type CategoryDeleteRequest struct {
	Name     string `json:"name"`
	LangAbbr string `json:"lang_abbr"`
}

// Addons stay raw until validation so a non-array value can be reported
// with its own code instead of a generic decode failure.
type ProductCreateRequest struct {
	Name        string                    `json:"name"`
	Price       Optional[float64]         `json:"price"`
	Description string                    `json:"description"`
	Category    string                    `json:"category"`
	Calories    Optional[float64]         `json:"calories"`
	Image       string                    `json:"image"`
	Allergies   Optional[[]string]        `json:"allergies"`
	Addons      Optional[json.RawMessage] `json:"addons"`
}

type ProductUpdateRequest struct {
	CurrentName string                    `json:"current_name"`
	Name        string                    `json:"name"`
	Price       Optional[float64]         `json:"price"`
	Description Optional[string]          `json:"description"`
	Category    string                    `json:"category"`
	Calories    Optional[float64]         `json:"calories"`
	Image       Optional[string]          `json:"image"`
	Allergies   Optional[[]string]        `json:"allergies"`
	Addons      Optional[json.RawMessage] `json:"addons"`
}

type ProductDeleteRequest struct {
	Name string `json:"name"`
}

type ReviewUpdate struct {
	GoogleMapLink string `json:"google_map_link"`
}

type ContactUpdate struct {
	PhoneNumber    string `json:"phone_number"`
	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`
}

type SocialLinksUpdate struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
	Youtube   string `json:"youtube"`
}

type InfoBarUpdate struct {
	Locations   Optional[[]models.Location] `json:"locations"`
	Info        string                      `json:"info"`
	Review      ReviewUpdate                `json:"review"`
	Contact     ContactUpdate               `json:"contact"`
	SocialLinks SocialLinksUpdate           `json:"social_links"`
	ShareLink   string                      `json:"share_link"`
	Allergies   Optional[[]string]          `json:"allergies"`
}

type ContentUpdateRequest struct {
	Name         string             `json:"name"`
	Desc         string             `json:"desc"`
	Logo         string             `json:"logo"`
	HeaderImages Optional[[]string] `json:"header_images"`
	BgImage      Optional[string]   `json:"bg_image"`
	InfoBar      *InfoBarUpdate     `json:"info_bar"`
	LangAbbr     string             `json:"lang_abbr"`
}

type ThemeUpdateRequest struct {
	Colors    map[string]string `json:"colors"`
	ViewStyle string            `json:"view_style"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminDeleteRequest struct {
	Username string `json:"username"`
}
