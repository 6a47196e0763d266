package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location ids are generated by the client (a timestamp string); the API
// never interprets them.
type Location struct {
	Place string `bson:"place" json:"place"`
	ID    string `bson:"id,omitempty" json:"id,omitempty"`
}

type Review struct {
	GoogleMapLink string `bson:"google_map_link,omitempty" json:"google_map_link,omitempty"`
}

type Contact struct {
	PhoneNumber    string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	WhatsappNumber string `bson:"whatsapp_number,omitempty" json:"whatsapp_number,omitempty"`
	Email          string `bson:"email,omitempty" json:"email,omitempty"`
}

type SocialLinks struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
}

type InfoBar struct {
	Locations   []Location  `bson:"locations" json:"locations"`
	Info        string      `bson:"info,omitempty" json:"info,omitempty"`
	Review      Review      `bson:"review" json:"review"`
	Contact     Contact     `bson:"contact" json:"contact"`
	SocialLinks SocialLinks `bson:"social_links" json:"social_links"`
	ShareLink   string      `bson:"share_link,omitempty" json:"share_link,omitempty"`
	Allergies   []string    `bson:"allergies" json:"allergies"`
}

// Content holds the storefront texts and imagery. There is exactly one
// document per language.
type Content struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	LangAbbr     string             `bson:"lang_abbr" json:"lang_abbr"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Desc         string             `bson:"desc,omitempty" json:"desc,omitempty"`
	Logo         string             `bson:"logo,omitempty" json:"logo,omitempty"`
	HeaderImages []string           `bson:"header_images" json:"header_images"`
	BgImage      string             `bson:"bg_image,omitempty" json:"bg_image,omitempty"`
	InfoBar      InfoBar            `bson:"info_bar" json:"info_bar"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultContent is the document inserted the first time a language is read
// or written.
func DefaultContent(lang string, now time.Time) Content {
	return Content{
		LangAbbr:     lang,
		HeaderImages: []string{},
		InfoBar: InfoBar{
			Locations: []Location{},
			Allergies: []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
