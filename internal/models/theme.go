package models

import "time"

const (
	ViewStyleGrid  = "GRID"
	ViewStyleList  = "LIST"
	ViewStyleImage = "IMAGE"

	// ThemeID is the fixed key of the theme singleton.
	ThemeID = "global"
)

type ThemeColors struct {
	Bg             string `bson:"bg" json:"bg"`
	Text           string `bson:"text" json:"text"`
	ProductCardBg  string `bson:"product_card_bg" json:"product_card_bg"`
	CategoryCardBg string `bson:"category_card_bg" json:"category_card_bg"`
	Utility        string `bson:"utility" json:"utility"`
}

// ColorKeys lists the stored color names, in document order.
var ColorKeys = []string{"bg", "text", "product_card_bg", "category_card_bg", "utility"}

type Theme struct {
	ID        string      `bson:"_id" json:"_id"`
	Colors    ThemeColors `bson:"colors" json:"colors"`
	ViewStyle string      `bson:"view_style" json:"view_style"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

func DefaultTheme(now time.Time) Theme {
	return Theme{
		ID: ThemeID,
		Colors: ThemeColors{
			Bg:             "#ffffff",
			Text:           "#000000",
			ProductCardBg:  "#f5f5f5",
			CategoryCardBg: "#e0e0e0",
			Utility:        "#ff4081",
		},
		ViewStyle: ViewStyleList,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ValidViewStyle(style string) bool {
	switch style {
	case ViewStyleGrid, ViewStyleList, ViewStyleImage:
		return true
	}
	return false
}

func ValidColorKey(key string) bool {
	for _, k := range ColorKeys {
		if k == key {
			return true
		}
	}
	return false
}
