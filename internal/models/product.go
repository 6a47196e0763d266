package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Addon struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// Product.Category holds a category name, not an id. The reference is not
// scoped by language: a name shared by an "en" and an "ar" category points
// at both.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Calories    *float64           `bson:"calories,omitempty" json:"calories,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Allergies   []string           `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Addons      []Addon            `bson:"addons" json:"addons"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
