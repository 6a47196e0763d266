package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"menu-api/internal/logger"
)

const (
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	ContentsCollection   = "contents"
	ThemesCollection     = "themes"
	UsersCollection      = "users"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func menuIndexes() []collectionIndexes {
	return []collectionIndexes{
		{
			collection: CategoriesCollection,
			models: []mongo.IndexModel{{
				Keys: bson.D{{Key: "name", Value: 1}, {Key: "lang_abbr", Value: 1}},
				Options: options.Index().
					SetName("name_lang_unique").
					SetUnique(true),
			}},
		},
		{
			collection: ProductsCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetName("name_unique").SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "category", Value: 1}},
					Options: options.Index().SetName("category_index"),
				},
			},
		},
		{
			collection: ContentsCollection,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "lang_abbr", Value: 1}},
				Options: options.Index().SetName("lang_abbr_unique").SetUnique(true),
			}},
		},
		{
			collection: UsersCollection,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("username_unique").SetUnique(true),
			}},
		},
	}
}

// EnsureIndexes creates the unique indexes the stores depend on for
// duplicate detection and singleton provisioning. It is safe to run on
// every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	log := logger.Get("app")
	for _, ci := range menuIndexes() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		names, err := db.Collection(ci.collection).Indexes().CreateMany(ctx, ci.models)
		cancel()
		if err != nil {
			log.WithError(err).WithField("collection", ci.collection).Error("EnsureIndexes: create failed")
			return fmt.Errorf("ensure %s indexes: %w", ci.collection, err)
		}
		log.WithField("collection", ci.collection).WithField("indexes", names).Info("EnsureIndexes: indexes ready")
	}
	return nil
}
