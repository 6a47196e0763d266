package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"menu-api/internal/database"
	"menu-api/internal/merge"
	"menu-api/internal/models"
)

// Connection hands out the live database. *database.Manager implements it.
type Connection interface {
	Database(ctx context.Context) (*mongo.Database, error)
	Ping(ctx context.Context) error
}

type Mongo struct {
	conn Connection
	now  func() time.Time
}

var _ Store = (*Mongo)(nil)

func NewMongo(conn Connection) *Mongo {
	return &Mongo{conn: conn, now: time.Now}
}

func (s *Mongo) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *Mongo) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (s *Mongo) insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return primitive.NilObjectID, err
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, translate(err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *Mongo) findOne(ctx context.Context, collection string, filter bson.M, out any) error {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return err
	}
	return translate(coll.FindOne(ctx, filter).Decode(out))
}

func (s *Mongo) findAll(ctx context.Context, collection string, filter bson.M, out any) error {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return err
	}
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *Mongo) updateOne(ctx context.Context, collection string, filter bson.M, u merge.Update, out any) error {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return translate(coll.FindOneAndUpdate(ctx, filter, u.Document(s.now()), opts).Decode(out))
}

func (s *Mongo) deleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// provision upserts defaults under filter. Two concurrent upserts can both
// miss and race on the unique index; the loser retries and then matches.
func (s *Mongo) provision(ctx context.Context, collection string, filter bson.M, defaults bson.M) error {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return err
	}
	update := bson.M{"$setOnInsert": defaults}
	opts := options.Update().SetUpsert(true)
	for attempt := 0; attempt < 2; attempt++ {
		_, err = coll.UpdateOne(ctx, filter, update, opts)
		if err == nil || !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	return translate(err)
}

func (s *Mongo) CreateCategory(ctx context.Context, c *models.Category) error {
	now := s.now()
	c.ID = primitive.NilObjectID
	c.CreatedAt, c.UpdatedAt = now, now
	id, err := s.insert(ctx, database.CategoriesCollection, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *Mongo) FindCategory(ctx context.Context, name, lang string) (models.Category, error) {
	var c models.Category
	err := s.findOne(ctx, database.CategoriesCollection, bson.M{"name": name, "lang_abbr": lang}, &c)
	return c, err
}

func (s *Mongo) CategoryExists(ctx context.Context, name string) (bool, error) {
	coll, err := s.collection(ctx, database.CategoriesCollection)
	if err != nil {
		return false, err
	}
	n, err := coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Mongo) ListCategories(ctx context.Context, lang string) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.findAll(ctx, database.CategoriesCollection, bson.M{"lang_abbr": lang}, &categories)
	return categories, err
}

func (s *Mongo) UpdateCategory(ctx context.Context, id primitive.ObjectID, u merge.Update) (models.Category, error) {
	var c models.Category
	err := s.updateOne(ctx, database.CategoriesCollection, bson.M{"_id": id}, u, &c)
	return c, err
}

func (s *Mongo) DeleteCategory(ctx context.Context, name, lang string) (int64, error) {
	return s.deleteOne(ctx, database.CategoriesCollection, bson.M{"name": name, "lang_abbr": lang})
}

func (s *Mongo) CreateProduct(ctx context.Context, p *models.Product) error {
	now := s.now()
	p.ID = primitive.NilObjectID
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Addons == nil {
		p.Addons = []models.Addon{}
	}
	id, err := s.insert(ctx, database.ProductsCollection, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (s *Mongo) FindProduct(ctx context.Context, name string) (models.Product, error) {
	var p models.Product
	err := s.findOne(ctx, database.ProductsCollection, bson.M{"name": name}, &p)
	return p, err
}

func (s *Mongo) ListProducts(ctx context.Context, categories []string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.findAll(ctx, database.ProductsCollection, bson.M{"category": bson.M{"$in": categories}}, &products)
	return products, err
}

func (s *Mongo) UpdateProduct(ctx context.Context, id primitive.ObjectID, u merge.Update) (models.Product, error) {
	var p models.Product
	err := s.updateOne(ctx, database.ProductsCollection, bson.M{"_id": id}, u, &p)
	return p, err
}

func (s *Mongo) DeleteProduct(ctx context.Context, name string) (int64, error) {
	return s.deleteOne(ctx, database.ProductsCollection, bson.M{"name": name})
}

func (s *Mongo) DeleteProductsByCategory(ctx context.Context, category string) (int64, error) {
	coll, err := s.collection(ctx, database.ProductsCollection)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.M{"category": category})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Mongo) EnsureContent(ctx context.Context, lang string) error {
	defaults, err := insertDefaults(models.DefaultContent(lang, s.now()), "lang_abbr")
	if err != nil {
		return err
	}
	return s.provision(ctx, database.ContentsCollection, bson.M{"lang_abbr": lang}, defaults)
}

func (s *Mongo) FindContent(ctx context.Context, lang string) (models.Content, error) {
	var c models.Content
	err := s.findOne(ctx, database.ContentsCollection, bson.M{"lang_abbr": lang}, &c)
	return c, err
}

func (s *Mongo) UpdateContent(ctx context.Context, lang string, u merge.Update) (models.Content, error) {
	var c models.Content
	err := s.updateOne(ctx, database.ContentsCollection, bson.M{"lang_abbr": lang}, u, &c)
	return c, err
}

func (s *Mongo) EnsureTheme(ctx context.Context) error {
	defaults, err := insertDefaults(models.DefaultTheme(s.now()))
	if err != nil {
		return err
	}
	return s.provision(ctx, database.ThemesCollection, bson.M{"_id": models.ThemeID}, defaults)
}

func (s *Mongo) FindTheme(ctx context.Context) (models.Theme, error) {
	var t models.Theme
	err := s.findOne(ctx, database.ThemesCollection, bson.M{"_id": models.ThemeID}, &t)
	return t, err
}

func (s *Mongo) UpdateTheme(ctx context.Context, u merge.Update) (models.Theme, error) {
	var t models.Theme
	err := s.updateOne(ctx, database.ThemesCollection, bson.M{"_id": models.ThemeID}, u, &t)
	return t, err
}

func (s *Mongo) CreateUser(ctx context.Context, u *models.User) error {
	now := s.now()
	u.ID = primitive.NilObjectID
	u.CreatedAt, u.UpdatedAt = now, now
	id, err := s.insert(ctx, database.UsersCollection, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (s *Mongo) FindUser(ctx context.Context, username, role string) (models.User, error) {
	var u models.User
	err := s.findOne(ctx, database.UsersCollection, bson.M{"username": username, "role": role}, &u)
	return u, err
}

func (s *Mongo) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	users := []models.User{}
	err := s.findAll(ctx, database.UsersCollection, bson.M{"role": role}, &users)
	return users, err
}

func (s *Mongo) DeleteUser(ctx context.Context, username, role string) (int64, error) {
	return s.deleteOne(ctx, database.UsersCollection, bson.M{"username": username, "role": role})
}
