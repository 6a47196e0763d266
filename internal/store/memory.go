package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"menu-api/internal/database"
	"menu-api/internal/merge"
	"menu-api/internal/models"
)

// uniqueKeys mirrors the unique indexes created by database.EnsureIndexes.
var uniqueKeys = map[string][][]string{
	database.CategoriesCollection: {{"name", "lang_abbr"}},
	database.ProductsCollection:   {{"name"}},
	database.ContentsCollection:   {{"lang_abbr"}},
	database.ThemesCollection:     {{"_id"}},
	database.UsersCollection:      {{"username"}},
}

// Memory is an in-process Store. Documents are kept in their generic bson
// form and updated through merge.Apply, so partial updates behave as they
// do against MongoDB.
type Memory struct {
	mu          sync.Mutex
	now         func() time.Time
	collections map[string][]bson.M
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		now:         time.Now,
		collections: make(map[string][]bson.M),
	}
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

type predicate func(bson.M) bool

func eq(pairs ...string) predicate {
	return func(doc bson.M) bool {
		for i := 0; i+1 < len(pairs); i += 2 {
			if v, _ := doc[pairs[i]].(string); v != pairs[i+1] {
				return false
			}
		}
		return true
	}
}

func byID(id primitive.ObjectID) predicate {
	return func(doc bson.M) bool {
		v, ok := doc["_id"].(primitive.ObjectID)
		return ok && v == id
	}
}

// conflicts reports whether doc collides with a document other than the
// one at skip on any unique key.
func (m *Memory) conflicts(collection string, doc bson.M, skip int) bool {
	for i, other := range m.collections[collection] {
		if i == skip {
			continue
		}
		for _, keys := range uniqueKeys[collection] {
			same := true
			for _, k := range keys {
				if fmt.Sprint(doc[k]) != fmt.Sprint(other[k]) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func (m *Memory) insert(collection string, v any) error {
	doc, err := toDocument(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(collection, doc, -1) {
		return ErrDuplicate
	}
	m.collections[collection] = append(m.collections[collection], doc)
	return nil
}

func (m *Memory) findOne(collection string, match predicate, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.collections[collection] {
		if match(doc) {
			return fromDocument(doc, out)
		}
	}
	return ErrNotFound
}

func (m *Memory) matching(collection string, match predicate) []bson.M {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []bson.M
	for _, doc := range m.collections[collection] {
		if match(doc) {
			docs = append(docs, doc)
		}
	}
	return docs
}

func (m *Memory) update(collection string, match predicate, u merge.Update, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.collections[collection]
	for i, doc := range docs {
		if !match(doc) {
			continue
		}
		updated, err := toDocument(doc)
		if err != nil {
			return err
		}
		if err := merge.Apply(updated, u, m.now()); err != nil {
			return err
		}
		// Round trip so stored values have the same shapes a fresh read
		// would produce.
		if updated, err = toDocument(updated); err != nil {
			return err
		}
		if m.conflicts(collection, updated, i) {
			return ErrDuplicate
		}
		docs[i] = updated
		return fromDocument(updated, out)
	}
	return ErrNotFound
}

func (m *Memory) delete(collection string, match predicate, limit int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []bson.M
	var n int64
	for _, doc := range m.collections[collection] {
		if match(doc) && (limit <= 0 || n < int64(limit)) {
			n++
			continue
		}
		kept = append(kept, doc)
	}
	m.collections[collection] = kept
	return n
}

// provision inserts defaults unless a document matches; holding mu makes
// the check and the insert atomic.
func (m *Memory) provision(collection string, match predicate, defaults any) error {
	doc, err := toDocument(defaults)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.collections[collection] {
		if match(existing) {
			return nil
		}
	}
	m.collections[collection] = append(m.collections[collection], doc)
	return nil
}

func decodeAll[T any](docs []bson.M) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := fromDocument(doc, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *Memory) CreateCategory(_ context.Context, c *models.Category) error {
	now := m.now()
	c.ID = primitive.NewObjectID()
	c.CreatedAt, c.UpdatedAt = now, now
	return m.insert(database.CategoriesCollection, c)
}

func (m *Memory) FindCategory(_ context.Context, name, lang string) (models.Category, error) {
	var c models.Category
	err := m.findOne(database.CategoriesCollection, eq("name", name, "lang_abbr", lang), &c)
	return c, err
}

func (m *Memory) CategoryExists(_ context.Context, name string) (bool, error) {
	return len(m.matching(database.CategoriesCollection, eq("name", name))) > 0, nil
}

func (m *Memory) ListCategories(_ context.Context, lang string) ([]models.Category, error) {
	return decodeAll[models.Category](m.matching(database.CategoriesCollection, eq("lang_abbr", lang)))
}

func (m *Memory) UpdateCategory(_ context.Context, id primitive.ObjectID, u merge.Update) (models.Category, error) {
	var c models.Category
	err := m.update(database.CategoriesCollection, byID(id), u, &c)
	return c, err
}

func (m *Memory) DeleteCategory(_ context.Context, name, lang string) (int64, error) {
	return m.delete(database.CategoriesCollection, eq("name", name, "lang_abbr", lang), 1), nil
}

func (m *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	now := m.now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Addons == nil {
		p.Addons = []models.Addon{}
	}
	return m.insert(database.ProductsCollection, p)
}

func (m *Memory) FindProduct(_ context.Context, name string) (models.Product, error) {
	var p models.Product
	err := m.findOne(database.ProductsCollection, eq("name", name), &p)
	return p, err
}

func (m *Memory) ListProducts(_ context.Context, categories []string) ([]models.Product, error) {
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	docs := m.matching(database.ProductsCollection, func(doc bson.M) bool {
		category, _ := doc["category"].(string)
		_, ok := wanted[category]
		return ok
	})
	return decodeAll[models.Product](docs)
}

func (m *Memory) UpdateProduct(_ context.Context, id primitive.ObjectID, u merge.Update) (models.Product, error) {
	var p models.Product
	err := m.update(database.ProductsCollection, byID(id), u, &p)
	return p, err
}

func (m *Memory) DeleteProduct(_ context.Context, name string) (int64, error) {
	return m.delete(database.ProductsCollection, eq("name", name), 1), nil
}

func (m *Memory) DeleteProductsByCategory(_ context.Context, category string) (int64, error) {
	return m.delete(database.ProductsCollection, eq("category", category), 0), nil
}

func (m *Memory) EnsureContent(_ context.Context, lang string) error {
	content := models.DefaultContent(lang, m.now())
	content.ID = primitive.NewObjectID()
	return m.provision(database.ContentsCollection, eq("lang_abbr", lang), content)
}

func (m *Memory) FindContent(_ context.Context, lang string) (models.Content, error) {
	var c models.Content
	err := m.findOne(database.ContentsCollection, eq("lang_abbr", lang), &c)
	return c, err
}

func (m *Memory) UpdateContent(_ context.Context, lang string, u merge.Update) (models.Content, error) {
	var c models.Content
	err := m.update(database.ContentsCollection, eq("lang_abbr", lang), u, &c)
	return c, err
}

func (m *Memory) EnsureTheme(context.Context) error {
	return m.provision(database.ThemesCollection, eq("_id", models.ThemeID), models.DefaultTheme(m.now()))
}

func (m *Memory) FindTheme(context.Context) (models.Theme, error) {
	var t models.Theme
	err := m.findOne(database.ThemesCollection, eq("_id", models.ThemeID), &t)
	return t, err
}

func (m *Memory) UpdateTheme(_ context.Context, u merge.Update) (models.Theme, error) {
	var t models.Theme
	err := m.update(database.ThemesCollection, eq("_id", models.ThemeID), u, &t)
	return t, err
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	now := m.now()
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	return m.insert(database.UsersCollection, u)
}

func (m *Memory) FindUser(_ context.Context, username, role string) (models.User, error) {
	var u models.User
	err := m.findOne(database.UsersCollection, eq("username", username, "role", role), &u)
	return u, err
}

func (m *Memory) ListUsers(_ context.Context, role string) ([]models.User, error) {
	return decodeAll[models.User](m.matching(database.UsersCollection, eq("role", role)))
}

func (m *Memory) DeleteUser(_ context.Context, username, role string) (int64, error) {
	return m.delete(database.UsersCollection, eq("username", username, "role", role), 1), nil
}
