// Package store persists menu documents. Mongo is the production backend;
// Memory keeps the same semantics in process for tests and local runs.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"menu-api/internal/merge"
	"menu-api/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	FindCategory(ctx context.Context, name, lang string) (models.Category, error)
	// CategoryExists matches the name in any language.
	CategoryExists(ctx context.Context, name string) (bool, error)
	ListCategories(ctx context.Context, lang string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, u merge.Update) (models.Category, error)
	DeleteCategory(ctx context.Context, name, lang string) (int64, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	FindProduct(ctx context.Context, name string) (models.Product, error)
	// ListProducts returns products whose category is one of categories.
	ListProducts(ctx context.Context, categories []string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, u merge.Update) (models.Product, error)
	DeleteProduct(ctx context.Context, name string) (int64, error)
	DeleteProductsByCategory(ctx context.Context, category string) (int64, error)
}

type ContentStore interface {
	// EnsureContent inserts the default document for lang unless one
	// exists. Concurrent calls create at most one document.
	EnsureContent(ctx context.Context, lang string) error
	FindContent(ctx context.Context, lang string) (models.Content, error)
	UpdateContent(ctx context.Context, lang string, u merge.Update) (models.Content, error)
}

type ThemeStore interface {
	EnsureTheme(ctx context.Context) error
	FindTheme(ctx context.Context) (models.Theme, error)
	UpdateTheme(ctx context.Context, u merge.Update) (models.Theme, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUser(ctx context.Context, username, role string) (models.User, error)
	ListUsers(ctx context.Context, role string) ([]models.User, error)
	DeleteUser(ctx context.Context, username, role string) (int64, error)
}

type Store interface {
	CategoryStore
	ProductStore
	ContentStore
	ThemeStore
	UserStore
	Ping(ctx context.Context) error
}
