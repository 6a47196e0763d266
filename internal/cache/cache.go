// Package cache holds short-lived copies of the public singleton reads.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("cache: miss")

// Cache stores JSON-serialisable values under string keys.
type Cache interface {
	// Get decodes the value at key into dst. It returns ErrMiss when the
	// key is absent or expired.
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

const ThemeKey = "theme"

func ContentKey(lang string) string {
	return "content:" + lang
}

// Noop never stores anything. It is used when REDIS_URL is unset.
type Noop struct{}

func (Noop) Get(context.Context, string, any) error  { return ErrMiss }
func (Noop) Set(context.Context, string, any) error  { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Ping(context.Context) error              { return nil }
func (Noop) Close() error                            { return nil }

// New returns a Redis cache for url, or Noop when url is empty.
func New(url string, ttl time.Duration) (Cache, error) {
	if url == "" {
		return Noop{}, nil
	}
	return NewRedis(url, ttl)
}
