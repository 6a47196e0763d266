package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/cache"
	"menu-api/internal/logger"
)

// Cache failures are logged and otherwise ignored; the store stays the
// source of truth.

func cacheGet(c *gin.Context, cc cache.Cache, key string, dst any) bool {
	err := cc.Get(c.Request.Context(), key, dst)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		logCacheError(key, "get", err)
	}
	return false
}

func cacheSet(c *gin.Context, cc cache.Cache, key string, v any) {
	if err := cc.Set(c.Request.Context(), key, v); err != nil {
		logCacheError(key, "set", err)
	}
}

// cacheInvalidate drops key after a write, trying twice. If both attempts
// fail the stale entry lives until its TTL.
func cacheInvalidate(c *gin.Context, cc cache.Cache, key string) {
	err := cc.Delete(c.Request.Context(), key)
	if err == nil {
		return
	}
	logCacheError(key, "delete", err)
	if err := cc.Delete(c.Request.Context(), key); err != nil {
		logger.Get("app").WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Error("cache entry left stale until ttl")
	}
}

func logCacheError(key, op string, err error) {
	logger.Get("app").WithFields(logrus.Fields{
		"key":   key,
		"op":    op,
		"error": err.Error(),
	}).Warn("cache unavailable")
}
