package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

/*
GET /healthz
- 503 when the store is down
- the cache is optional, so a failing cache is reported but still 200
*/
func Health(st, cc Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			respondWithError(c, route, apperr.Wrap(http.StatusServiceUnavailable, apperr.CodeStoreUnavailable, err), "")
			return
		}

		cacheStatus := "ok"
		if err := cc.Ping(ctx); err != nil {
			logger.Get("app").WithFields(logrus.Fields{
				"route": route,
				"error": err.Error(),
			}).Warn("cache ping failed")
			cacheStatus = "unavailable"
		}
		respondOK(c, apperr.CodeOK, gin.H{"store": "ok", "cache": cacheStatus})
	}
}
