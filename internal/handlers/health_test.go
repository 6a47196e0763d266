package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-api/internal/apperr"
	"menu-api/internal/cache"
)

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("no primary") }

type healthData struct {
	Store string `json:"store"`
	Cache string `json:"cache"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	res := s.do(t, http.MethodGet, "/healthz", "", nil)
	requireCode(t, res, http.StatusOK, apperr.CodeOK)
	var data healthData
	res.decode(t, &data)
	assert.Equal(t, healthData{Store: "ok", Cache: "ok"}, data)
}

func TestHealthStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", Health(downPinger{}, cache.Noop{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), apperr.CodeStoreUnavailable)
}

func TestHealthReportsCacheDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedis("redis://"+mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	s := newTestServerWithCache(t, rc)
	mr.Close()

	res := s.do(t, http.MethodGet, "/healthz", "", nil)
	requireCode(t, res, http.StatusOK, apperr.CodeOK)
	var data healthData
	res.decode(t, &data)
	assert.Equal(t, healthData{Store: "ok", Cache: "unavailable"}, data)
}
