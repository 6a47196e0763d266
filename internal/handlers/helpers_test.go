package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"menu-api/internal/auth"
	"menu-api/internal/cache"
	"menu-api/internal/models"
	"menu-api/internal/store"
)

const (
	testSecret        = "handler-test-secret"
	testSuperUser     = "owner"
	testSuperPassword = "owner-password"
)

type testServer struct {
	router *gin.Engine
	store  *store.Memory
	tokens *auth.TokenService
}

type response struct {
	Status int
	Msg    string          `json:"msg"`
	IsOk   bool            `json:"isOk"`
	Data   json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithCache(t, cache.Noop{})
}

func newTestServerWithCache(t *testing.T, cc cache.Cache) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		router: gin.New(),
		store:  store.NewMemory(),
		tokens: auth.NewTokenService(testSecret, time.Hour),
	}
	RegisterRoutes(s.router, Deps{
		Store:      s.store,
		Cache:      cc,
		Tokens:     s.tokens,
		SuperAdmin: SuperAdmin{Username: testSuperUser, Password: testSuperPassword},
	})
	return s
}

func (s *testServer) superToken(t *testing.T) string {
	t.Helper()
	token, err := s.tokens.Issue(testSuperUser, models.RoleSuperAdmin)
	require.NoError(t, err)
	return token
}

// adminToken creates an ADMIN account directly in the store and returns a
// token for it.
func (s *testServer) adminToken(t *testing.T, username string) string {
	t.Helper()
	err := s.store.CreateUser(t.Context(), &models.User{Username: username, PasswordHash: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	token, err := s.tokens.Issue(username, models.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()
	return s.doContext(t, context.Background(), method, path, token, body)
}

func (s *testServer) doContext(t *testing.T, ctx context.Context, method, path, token string, body any) response {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var res response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), "body: %s", w.Body.String())
	res.Status = w.Code
	return res
}

func (r response) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dst))
}

// pngDataURI encodes a w x h gradient as a PNG data URI.
func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// imageWidth decodes a stored data URI and returns its width.
func imageWidth(t *testing.T, dataURI string) int {
	t.Helper()
	i := strings.IndexByte(dataURI, ',')
	require.GreaterOrEqual(t, i, 0)
	raw, err := base64.StdEncoding.DecodeString(dataURI[i+1:])
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	return cfg.Width
}

func requireCode(t *testing.T, res response, status int, msg string) {
	t.Helper()
	require.Equal(t, msg, res.Msg, "status %d", res.Status)
	require.Equal(t, status, res.Status)
	require.Equal(t, status == http.StatusOK, res.IsOk)
}
