package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-api/internal/apperr"
	"menu-api/internal/cache"
	"menu-api/internal/models"
)

func getContent(t *testing.T, s *testServer, lang string) models.Content {
	t.Helper()
	res := s.do(t, http.MethodGet, "/content?lang_abbr="+lang, "", nil)
	requireCode(t, res, http.StatusOK, apperr.CodeContentFetched)
	var body struct {
		Content models.Content `json:"content"`
	}
	res.decode(t, &body)
	return body.Content
}

// undecodable is a base64 payload that is not an image, so compression
// keeps it as is and its size is len*3/4 bytes.
func undecodable(mb float64) string {
	return "data:image/png;base64," + strings.Repeat("A", int(mb*1024*1024*4/3))
}

func TestGetContentProvisionsOncePerLanguage(t *testing.T) {
	s := newTestServer(t)

	first := getContent(t, s, "en")
	second := getContent(t, s, "en")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "en", first.LangAbbr)
	assert.Empty(t, first.HeaderImages)
	assert.Empty(t, first.InfoBar.Allergies)

	ar := getContent(t, s, "")
	assert.Equal(t, models.LangArabic, ar.LangAbbr)
	assert.NotEqual(t, first.ID, ar.ID)
}

func TestUpdateContentMergesLeaves(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t, "editor")

	res := s.do(t, http.MethodPut, "/content", token, map[string]any{
		"lang_abbr": "en",
		"name":      "Blue Door",
		"info_bar": map[string]any{
			"contact": map[string]any{"phone_number": "+100", "whatsapp_number": "+200"},
			"social_links": map[string]any{
				"instagram": "https://instagram.com/bluedoor",
			},
		},
	})
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)

	res = s.do(t, http.MethodPut, "/content", token, map[string]any{
		"lang_abbr": "en",
		"info_bar":  map[string]any{"contact": map[string]any{"email": "hi@bluedoor.test"}},
	})
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)

	got := getContent(t, s, "en")
	assert.Equal(t, "Blue Door", got.Name)
	assert.Equal(t, models.Contact{
		PhoneNumber:    "+100",
		WhatsappNumber: "+200",
		Email:          "hi@bluedoor.test",
	}, got.InfoBar.Contact)
	assert.Equal(t, "https://instagram.com/bluedoor", got.InfoBar.SocialLinks.Instagram)

	assert.Empty(t, getContent(t, s, "ar").Name)
}

func TestUpdateContentReplacesArrays(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)

	res := s.do(t, http.MethodPut, "/content", token, map[string]any{
		"header_images": []string{"data:image/png;base64,AAAA", "data:image/png;base64,BBBB"},
		"info_bar": map[string]any{
			"allergies": []string{"GLUTEN", "MILK"},
			"locations": []map[string]any{{"place": "Downtown"}},
		},
	})
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)

	res = s.do(t, http.MethodPut, "/content", token, map[string]any{
		"header_images": []string{"data:image/png;base64,CCCC"},
		"info_bar":      map[string]any{"allergies": []string{"NUTS"}},
	})
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)

	got := getContent(t, s, "ar")
	assert.Equal(t, []string{"data:image/png;base64,CCCC"}, got.HeaderImages)
	assert.Equal(t, []string{"NUTS"}, got.InfoBar.Allergies)
	require.Len(t, got.InfoBar.Locations, 1)
	assert.Equal(t, "Downtown", got.InfoBar.Locations[0].Place)
}

func TestUpdateContentClearsBackground(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)

	res := s.do(t, http.MethodPut, "/content", token, map[string]any{"bg_image": "data:image/png;base64,AAAA"})
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)
	assert.Equal(t, "data:image/png;base64,AAAA", getContent(t, s, "ar").BgImage)

	res = s.do(t, http.MethodPut, "/content", token, `{"bg_image":null}`)
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)
	assert.Empty(t, getContent(t, s, "ar").BgImage)
}

func TestUpdateContentRejections(t *testing.T) {
	s := newTestServer(t)
	token := s.superToken(t)

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{"empty body", map[string]any{}, apperr.CodeAtLeastOneFieldRequired},
		{"only empty strings", map[string]any{"name": "", "info_bar": map[string]any{"info": ""}}, apperr.CodeAtLeastOneFieldRequired},
		{"bad language", map[string]any{"lang_abbr": "xx", "name": "A"}, apperr.CodeInvalidLangAbbr},
		{"unknown allergy", map[string]any{"info_bar": map[string]any{"allergies": []string{"POLLEN"}}}, apperr.CodeInvalidAllergies},
		{"logo too large", map[string]any{"logo": undecodable(1.5)}, apperr.CodeLogoSizeExceeds1MB},
		{"header too large", map[string]any{"header_images": []string{"data:image/png;base64,AAAA", undecodable(4.5)}}, apperr.CodeHeaderImageSizeExceeds4M},
		{"background too large", map[string]any{"bg_image": undecodable(4.5)}, apperr.CodeBgImageSizeExceeds4MB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.do(t, http.MethodPut, "/content", token, tt.body)
			requireCode(t, res, http.StatusBadRequest, tt.msg)
		})
	}
}

func TestContentCacheInvalidatedOnUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedis("redis://"+mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	s := newTestServerWithCache(t, rc)
	token := s.superToken(t)

	getContent(t, s, "en")
	assert.True(t, mr.Exists("menu:"+cache.ContentKey("en")))

	res := s.do(t, http.MethodPut, "/content", token, map[string]any{"lang_abbr": "en", "name": "Cached"})
	requireCode(t, res, http.StatusOK, apperr.CodeContentUpdated)
	assert.False(t, mr.Exists("menu:"+cache.ContentKey("en")))

	assert.Equal(t, "Cached", getContent(t, s, "en").Name)
}
