package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-api/internal/apperr"
	"menu-api/internal/models"
)

type loginData struct {
	Role     string `json:"role"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

func TestLoginSuperAdmin(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodPost, "/login", "", map[string]any{"username": testSuperUser, "password": testSuperPassword})
	requireCode(t, res, http.StatusOK, apperr.CodeLoginSuccess)

	var data loginData
	res.decode(t, &data)
	assert.Equal(t, models.RoleSuperAdmin, data.Role)
	assert.Equal(t, testSuperUser, data.Username)

	claims, err := s.tokens.Verify(data.Token)
	require.NoError(t, err)
	assert.Equal(t, testSuperUser, claims.Username)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
}

func TestLoginRejections(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		msg    string
	}{
		{"missing password", map[string]any{"username": "someone"}, http.StatusBadRequest, apperr.CodeUsernamePasswordRequired},
		{"wrong super password", map[string]any{"username": testSuperUser, "password": "nope"}, http.StatusUnauthorized, apperr.CodeInvalidCredentials},
		{"unknown user", map[string]any{"username": "ghost", "password": "whatever"}, http.StatusUnauthorized, apperr.CodeInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.do(t, http.MethodPost, "/login", "", tt.body)
			requireCode(t, res, tt.status, tt.msg)
		})
	}
}

func TestAdminAccountLifecycle(t *testing.T) {
	s := newTestServer(t)
	super := s.superToken(t)

	res := s.do(t, http.MethodGet, "/manage", super, nil)
	requireCode(t, res, http.StatusNotFound, apperr.CodeNoAdminsFound)

	res = s.do(t, http.MethodPost, "/manage", super, map[string]any{"username": "editor", "password": "secret123"})
	requireCode(t, res, http.StatusOK, apperr.CodeAdminCreated)
	assert.NotContains(t, string(res.Data), "secret123")
	assert.NotContains(t, strings.ToLower(string(res.Data)), "password")

	res = s.do(t, http.MethodPost, "/manage", super, map[string]any{"username": "editor", "password": "secret123"})
	requireCode(t, res, http.StatusBadRequest, apperr.CodeAdminAlreadyExists)

	res = s.do(t, http.MethodGet, "/manage", super, nil)
	requireCode(t, res, http.StatusOK, apperr.CodeAdminsFetched)
	var listed struct {
		Admins []models.User `json:"admins"`
	}
	res.decode(t, &listed)
	require.Len(t, listed.Admins, 1)
	assert.Equal(t, "editor", listed.Admins[0].Username)
	assert.Equal(t, models.RoleAdmin, listed.Admins[0].Role)

	res = s.do(t, http.MethodPost, "/login", "", map[string]any{"username": "editor", "password": "wrong-pass"})
	requireCode(t, res, http.StatusUnauthorized, apperr.CodeInvalidCredentials)

	res = s.do(t, http.MethodPost, "/login", "", map[string]any{"username": "editor", "password": "secret123"})
	requireCode(t, res, http.StatusOK, apperr.CodeLoginSuccess)
	var login loginData
	res.decode(t, &login)
	assert.Equal(t, models.RoleAdmin, login.Role)

	res = s.do(t, http.MethodPost, "/category", login.Token, map[string]any{"name": "Drinks"})
	requireCode(t, res, http.StatusOK, apperr.CodeCategoryCreated)

	res = s.do(t, http.MethodGet, "/manage", login.Token, nil)
	requireCode(t, res, http.StatusForbidden, apperr.CodeForbidden)

	res = s.do(t, http.MethodDelete, "/manage", super, map[string]any{"username": "editor"})
	requireCode(t, res, http.StatusOK, apperr.CodeAdminDeleted)

	res = s.do(t, http.MethodPost, "/category", login.Token, map[string]any{"name": "Mains"})
	requireCode(t, res, http.StatusUnauthorized, apperr.CodeUnauthorized)

	res = s.do(t, http.MethodDelete, "/manage", super, map[string]any{"username": "editor"})
	requireCode(t, res, http.StatusNotFound, apperr.CodeAdminNotFound)
}

func TestAdminRejections(t *testing.T) {
	s := newTestServer(t)
	super := s.superToken(t)

	tests := []struct {
		name   string
		method string
		body   map[string]any
		status int
		msg    string
	}{
		{"create missing password", http.MethodPost, map[string]any{"username": "editor"}, http.StatusBadRequest, apperr.CodeUsernamePasswordRequired},
		{"create reserved", http.MethodPost, map[string]any{"username": testSuperUser, "password": "secret123"}, http.StatusForbidden, apperr.CodeCannotCreateSuperAdmin},
		{"delete missing username", http.MethodDelete, map[string]any{}, http.StatusBadRequest, apperr.CodeUsernameRequired},
		{"delete reserved", http.MethodDelete, map[string]any{"username": testSuperUser}, http.StatusForbidden, apperr.CodeCannotDeleteSuperAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.do(t, tt.method, "/manage", super, tt.body)
			requireCode(t, res, tt.status, tt.msg)
		})
	}
}
