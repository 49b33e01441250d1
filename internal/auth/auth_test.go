package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"musicreg/pkg/database"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Repo, TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenAndMigrate(database.Config{Path: filepath.Join(t.TempDir(), "auth.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepo(db)
	tokens := TokenService{Secret: []byte("test-secret"), Issuer: "musicreg-test", Duration: time.Hour}
	h := NewHandler(repo, tokens)

	r := gin.New()
	h.RegisterRoutes(r.Group("/auth"))
	users := r.Group("/users")
	users.Use(AuthMiddleware(tokens, repo))
	h.RegisterProfileRoutes(users)
	return r, repo, tokens
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler, email, password string) AuthResponse {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Ana", "surname": "Silva", "email": email,
		"phone": "11 99999-0000", "age": 30, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterLoginAndProfile(t *testing.T) {
	r, _, _ := newTestRouter(t)
	created := register(t, r, "Ana@Example.com", "Segredo123")
	require.Equal(t, "ana@example.com", created.User.Email)
	require.NotEmpty(t, created.Token)

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "Segredo123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doRequest(t, r, http.MethodGet, "/users/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, created.User.ID, me.ID)
	require.Equal(t, "Silva", me.Surname)
	require.Equal(t, 30, me.Age)
	require.NotContains(t, w.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)
	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"email": "a@b.co", "password": "Segredo123"}},
		{"bad email", gin.H{"name": "A", "email": "not-an-email", "password": "Segredo123"}},
		{"negative age", gin.H{"name": "A", "email": "a@b.co", "age": -1, "password": "Segredo123"}},
		{"short password", gin.H{"name": "A", "email": "a@b.co", "password": "Ab1"}},
		{"no digit", gin.H{"name": "A", "email": "a@b.co", "password": "Segredooo"}},
	}
	for _, tc := range cases {
		w := doRequest(t, r, http.MethodPost, "/auth/register", "", tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.name)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _, _ := newTestRouter(t)
	register(t, r, "ana@example.com", "Segredo123")
	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Outra", "email": "ANA@example.com", "password": "Segredo123",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _, _ := newTestRouter(t)
	register(t, r, "ana@example.com", "Segredo123")
	w := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "Errado123"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _, _ := newTestRouter(t)
	resp := register(t, r, "ana@example.com", "Segredo123")

	w := doRequest(t, r, http.MethodPost, "/auth/logout", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/users/me", resp.Token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	r, _, _ := newTestRouter(t)
	resp := register(t, r, "ana@example.com", "Segredo123")

	w := doRequest(t, r, http.MethodPost, "/auth/change-password", resp.Token, gin.H{
		"old_password": "Segredo123", "new_password": "weak",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/auth/change-password", resp.Token, gin.H{
		"old_password": "Segredo123", "new_password": "NovaSenha456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/users/me", resp.Token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "NovaSenha456"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRejectsMissingAndForeignTokens(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doRequest(t, r, http.MethodGet, "/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	other := TokenService{Secret: []byte("other"), Issuer: "musicreg-test", Duration: time.Hour}
	tok, _, err := other.Sign(&User{ID: "x"})
	require.NoError(t, err)
	w = doRequest(t, r, http.MethodGet, "/users/me", tok, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenRoundTrip(t *testing.T) {
	ts := TokenService{Secret: []byte("s"), Issuer: "i", Duration: time.Minute}
	tok, exp, err := ts.Sign(&User{ID: "u1", Name: "Ana", Email: "a@b.co", TokenVersion: 3})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := ts.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, 3, claims.TokenVersion)

	expired := TokenService{Secret: []byte("s"), Issuer: "i", Duration: -time.Minute}
	tok, _, err = expired.Sign(&User{ID: "u1"})
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	require.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("Abcdefg1"))
	require.ErrorIs(t, ValidatePassword("Abc1"), ErrPasswordLength)
	require.ErrorIs(t, ValidatePassword("abcdefg1"), ErrPasswordWeak)
	require.ErrorIs(t, ValidatePassword("ABCDEFG1"), ErrPasswordWeak)
	require.ErrorIs(t, ValidatePassword("Abcdefgh"), ErrPasswordWeak)
	require.ErrorIs(t, ValidatePassword(string(bytes.Repeat([]byte("Ab1"), 30))), ErrPasswordLength)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Ana@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", got)

	for _, bad := range []string{"", "ana", "Ana <ana@example.com>", "@example.com"} {
		_, err := NormalizeEmail(bad)
		require.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}

func TestAuthenticate(t *testing.T) {
	r, repo, tokens := newTestRouter(t)
	created := register(t, r, "bia@example.com", "Segredo123")
	ctx := context.Background()

	claims, err := Authenticate(ctx, tokens, repo, "Bearer "+created.Token)
	require.NoError(t, err)
	require.Equal(t, created.User.ID, claims.UserID)

	_, err = Authenticate(ctx, tokens, repo, created.Token)
	require.ErrorIs(t, err, ErrMissingToken)
	_, err = Authenticate(ctx, tokens, repo, "bearer not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, repo.BumpTokenVersion(ctx, created.User.ID))
	_, err = Authenticate(ctx, tokens, repo, "Bearer "+created.Token)
	require.ErrorIs(t, err, ErrRevokedToken)

	// without a repo only the signature and expiry are checked
	_, err = Authenticate(ctx, tokens, nil, "Bearer "+created.Token)
	require.NoError(t, err)

	ghost, _, err := tokens.Sign(&User{ID: "ghost"})
	require.NoError(t, err)
	_, err = Authenticate(ctx, tokens, repo, "Bearer "+ghost)
	require.ErrorIs(t, err, ErrRevokedToken)
}
