package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	// ErrRevokedToken marks a token issued before the last logout or
	// password change.
	ErrRevokedToken = errors.New("token revoked")
)

const bearerPrefix = "bearer "

// Authenticate resolves an Authorization header value to its claims. A nil
// repo skips the revocation check.
func Authenticate(ctx context.Context, tokens TokenService, repo *Repo, header string) (*Claims, error) {
	if !strings.HasPrefix(strings.ToLower(header), bearerPrefix) {
		return nil, ErrMissingToken
	}
	claims, err := tokens.Parse(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if err := checkTokenVersion(ctx, repo, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func checkTokenVersion(ctx context.Context, repo *Repo, claims *Claims) error {
	if repo == nil {
		return nil
	}
	current, err := repo.GetTokenVersion(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) || (err == nil && current != claims.TokenVersion) {
		return ErrRevokedToken
	}
	return err
}

// AuthMiddleware rejects requests that do not carry a valid, unrevoked
// bearer token and stores the claims on the context.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := Authenticate(c.Request.Context(), tokens, repo, c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, ErrMissingToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
