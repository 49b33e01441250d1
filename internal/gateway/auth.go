package gateway

import (
	"context"
	"net/http"
	"time"
)

type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
}

type Signup struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

type Session struct {
	User      Account   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register creates an account and stores the returned token on c.
func (c *Client) Register(ctx context.Context, s Signup) (Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", s, &out); err != nil {
		return Session{}, err
	}
	c.Token = out.Token
	return out, nil
}

// Login stores the returned token on c.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return Session{}, err
	}
	c.Token = out.Token
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (Account, error) {
	var out Account
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out, err
}
