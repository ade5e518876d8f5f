package api

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/notesia/notesia/internal/models"
)

// RegisterParams carries the registration form fields. Username and
// FullName are optional; see Register for how they are derived.
type RegisterParams struct {
	Email     string
	Password  string
	Username  string
	FullName  string
	FirstName string
	LastName  string
}

// RegisterResult is the server's reply to a successful registration.
type RegisterResult struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

// Register creates a new account. When no username is given it is derived
// from the local part of the email; when no full name is given it is built
// from the first and last name joined by a single space.
func (c *Client) Register(ctx context.Context, p RegisterParams) (*RegisterResult, error) {
	username := p.Username
	if username == "" {
		username = p.Email
		if at := strings.Index(p.Email, "@"); at >= 0 {
			username = p.Email[:at]
		}
	}
	fullName := p.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}

	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body: registerRequest{
			Email:    p.Email,
			Password: p.Password,
			FullName: fullName,
			Username: username,
		},
	})
	if err != nil {
		return nil, err
	}

	var res RegisterResult
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login exchanges credentials for a bearer token and persists it, together
// with the email, in the session store.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Token, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}

	var tok models.Token
	if err := decode(raw, &tok); err != nil {
		return nil, err
	}
	if err := c.session.Establish(tok.AccessToken, email); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Profile fetches the authenticated user's account data.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	raw, err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", auth: true})
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := decode(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout revokes the token server-side on a best-effort basis and always
// clears the local session. A failed revocation does not block the clear.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", auth: true}); err != nil && err != ErrSessionExpired {
		c.log.Warn("server-side logout failed", zap.Error(err))
	}
	return c.session.Clear()
}
