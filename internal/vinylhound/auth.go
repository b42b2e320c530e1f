package vinylhound

import (
	"context"
	"net/http"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

// Credentials identify a user at signup or login. Content seeds the profile
// on signup and is ignored by Login.
type Credentials struct {
	Username string
	Password string
	Content  []string
}

// AuthResult is what the auth endpoints hand back.
type AuthResult struct {
	Token    string
	Username string
}

type credentialsPayload struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Content  []string `json:"content,omitempty"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, creds Credentials) (AuthResult, error) {
	return c.authenticate(ctx, creds, []string{"/v1/auth/signup", "/signup"}, true)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	return c.authenticate(ctx, creds, []string{"/v1/auth/login", "/login"}, false)
}

func (c *Client) authenticate(ctx context.Context, creds Credentials, paths []string, withContent bool) (AuthResult, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return AuthResult{}, invalid("username", "must not be empty")
	}
	if creds.Password == "" {
		return AuthResult{}, invalid("password", "must not be empty")
	}
	payload := credentialsPayload{Username: username, Password: creds.Password}
	if withContent {
		payload.Content = creds.Content
	}
	body, err := marshalBody(payload)
	if err != nil {
		return AuthResult{}, err
	}
	value, err := c.RequestWithFallback(ctx, http.MethodPost, paths, RequestOptions{Body: body})
	if err != nil {
		return AuthResult{}, err
	}
	return authResult(value, username), nil
}

func authResult(v catalog.Value, username string) AuthResult {
	res := AuthResult{Username: username}
	for _, source := range []catalog.Value{v, v.Field("data")} {
		for _, name := range []string{"token", "access_token", "accessToken", "jwt"} {
			if token, ok := source.Field(name).Text(); ok && res.Token == "" {
				res.Token = token
			}
		}
		if name, ok := source.Path("user", "username").Text(); ok {
			res.Username = name
		} else if name, ok := source.Field("username").Text(); ok {
			res.Username = name
		}
	}
	return res
}

// FetchContent returns the profile content lines of the signed-in user.
func (c *Client) FetchContent(ctx context.Context, token string) ([]string, error) {
	if err := requireToken(token, "load profile content"); err != nil {
		return nil, err
	}
	value, err := c.RequestWithFallback(ctx, http.MethodGet, contentPaths, RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizeContent(value), nil
}

// UpdateContent replaces the profile content and returns the stored lines.
func (c *Client) UpdateContent(ctx context.Context, token string, content []string) ([]string, error) {
	if err := requireToken(token, "update profile content"); err != nil {
		return nil, err
	}
	if content == nil {
		content = []string{}
	}
	body, err := marshalBody(map[string][]string{"content": content})
	if err != nil {
		return nil, err
	}
	value, err := c.RequestWithFallback(ctx, http.MethodPut, contentPaths, RequestOptions{Body: body, Token: token})
	if err != nil {
		return nil, err
	}
	if value.IsNull() {
		return content, nil
	}
	return catalog.NormalizeContent(value), nil
}

var contentPaths = []string{"/v1/users/profile", "/v1/users/content"}
