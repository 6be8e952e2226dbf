package sdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// AuthResponse is returned by login, registration and password reset.
type AuthResponse struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}

// RegisterRequest creates a local account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest completes the forgot-password flow.
type ResetPasswordRequest struct {
	Code                 string `json:"code"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthClient calls the local-provider auth endpoints. It never changes the
// client's token; Session does that.
type AuthClient struct {
	client *Client
}

// Login exchanges an email or username and a password for a JWT.
func (c *AuthClient) Login(ctx context.Context, identifier, password string) (AuthResponse, error) {
	if c == nil || c.client == nil {
		return AuthResponse{}, fmt.Errorf("sdk: auth client not initialized")
	}
	if err := requireText("identifier", identifier); err != nil {
		return AuthResponse{}, err
	}
	if err := requireText("password", password); err != nil {
		return AuthResponse{}, err
	}
	var out AuthResponse
	err := c.client.Do(ctx, http.MethodPost, routes.AuthLocal, nil, loginRequest{Identifier: identifier, Password: password}, &out)
	return out, err
}

// Register creates an account and returns its first JWT.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if c == nil || c.client == nil {
		return AuthResponse{}, fmt.Errorf("sdk: auth client not initialized")
	}
	if err := requireText("username", req.Username); err != nil {
		return AuthResponse{}, err
	}
	if err := requireEmail("email", req.Email); err != nil {
		return AuthResponse{}, err
	}
	if err := requireText("password", req.Password); err != nil {
		return AuthResponse{}, err
	}
	var out AuthResponse
	err := c.client.Do(ctx, http.MethodPost, routes.AuthRegister, nil, req, &out)
	return out, err
}

// ForgotPassword asks the server to email a reset code.
func (c *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: auth client not initialized")
	}
	if err := requireEmail("email", email); err != nil {
		return err
	}
	return c.client.Do(ctx, http.MethodPost, routes.AuthForgotPassword, nil, map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using the emailed code.
func (c *AuthClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) (AuthResponse, error) {
	if c == nil || c.client == nil {
		return AuthResponse{}, fmt.Errorf("sdk: auth client not initialized")
	}
	if err := requireText("code", req.Code); err != nil {
		return AuthResponse{}, err
	}
	if err := requireText("password", req.Password); err != nil {
		return AuthResponse{}, err
	}
	if req.Password != req.PasswordConfirmation {
		return AuthResponse{}, ValidationError{Field: "passwordConfirmation", Reason: "passwords do not match"}
	}
	var out AuthResponse
	err := c.client.Do(ctx, http.MethodPost, routes.AuthResetPassword, nil, req, &out)
	return out, err
}

// UserUpdate changes profile fields. Nil fields are left alone.
type UserUpdate struct {
	Username *string  `json:"username,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
}

// UsersClient reads and updates the signed-in user. Both calls need a token.
type UsersClient struct {
	client *Client
}

// Me returns the signed-in user with relations populated.
func (c *UsersClient) Me(ctx context.Context) (User, error) {
	if c == nil || c.client == nil {
		return User{}, fmt.Errorf("sdk: users client not initialized")
	}
	var out User
	err := c.client.Do(ctx, http.MethodGet, routes.UsersMe, query.New().Populate("*"), nil, &out)
	return out, err
}

// UpdateMe applies update to the signed-in user and returns the result.
func (c *UsersClient) UpdateMe(ctx context.Context, update UserUpdate) (User, error) {
	if c == nil || c.client == nil {
		return User{}, fmt.Errorf("sdk: users client not initialized")
	}
	if update.Email != nil {
		if err := requireEmail("email", *update.Email); err != nil {
			return User{}, err
		}
	}
	var out User
	err := c.client.Do(ctx, http.MethodPut, routes.UsersMe, nil, update, &out)
	return out, err
}
