package restapi

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/user"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for an access token, installs it on the
// client and resolves the acting user.
func (c *Client) Login(ctx context.Context, username, password string) (user.User, error) {
	form := url.Values{}
	form.Set("username", core.CleanString(username, true))
	form.Set("password", password)

	tok := new(tokenResponse)
	if err := c.postForm(ctx, "/auth/token", form, tok); err != nil {
		return user.User{}, errors.Wrap(err, "logging in")
	}
	if err := c.SetToken(tok.AccessToken); err != nil {
		return user.User{}, err
	}
	return c.Me(ctx)
}

// Me fetches the account behind the installed token.
func (c *Client) Me(ctx context.Context) (user.User, error) {
	dto := new(userDTO)
	if err := c.get(ctx, "/auth/users/me", dto); err != nil {
		return user.User{}, errors.Wrap(err, "fetching current user")
	}
	return dto.toModel(), nil
}
