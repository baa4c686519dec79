package source

import (
	"context"
	"fmt"

	"github.com/pagegate/pagegate/internal/core"
)

// ResolveLogin returns the login behind a raw GitHub access token by asking
// the API who the token belongs to.
func (h *Hub) ResolveLogin(ctx context.Context, token string) (string, error) {
	client, err := h.clientFor(core.Authenticated("", token))
	if err != nil {
		return "", err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("resolving token owner: %w", err)
	}
	login := user.GetLogin()
	if login == "" {
		return "", fmt.Errorf("token owner has no login")
	}
	return login, nil
}
