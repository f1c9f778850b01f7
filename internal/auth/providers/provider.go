package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuthUser is the normalized identity returned by every provider.
type OAuthUser struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

// OAuthProvider abstracts one third-party sign-in backend.
type OAuthProvider interface {
	Name() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	UserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error)
}

// fetchJSON is shared plumbing for the provider user-info endpoints.
func fetchJSON(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, url string, out interface{}) error {
	client := cfg.Client(ctx, token)
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to request %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
