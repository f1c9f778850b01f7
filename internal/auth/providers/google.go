package providers

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(config *oauth2.Config) *GoogleProvider {
	return &GoogleProvider{config: config}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

func (p *GoogleProvider) UserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := fetchJSON(ctx, p.config, token, "https://www.googleapis.com/oauth2/v2/userinfo", &info); err != nil {
		return nil, err
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("google user info missing id or email")
	}
	return &OAuthUser{
		ID:        info.ID,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}
