package providers

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
)

type GitHubProvider struct {
	config *oauth2.Config
}

func NewGitHubProvider(config *oauth2.Config) *GitHubProvider {
	return &GitHubProvider{config: config}
}

func (p *GitHubProvider) Name() string { return "github" }

func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

func (p *GitHubProvider) UserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	var info struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := fetchJSON(ctx, p.config, token, "https://api.github.com/user", &info); err != nil {
		return nil, err
	}
	if info.ID == 0 {
		return nil, fmt.Errorf("github user info missing id")
	}

	// The public profile email may be hidden; fall back to the email API.
	email := info.Email
	if email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := fetchJSON(ctx, p.config, token, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				email = e.Email
				break
			}
		}
	}
	if email == "" {
		return nil, fmt.Errorf("github account has no verified primary email")
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}
	return &OAuthUser{
		ID:        strconv.FormatInt(info.ID, 10),
		Email:     email,
		Name:      name,
		AvatarURL: info.AvatarURL,
	}, nil
}
