package providers

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

type DiscordProvider struct {
	config *oauth2.Config
}

func NewDiscordProvider(config *oauth2.Config) *DiscordProvider {
	return &DiscordProvider{config: config}
}

func (p *DiscordProvider) Name() string { return "discord" }

func (p *DiscordProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *DiscordProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

func (p *DiscordProvider) UserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	var info struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
		Verified bool   `json:"verified"`
	}
	if err := fetchJSON(ctx, p.config, token, "https://discord.com/api/users/@me", &info); err != nil {
		return nil, err
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("discord user info missing id or email")
	}

	avatarURL := ""
	if info.Avatar != "" {
		avatarURL = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", info.ID, info.Avatar)
	}
	return &OAuthUser{
		ID:        info.ID,
		Email:     info.Email,
		Name:      info.Username,
		AvatarURL: avatarURL,
	}, nil
}
