package auth

import (
	"log/slog"

	"starmap-server/internal/auth/providers"
	"starmap-server/internal/shared/config"

	"golang.org/x/oauth2"
)

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

var githubEndpoint = oauth2.Endpoint{
	AuthURL:  "https://github.com/login/oauth/authorize",
	TokenURL: "https://github.com/login/oauth/access_token",
}

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// OAuthConfig bundles the configured sign-in providers. A provider with no
// client credentials is left nil and its endpoints answer 404.
type OAuthConfig struct {
	Google  providers.OAuthProvider
	GitHub  providers.OAuthProvider
	Discord providers.OAuthProvider
}

// NewOAuthConfig builds providers from the loaded configuration.
func NewOAuthConfig() *OAuthConfig {
	cfg := config.GlobalConfig
	logger := slog.With("component", "oauth", "operation", "setup")

	out := &OAuthConfig{}
	if cfg.GoogleOAuthConfigured() {
		out.Google = providers.NewGoogleProvider(&oauth2.Config{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
			Scopes:       cfg.OAuth.Google.Scopes,
			Endpoint:     googleEndpoint,
		})
	}
	if cfg.GitHubOAuthConfigured() {
		out.GitHub = providers.NewGitHubProvider(&oauth2.Config{
			ClientID:     cfg.OAuth.GitHub.ClientID,
			ClientSecret: cfg.OAuth.GitHub.ClientSecret,
			RedirectURL:  cfg.OAuth.GitHub.RedirectURL,
			Scopes:       cfg.OAuth.GitHub.Scopes,
			Endpoint:     githubEndpoint,
		})
	}
	if cfg.DiscordOAuthConfigured() {
		out.Discord = providers.NewDiscordProvider(&oauth2.Config{
			ClientID:     cfg.OAuth.Discord.ClientID,
			ClientSecret: cfg.OAuth.Discord.ClientSecret,
			RedirectURL:  cfg.OAuth.Discord.RedirectURL,
			Scopes:       cfg.OAuth.Discord.Scopes,
			Endpoint:     discordEndpoint,
		})
	}

	logger.Info("OAuth providers configured",
		"google", out.Google != nil,
		"github", out.GitHub != nil,
		"discord", out.Discord != nil,
	)
	return out
}
