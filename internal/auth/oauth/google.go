package oauth

import (
	"context"
	"fmt"

	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleProfileURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type Google struct {
	config     *oauth2.Config
	profileURL string
}

func NewGoogle(cfg config.OAuthProviderConfig) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email"},
		},
		profileURL: googleProfileURL,
	}
}

func (g *Google) Name() model.Provider {
	return model.ProviderGoogle
}

func (g *Google) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	return exchange(ctx, g.config, code)
}

type googleProfile struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

func (g *Google) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	var profile googleProfile
	if err := getJSON(ctx, client, g.profileURL, &profile); err != nil {
		return nil, fmt.Errorf("google profile: %w", err)
	}
	if profile.Sub == "" {
		return nil, fmt.Errorf("google profile: %w", ErrProfileRejected)
	}

	return &Profile{ProviderID: profile.Sub, Email: stringPtr(profile.Email)}, nil
}
