package oauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/model"
	"golang.org/x/oauth2"
)

const kakaoProfileURL = "https://kapi.kakao.com/v2/user/me"

var kakaoEndpoint = oauth2.Endpoint{
	AuthURL:   "https://kauth.kakao.com/oauth/authorize",
	TokenURL:  "https://kauth.kakao.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

type Kakao struct {
	config     *oauth2.Config
	profileURL string
}

func NewKakao(cfg config.OAuthProviderConfig) *Kakao {
	return &Kakao{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     kakaoEndpoint,
		},
		profileURL: kakaoProfileURL,
	}
}

func (k *Kakao) Name() model.Provider {
	return model.ProviderKakao
}

func (k *Kakao) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	return exchange(ctx, k.config, code)
}

type kakaoProfile struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email string `json:"email"`
	} `json:"kakao_account"`
}

func (k *Kakao) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	var profile kakaoProfile
	if err := getJSON(ctx, client, k.profileURL, &profile); err != nil {
		return nil, fmt.Errorf("kakao profile: %w", err)
	}
	if profile.ID == 0 {
		return nil, fmt.Errorf("kakao profile: %w", ErrProfileRejected)
	}

	return &Profile{
		ProviderID: strconv.FormatInt(profile.ID, 10),
		Email:      stringPtr(profile.KakaoAccount.Email),
	}, nil
}

func exchange(ctx context.Context, cfg *oauth2.Config, code string) (*Token, error) {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("exchange code: %w: %s", ErrProfileRejected, retrieveErr.ErrorCode)
		}
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return &Token{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}
