package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/histolook/go-api-server/internal/model"
)

var (
	// ErrCodeExchangeUnsupported is returned by providers that only accept id tokens
	ErrCodeExchangeUnsupported = errors.New("oauth: code exchange not supported")
	// ErrProfileRejected means the provider refused the access token
	ErrProfileRejected = errors.New("oauth: profile request rejected")
)

// Token 제공자에서 발급받은 토큰
type Token struct {
	AccessToken  string
	RefreshToken string
}

// Profile 제공자 계정 정보
type Profile struct {
	ProviderID string
	Email      *string
}

// Provider adapts one external identity provider
type Provider interface {
	Name() model.Provider
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// Registry looks providers up by name
type Registry map[model.Provider]Provider

// NewRegistry indexes providers by Name()
func NewRegistry(providers ...Provider) Registry {
	registry := make(Registry, len(providers))
	for _, p := range providers {
		registry[p.Name()] = p
	}
	return registry
}

func (r Registry) Get(name model.Provider) (Provider, bool) {
	p, ok := r[name]
	return p, ok
}

func getJSON(ctx context.Context, client *http.Client, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrProfileRejected
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("request %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
