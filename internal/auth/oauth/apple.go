package oauth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/histolook/go-api-server/internal/model"
)

const (
	appleIssuer  = "https://appleid.apple.com"
	appleKeysURL = "https://appleid.apple.com/auth/keys"
)

// Apple verifies identity tokens issued by Sign in with Apple.
// The app sends the identity token as its social access token, so there is
// no authorization code to exchange.
type Apple struct {
	clientID string
	keysURL  string
	client   *http.Client

	mu   sync.Mutex
	keys map[string]*rsa.PublicKey
}

func NewApple(clientID string) *Apple {
	return &Apple{
		clientID: clientID,
		keysURL:  appleKeysURL,
		client:   &http.Client{Timeout: 5 * time.Second},
		keys:     map[string]*rsa.PublicKey{},
	}
}

func (a *Apple) Name() model.Provider {
	return model.ProviderApple
}

func (a *Apple) ExchangeCode(context.Context, string) (*Token, error) {
	return nil, ErrCodeExchangeUnsupported
}

type appleClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (a *Apple) FetchProfile(ctx context.Context, identityToken string) (*Profile, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithIssuer(appleIssuer),
		jwt.WithAudience(a.clientID),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(identityToken, &appleClaims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		return a.publicKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("apple identity token: %w: %v", ErrProfileRejected, err)
	}

	claims, ok := token.Claims.(*appleClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("apple identity token: %w", ErrProfileRejected)
	}

	return &Profile{ProviderID: claims.Subject, Email: stringPtr(claims.Email)}, nil
}

// publicKey returns the signing key for kid, refetching the key set once on a miss
func (a *Apple) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if key, ok := a.keys[kid]; ok {
		return key, nil
	}

	keys, err := a.fetchKeys(ctx)
	if err != nil {
		return nil, err
	}
	a.keys = keys

	key, ok := a.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return key, nil
}

type jwkSet struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (a *Apple) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	var set jwkSet
	if err := getJSON(ctx, a.client, a.keysURL, &set); err != nil {
		return nil, fmt.Errorf("apple keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		key, err := parseRSAKey(k.N, k.E)
		if err != nil {
			return nil, fmt.Errorf("apple key %s: %w", k.Kid, err)
		}
		keys[k.Kid] = key
	}
	if len(keys) == 0 {
		return nil, errors.New("apple keys: empty key set")
	}
	return keys, nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
