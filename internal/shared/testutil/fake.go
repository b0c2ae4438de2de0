package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/histolook/go-api-server/internal/auth/oauth"
	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/push"
	"github.com/histolook/go-api-server/internal/shared/storage"
)

const (
	// PublicBaseURL is the CDN base used by NewTestConfig and FakeStorage
	PublicBaseURL = "https://cdn.histolook.test"
	uploadBaseURL = "https://upload.histolook.test"
)

// FakeStorage issues deterministic-looking presigned URLs without touching S3
type FakeStorage struct{}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{}
}

func (f *FakeStorage) GenerateUploadURLs(_ context.Context, prefix storage.Prefix, ownerID string, count int, _ time.Duration) (*storage.UploadURLs, error) {
	result := &storage.UploadURLs{
		URLs:        make([]string, 0, count),
		ObjectNames: make([]string, 0, count),
	}
	for i := 0; i < count; i++ {
		objectName := storage.NewObjectName(prefix, ownerID)
		result.URLs = append(result.URLs, storage.PublicURL(uploadBaseURL, objectName)+"?signature=test")
		result.ObjectNames = append(result.ObjectNames, objectName)
	}
	return result, nil
}

func (f *FakeStorage) ObjectNameToPublicURL(objectName string) string {
	return storage.PublicURL(PublicBaseURL, objectName)
}

var _ storage.Storage = (*FakeStorage)(nil)

// ErrFakeProvider is returned by FakeProvider for unknown codes/tokens
var ErrFakeProvider = errors.New("fake provider: rejected")

// FakeProvider maps codes to tokens and tokens to profiles
type FakeProvider struct {
	ProviderName model.Provider
	Codes        map[string]*oauth.Token   // code -> token
	Profiles     map[string]*oauth.Profile // access token -> profile
}

func NewFakeProvider(name model.Provider) *FakeProvider {
	return &FakeProvider{
		ProviderName: name,
		Codes:        map[string]*oauth.Token{},
		Profiles:     map[string]*oauth.Profile{},
	}
}

// Register makes code exchange to accessToken, which resolves to providerID
func (f *FakeProvider) Register(code, accessToken, providerID string) {
	f.Codes[code] = &oauth.Token{AccessToken: accessToken, RefreshToken: "refresh-" + accessToken}
	f.Profiles[accessToken] = &oauth.Profile{ProviderID: providerID}
}

func (f *FakeProvider) Name() model.Provider {
	return f.ProviderName
}

func (f *FakeProvider) ExchangeCode(_ context.Context, code string) (*oauth.Token, error) {
	if token, ok := f.Codes[code]; ok {
		return token, nil
	}
	return nil, ErrFakeProvider
}

func (f *FakeProvider) FetchProfile(_ context.Context, accessToken string) (*oauth.Profile, error) {
	if profile, ok := f.Profiles[accessToken]; ok {
		return profile, nil
	}
	return nil, ErrFakeProvider
}

var _ oauth.Provider = (*FakeProvider)(nil)

// SentPush records one FakePusher call
type SentPush struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// FakePusher records pushes; tokens listed in Invalid come back as failed
type FakePusher struct {
	mu      sync.Mutex
	Invalid map[string]bool
	Sent    []SentPush
}

func NewFakePusher(invalidTokens ...string) *FakePusher {
	invalid := make(map[string]bool, len(invalidTokens))
	for _, token := range invalidTokens {
		invalid[token] = true
	}
	return &FakePusher{Invalid: invalid}
}

func (f *FakePusher) SendToTokens(_ context.Context, tokens []string, title, body string, data map[string]string) (*push.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Sent = append(f.Sent, SentPush{Tokens: tokens, Title: title, Body: body, Data: data})

	result := &push.Result{}
	for _, token := range tokens {
		if f.Invalid[token] {
			result.FailureCount++
			result.FailedTokens = append(result.FailedTokens, token)
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

// Calls returns how many times SendToTokens ran
func (f *FakePusher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}

var _ push.Pusher = (*FakePusher)(nil)
