package push

import "context"

// Result 발송 결과. FailedTokens 는 더 이상 유효하지 않아 삭제해야 하는 토큰이다
type Result struct {
	SuccessCount int
	FailureCount int
	FailedTokens []string
}

// Pusher 푸시 알림 발송 어댑터
type Pusher interface {
	SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (*Result, error)
}

// Noop drops every message; used when FCM is not configured
type Noop struct{}

func (Noop) SendToTokens(_ context.Context, tokens []string, _, _ string, _ map[string]string) (*Result, error) {
	return &Result{}, nil
}
