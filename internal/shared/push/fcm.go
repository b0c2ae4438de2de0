package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"golang.org/x/oauth2/google"
)

const (
	fcmScope       = "https://www.googleapis.com/auth/firebase.messaging"
	fcmEndpointFmt = "https://fcm.googleapis.com/v1/projects/%s/messages:send"
)

// FCMPusher sends one HTTP v1 request per token with a service-account token source
type FCMPusher struct {
	client   *http.Client
	endpoint string
}

// NewFCMPusher reads the service account JSON and builds an authorized client
func NewFCMPusher(ctx context.Context, cfg config.PushConfig) (*FCMPusher, error) {
	credentials, err := os.ReadFile(cfg.FCMCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read fcm credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("parse fcm credentials: %w", err)
	}

	client := jwtConfig.Client(ctx)
	client.Timeout = time.Duration(cfg.FCMRequestTimeoutSecs) * time.Second

	slog.Info("FCM pusher 초기화", "project_id", cfg.FCMProjectID)
	return NewFCMPusherWithClient(client, fmt.Sprintf(fcmEndpointFmt, cfg.FCMProjectID)), nil
}

// NewFCMPusherWithClient uses an already authorized client
func NewFCMPusherWithClient(client *http.Client, endpoint string) *FCMPusher {
	return &FCMPusher{client: client, endpoint: endpoint}
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// fcmErrorResponse is the google.rpc.Status body FCM returns on failure
type fcmErrorResponse struct {
	Error struct {
		Status  string           `json:"status"`
		Message string           `json:"message"`
		Details []fcmErrorDetail `json:"details"`
	} `json:"error"`
}

type fcmErrorDetail struct {
	ErrorCode       string `json:"errorCode"`
	FieldViolations []struct {
		Field string `json:"field"`
	} `json:"fieldViolations"`
}

const fcmTokenField = "message.token"

// isStaleToken is true for UNREGISTERED and for INVALID_ARGUMENT pointing at
// message.token; any other error says nothing about the token itself
func (r *fcmErrorResponse) isStaleToken() bool {
	if r == nil {
		return false
	}
	for _, detail := range r.Error.Details {
		if detail.ErrorCode == "UNREGISTERED" {
			return true
		}
		for _, violation := range detail.FieldViolations {
			if violation.Field == fcmTokenField {
				return true
			}
		}
	}
	return false
}

func (p *FCMPusher) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (*Result, error) {
	log := logger.FromContext(ctx)
	result := &Result{}

	for _, token := range tokens {
		status, fcmErr, err := p.send(ctx, fcmRequest{Message: fcmMessage{
			Token:        token,
			Notification: fcmNotification{Title: title, Body: body},
			Data:         data,
		}})
		if err != nil {
			// 전송 자체가 실패한 경우 토큰 문제로 볼 수 없다
			result.FailureCount++
			log.Warn("FCM 전송 실패", "token", logger.MaskToken(token), "error", err)
			continue
		}

		switch {
		case status >= 200 && status < 300:
			result.SuccessCount++
		case fcmErr.isStaleToken():
			// 만료되었거나 잘못된 토큰
			result.FailureCount++
			result.FailedTokens = append(result.FailedTokens, token)
		default:
			result.FailureCount++
			args := []any{"token", logger.MaskToken(token), "status", status}
			if fcmErr != nil {
				args = append(args, "fcm_status", fcmErr.Error.Status, "fcm_message", fcmErr.Error.Message)
			}
			log.Warn("FCM 응답 오류", args...)
		}
	}

	return result, nil
}

// send returns the HTTP status and, for non-2xx answers, the decoded error body
// (nil when it is not JSON)
func (p *FCMPusher) send(ctx context.Context, payload fcmRequest) (int, *fcmErrorResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal fcm message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send fcm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	var fcmErr fcmErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&fcmErr); err != nil {
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, &fcmErr, nil
}

var _ Pusher = (*FCMPusher)(nil)
