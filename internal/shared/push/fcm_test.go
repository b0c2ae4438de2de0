package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	unregisteredBody = `{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND",
		"details":[{"@type":"type.googleapis.com/google.firebase.fcm.v1.FcmError","errorCode":"UNREGISTERED"}]}}`
	badTokenBody = `{"error":{"code":400,"message":"The registration token is not a valid FCM registration token","status":"INVALID_ARGUMENT",
		"details":[{"@type":"type.googleapis.com/google.firebase.fcm.v1.FcmError","errorCode":"INVALID_ARGUMENT"},
		{"@type":"type.googleapis.com/google.rpc.BadRequest","fieldViolations":[{"field":"message.token","description":"Invalid registration token"}]}]}}`
	badPayloadBody = `{"error":{"code":400,"message":"Invalid value at 'message.data'","status":"INVALID_ARGUMENT",
		"details":[{"@type":"type.googleapis.com/google.rpc.BadRequest","fieldViolations":[{"field":"message.data","description":"Invalid value"}]}]}}`
)

func TestFCMPusher_SendToTokens(t *testing.T) {
	// Given: FCM stub that rejects "stale-token" as unregistered and fails "flaky-token" with 500
	var received []fcmRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload fcmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received = append(received, payload)

		switch payload.Message.Token {
		case "stale-token":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(unregisteredBody))
		case "flaky-token":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	pusher := NewFCMPusherWithClient(server.Client(), server.URL)

	// When
	result, err := pusher.SendToTokens(context.Background(),
		[]string{"good-token", "stale-token", "flaky-token"},
		"새 판정", "누군가 아카이브를 판정했습니다.", map[string]string{"archiveId": "a1"})

	// Then
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	assert.Equal(t, []string{"stale-token"}, result.FailedTokens)

	require.Len(t, received, 3)
	assert.Equal(t, "새 판정", received[0].Message.Notification.Title)
	assert.Equal(t, "a1", received[0].Message.Data["archiveId"])
}

func TestFCMPusher_OnlyTokenErrorsMarkTokensFailed(t *testing.T) {
	// Given: every request answers 400, but only one names the token as the problem
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload fcmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.WriteHeader(http.StatusBadRequest)
		switch payload.Message.Token {
		case "malformed-token":
			_, _ = w.Write([]byte(badTokenBody))
		case "valid-token":
			_, _ = w.Write([]byte(badPayloadBody))
		default:
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer server.Close()

	pusher := NewFCMPusherWithClient(server.Client(), server.URL)

	// When
	result, err := pusher.SendToTokens(context.Background(),
		[]string{"malformed-token", "valid-token", "other-token"}, "제목", "본문", nil)

	// Then: payload errors and unreadable bodies keep the token
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 3, result.FailureCount)
	assert.Equal(t, []string{"malformed-token"}, result.FailedTokens)
}
