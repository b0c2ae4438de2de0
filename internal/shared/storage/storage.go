package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix 객체 용도별 경로 접두사
type Prefix string

const (
	PrefixArchive Prefix = "archives"
	PrefixProfile Prefix = "profiles"
)

// UploadURLs 발급된 presigned URL 과 저장할 객체 이름 (같은 순서)
type UploadURLs struct {
	URLs        []string `json:"urls"`
	ObjectNames []string `json:"objectNames"`
}

// Storage 객체 저장소 어댑터
// 클라이언트가 보낸 URL 은 절대 저장하지 않고, 여기서 발급한 objectName 으로만 공개 URL 을 만든다
type Storage interface {
	GenerateUploadURLs(ctx context.Context, prefix Prefix, ownerID string, count int, ttl time.Duration) (*UploadURLs, error)
	ObjectNameToPublicURL(objectName string) string
}

// NewObjectName builds "<prefix>/<ownerID>/<uuid>"
func NewObjectName(prefix Prefix, ownerID string) string {
	return fmt.Sprintf("%s/%s/%s", prefix, ownerID, uuid.NewString())
}

// IsOwnedBy reports whether objectName was issued by NewObjectName for this owner
func IsOwnedBy(objectName string, prefix Prefix, ownerID string) bool {
	ownerPrefix := fmt.Sprintf("%s/%s/", prefix, ownerID)
	if !strings.HasPrefix(objectName, ownerPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(objectName, ownerPrefix))
	return err == nil
}

// PublicURL joins a base URL and an object name
func PublicURL(baseURL, objectName string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(objectName, "/")
}
