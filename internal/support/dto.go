package support

import (
	"time"

	"github.com/histolook/go-api-server/internal/model"
)

type CreateSupportRequest struct {
	SupportType string `json:"supportType" binding:"required,oneof=ACCOUNT ARCHIVE JUDGEMENT REPORT ETC"`
	Title       string `json:"title" binding:"required,max=30"`
	Content     string `json:"content" binding:"required,max=300"`
}

type ReplySupportRequest struct {
	Reply string `json:"reply" binding:"required,max=1000"`
}

type SupportIDResponse struct {
	SupportID uint32 `json:"supportId"`
}

type SupportSummary struct {
	ID          uint32    `json:"id"`
	SupportType string    `json:"supportType"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newSupportSummary(post model.SupportPost) SupportSummary {
	return SupportSummary{
		ID:          post.ID,
		SupportType: string(post.SupportType),
		Title:       post.Title,
		Status:      string(post.Status),
		CreatedAt:   post.CreatedAt,
	}
}

type SupportResponse struct {
	ID          uint32    `json:"id"`
	MemberID    string    `json:"memberId"`
	SupportType string    `json:"supportType"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Reply       *string   `json:"reply"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newSupportResponse(post model.SupportPost) SupportResponse {
	return SupportResponse{
		ID:          post.ID,
		MemberID:    post.MemberID,
		SupportType: string(post.SupportType),
		Title:       post.Title,
		Content:     post.Content,
		Reply:       post.Reply,
		Status:      string(post.Status),
		CreatedAt:   post.CreatedAt,
	}
}
