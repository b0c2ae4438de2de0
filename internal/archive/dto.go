package archive

import (
	"time"

	"github.com/histolook/go-api-server/internal/model"
)

const MaxImages = 5

type UploadURLsQuery struct {
	Count int `form:"count" binding:"required,min=1,max=5"`
}

// ArchiveRequest is shared by create and update (update is a full replace).
// Images are object names issued by the upload-url endpoint; on update the
// archive's current image URLs are accepted as well.
type ArchiveRequest struct {
	Brand                 string   `json:"brand" binding:"required"`
	Timeline              string   `json:"timeline" binding:"required"`
	Category              string   `json:"category" binding:"required"`
	Story                 string   `json:"story" binding:"max=2000"`
	Images                []string `json:"images" binding:"required,min=1,max=5,dive,required"`
	IsJudgementAllow      *bool    `json:"isJudgementAllow" binding:"required"`
	IsPriceJudgementAllow *bool    `json:"isPriceJudgementAllow" binding:"required"`
}

type ArchiveIDResponse struct {
	ArchiveID string `json:"archiveId"`
}

type ListQuery struct {
	Brand    string `form:"brand"`
	Timeline string `form:"timeline"`
	Category string `form:"category"`
}

type CommentQuery struct {
	IsArchive *bool `form:"isArchive"`
}

type ArchiveSummary struct {
	ID                    string    `json:"id"`
	ThumbnailURL          string    `json:"thumbnailUrl"`
	Brand                 string    `json:"brand"`
	Timeline              string    `json:"timeline"`
	Category              string    `json:"category"`
	AverageJudgementPrice *int      `json:"averageJudgementPrice"`
	CreatedAt             time.Time `json:"createdAt"`
}

func newArchiveSummary(archive model.Archive) ArchiveSummary {
	var thumbnail string
	if len(archive.ImageURLs) > 0 {
		thumbnail = archive.ImageURLs[0]
	}
	return ArchiveSummary{
		ID:                    archive.ID,
		ThumbnailURL:          thumbnail,
		Brand:                 archive.Brand.Name,
		Timeline:              archive.Timeline.Name,
		Category:              archive.Category.Name,
		AverageJudgementPrice: archive.AverageJudgementPrice,
		CreatedAt:             archive.CreatedAt,
	}
}

type AuthorResponse struct {
	ID       string  `json:"id"`
	Nickname string  `json:"nickname"`
	ImageURL *string `json:"imageUrl"`
}

type JudgementCounts struct {
	Archive   int64 `json:"archive"`
	DeArchive int64 `json:"deArchive"`
}

type ArchiveDetailResponse struct {
	ID                    string           `json:"id"`
	Author                AuthorResponse   `json:"author"`
	Brand                 string           `json:"brand"`
	Timeline              string           `json:"timeline"`
	Category              string           `json:"category"`
	Story                 string           `json:"story"`
	ImageURLs             []string         `json:"imageUrls"`
	IsJudgementAllow      bool             `json:"isJudgementAllow"`
	IsPriceJudgementAllow bool             `json:"isPriceJudgementAllow"`
	AverageJudgementPrice *int             `json:"averageJudgementPrice"`
	JudgementCounts       JudgementCounts  `json:"judgementCounts"`
	MyJudgement           *CommentResponse `json:"myJudgement"`
	ArchiveComment        *CommentResponse `json:"archiveComment"`
	DeArchiveComment      *CommentResponse `json:"deArchiveComment"`
	IsInterested          bool             `json:"isInterested"`
	IsAuthor              bool             `json:"isAuthor"`
	CreatedAt             time.Time        `json:"createdAt"`
}

type JudgementRequest struct {
	IsArchive *bool   `json:"isArchive" binding:"required"`
	Comment   *string `json:"comment" binding:"omitempty,max=300"`
	Price     *int    `json:"price"`
}

type JudgementResponse struct {
	ID                    string  `json:"id"`
	ArchiveID             string  `json:"archiveId"`
	IsArchive             bool    `json:"isArchive"`
	Comment               *string `json:"comment"`
	Price                 *int    `json:"price"`
	AverageJudgementPrice *int    `json:"averageJudgementPrice"`
}

// CommentResponse is one judgement as shown in comment lists
type CommentResponse struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"memberId"`
	Nickname  string    `json:"nickname"`
	ImageURL  *string   `json:"imageUrl"`
	IsArchive bool      `json:"isArchive"`
	Comment   *string   `json:"comment"`
	Price     *int      `json:"price"`
	IsMine    bool      `json:"isMine"`
	CreatedAt time.Time `json:"createdAt"`
}

func newCommentResponse(judgement model.Judgement, viewerID string) CommentResponse {
	return CommentResponse{
		ID:        judgement.ID,
		MemberID:  judgement.MemberID,
		Nickname:  judgement.Member.Nickname,
		ImageURL:  judgement.Member.ImageURL,
		IsArchive: judgement.IsArchive,
		Comment:   judgement.Comment,
		Price:     judgement.Price,
		IsMine:    viewerID != "" && judgement.MemberID == viewerID,
		CreatedAt: judgement.CreatedAt,
	}
}

type InterestResponse struct {
	ArchiveID string `json:"archiveId"`
}
