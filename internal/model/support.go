package model

// SupportStatus 문의 처리 상태
type SupportStatus string

const (
	SupportStatusPending  SupportStatus = "대기중"
	SupportStatusAnswered SupportStatus = "답변 완료"
)

// SupportType 문의 유형
type SupportType string

const (
	SupportTypeAccount   SupportType = "ACCOUNT"
	SupportTypeArchive   SupportType = "ARCHIVE"
	SupportTypeJudgement SupportType = "JUDGEMENT"
	SupportTypeReport    SupportType = "REPORT"
	SupportTypeEtc       SupportType = "ETC"
)

// SupportPost 회원 문의
type SupportPost struct {
	ID          uint32        `gorm:"column:id;primaryKey;autoIncrement"`
	MemberID    string        `gorm:"column:member_id;type:varchar(36);not null;index"`
	SupportType SupportType   `gorm:"column:support_type;type:varchar(20);not null"`
	Title       string        `gorm:"column:title;type:varchar(30);not null"`
	Content     string        `gorm:"column:content;type:varchar(300);not null"`
	Reply       *string       `gorm:"column:reply;type:text"`
	Status      SupportStatus `gorm:"column:status;type:varchar(20);not null"`

	BaseEntity
}

func (*SupportPost) TableName() string {
	return "support"
}

func NewSupportPost(memberID string, supportType SupportType, title, content string) *SupportPost {
	return &SupportPost{
		MemberID:    memberID,
		SupportType: supportType,
		Title:       title,
		Content:     content,
		Status:      SupportStatusPending,
	}
}

// Answer sets the reply; a second answer overwrites the first
func (s *SupportPost) Answer(reply string) {
	s.Reply = &reply
	s.Status = SupportStatusAnswered
}
