package model

// DeviceToken 푸시 알림 수신용 FCM 토큰
type DeviceToken struct {
	ID       uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	MemberID string `gorm:"column:member_id;type:varchar(36);not null;index"`
	Token    string `gorm:"column:token;type:varchar(512);not null;uniqueIndex"`

	BaseEntity
}

func (*DeviceToken) TableName() string {
	return "device_token"
}

// Alarm 앱 내 알림 기록
type Alarm struct {
	ID        uint32  `gorm:"column:id;primaryKey;autoIncrement"`
	MemberID  string  `gorm:"column:member_id;type:varchar(36);not null;index"`
	Title     string  `gorm:"column:title;type:varchar(100);not null"`
	Body      string  `gorm:"column:body;type:varchar(300);not null"`
	ArchiveID *string `gorm:"column:archive_id;type:varchar(36)"`
	IsRead    bool    `gorm:"column:is_read;not null;default:false"`

	BaseEntity
}

func (*Alarm) TableName() string {
	return "alarm"
}
