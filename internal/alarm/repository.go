package alarm

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceTokenRepository struct{}

func NewDeviceTokenRepository() *DeviceTokenRepository {
	return &DeviceTokenRepository{}
}

// Upsert binds the token to memberID, moving it away from any previous owner
func (r *DeviceTokenRepository) Upsert(ctx context.Context, db *gorm.DB, memberID, token string) error {
	deviceToken := &model.DeviceToken{MemberID: memberID, Token: token}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"member_id", "updated_at"}),
		}).
		Create(deviceToken).Error
}

func (r *DeviceTokenRepository) FindTokensByMemberID(ctx context.Context, db *gorm.DB, memberID string) ([]string, error) {
	var tokens []string
	err := db.WithContext(ctx).
		Model(&model.DeviceToken{}).
		Where("member_id = ?", memberID).
		Order("id").
		Pluck("token", &tokens).Error
	return tokens, err
}

func (r *DeviceTokenRepository) DeleteByTokens(ctx context.Context, db *gorm.DB, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("token IN ?", tokens).Delete(&model.DeviceToken{}).Error
}

func (r *DeviceTokenRepository) DeleteByMemberID(ctx context.Context, db *gorm.DB, memberID string) error {
	return db.WithContext(ctx).Where("member_id = ?", memberID).Delete(&model.DeviceToken{}).Error
}

type AlarmRepository struct{}

func NewAlarmRepository() *AlarmRepository {
	return &AlarmRepository{}
}

func (r *AlarmRepository) Create(ctx context.Context, db *gorm.DB, alarm *model.Alarm) error {
	return db.WithContext(ctx).Create(alarm).Error
}

// FindPageByMemberID returns up to page.FetchLimit() rows, newest first
func (r *AlarmRepository) FindPageByMemberID(ctx context.Context, db *gorm.DB, memberID string, page pagination.Page) ([]model.Alarm, error) {
	var alarms []model.Alarm
	err := db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&alarms).Error
	return alarms, err
}

func (r *AlarmRepository) FindByIDAndMemberID(ctx context.Context, db *gorm.DB, id uint32, memberID string) (*model.Alarm, error) {
	var alarm model.Alarm
	err := db.WithContext(ctx).
		Where("id = ? AND member_id = ?", id, memberID).
		First(&alarm).Error
	if err != nil {
		return nil, err
	}
	return &alarm, nil
}

func (r *AlarmRepository) MarkRead(ctx context.Context, db *gorm.DB, id uint32) error {
	return db.WithContext(ctx).
		Model(&model.Alarm{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
