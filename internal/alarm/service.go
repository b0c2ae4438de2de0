package alarm

import (
	"context"
	"fmt"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"github.com/histolook/go-api-server/internal/shared/push"
	"gorm.io/gorm"
)

type AlarmService struct {
	db                    *gorm.DB
	deviceTokenRepository *DeviceTokenRepository
	alarmRepository       *AlarmRepository
	pusher                push.Pusher
}

func NewAlarmService(db *gorm.DB, deviceTokenRepository *DeviceTokenRepository, alarmRepository *AlarmRepository, pusher push.Pusher) *AlarmService {
	return &AlarmService{
		db:                    db,
		deviceTokenRepository: deviceTokenRepository,
		alarmRepository:       alarmRepository,
		pusher:                pusher,
	}
}

func (s *AlarmService) RegisterDeviceToken(ctx context.Context, memberID, token string) error {
	if err := s.deviceTokenRepository.Upsert(ctx, s.db, memberID, token); err != nil {
		logger.FromContext(ctx).Error("디바이스 토큰 등록 실패", "member_id", memberID, "error", err)
		return sharedError.MaskUnexpected(fmt.Errorf("upsert device token: %w", err))
	}

	logger.FromContext(ctx).Info("디바이스 토큰 등록", "member_id", memberID, "token", logger.MaskToken(token))
	return nil
}

func (s *AlarmService) GetAlarms(ctx context.Context, memberID string, page pagination.Page) (*pagination.Result[AlarmResponse], error) {
	alarms, err := s.alarmRepository.FindPageByMemberID(ctx, s.db, memberID, page)
	if err != nil {
		return nil, fmt.Errorf("알림 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, alarms, newAlarmResponse)
	return &result, nil
}

func (s *AlarmService) ReadAlarm(ctx context.Context, memberID string, alarmID uint32) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		alarm, err := s.alarmRepository.FindByIDAndMemberID(ctx, tx, alarmID, memberID)
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("alarmID=%d memberID=%s: %w", alarmID, memberID, ErrAlarmNotFound)
			}
			return fmt.Errorf("알림 조회 실패: %w", err)
		}
		if alarm.IsRead {
			return nil
		}
		return s.alarmRepository.MarkRead(ctx, tx, alarm.ID)
	})
	return sharedError.MaskUnexpected(err)
}

// Notify stores an in-app alarm and pushes it to every device of the member.
// Tokens the push provider reports as invalid are removed. Failures are only
// logged so the caller's request is never affected.
func (s *AlarmService) Notify(ctx context.Context, memberID, title, body string, archiveID *string) {
	log := logger.FromContext(ctx).With("member_id", memberID)

	alarm := &model.Alarm{MemberID: memberID, Title: title, Body: body, ArchiveID: archiveID}
	if err := s.alarmRepository.Create(ctx, s.db, alarm); err != nil {
		log.Error("알림 저장 실패", "error", err)
		return
	}

	tokens, err := s.deviceTokenRepository.FindTokensByMemberID(ctx, s.db, memberID)
	if err != nil {
		log.Error("디바이스 토큰 조회 실패", "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	data := map[string]string{"alarmId": fmt.Sprint(alarm.ID)}
	if archiveID != nil {
		data["archiveId"] = *archiveID
	}

	result, err := s.pusher.SendToTokens(ctx, tokens, title, body, data)
	if err != nil {
		log.Error("푸시 발송 실패", "error", err)
		return
	}

	if len(result.FailedTokens) > 0 {
		if err := s.deviceTokenRepository.DeleteByTokens(ctx, s.db, result.FailedTokens); err != nil {
			log.Error("만료된 디바이스 토큰 삭제 실패", "error", err)
		}
	}

	log.Info("푸시 발송 완료",
		"success", result.SuccessCount,
		"failure", result.FailureCount,
		"removed_tokens", len(result.FailedTokens),
	)
}
