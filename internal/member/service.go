package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/histolook/go-api-server/internal/model"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"github.com/histolook/go-api-server/internal/shared/storage"
	"github.com/histolook/go-api-server/internal/shared/validator"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
	storage          storage.Storage
	uploadURLTTL     time.Duration
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository, objectStorage storage.Storage, uploadURLTTL time.Duration) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
		storage:          objectStorage,
		uploadURLTTL:     uploadURLTTL,
	}
}

func (s *MemberService) GetProfile(ctx context.Context, principal sharedContext.Principal) (*ProfileResponse, error) {
	log := logger.FromContext(ctx)

	member, err := s.findMember(ctx, s.db, principal.MemberID)
	if err != nil {
		return nil, err
	}

	// 토큰 정보는 refresh 전까지 갱신되지 않는다. 불일치는 기록만 한다
	if principal.Nickname != member.Nickname || principal.Role != string(member.Role) {
		log.Warn("토큰 정보와 회원 정보 불일치",
			"member_id", member.ID,
			"token_nickname", principal.Nickname,
			"nickname", member.Nickname,
			"token_role", principal.Role,
			"role", member.Role,
		)
	}

	provider, err := s.memberRepository.FindProvider(ctx, s.db, member.AuthUserID)
	if err != nil {
		return nil, fmt.Errorf("회원 제공자 조회 실패: %w", err)
	}

	return newProfileResponse(member, provider), nil
}

func (s *MemberService) UpdateProfile(ctx context.Context, memberID string, request *UpdateProfileRequest) (*ProfileResponse, error) {
	log := logger.FromContext(ctx)

	if request.Nickname != nil && !validator.IsValidNickname(*request.Nickname) {
		return nil, fmt.Errorf("nickname=%q: %w", *request.Nickname, ErrInvalidNickname)
	}
	if request.BrandInterests != nil {
		if err := ValidateBrandInterests(request.BrandInterests, MaxProfileBrandInterests); err != nil {
			return nil, err
		}
	}

	var response *ProfileResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		columns := map[string]interface{}{}
		if request.Nickname != nil && *request.Nickname != member.Nickname {
			taken, err := s.memberRepository.IsNicknameTaken(ctx, tx, *request.Nickname, memberID)
			if err != nil {
				return fmt.Errorf("닉네임 중복 확인 실패: %w", err)
			}
			if taken {
				log.Warn("닉네임 중복", "nickname", *request.Nickname)
				return fmt.Errorf("nickname=%q: %w", *request.Nickname, ErrInvalidNickname)
			}
			columns["nickname"] = *request.Nickname
			member.Nickname = *request.Nickname
		}
		if request.BrandInterests != nil {
			columns["brand_interests"] = model.BrandInterests(request.BrandInterests)
			member.BrandInterests = request.BrandInterests
		}

		if len(columns) > 0 {
			if err := s.memberRepository.Update(ctx, tx, memberID, columns); err != nil {
				if database.IsDuplicateKey(err) {
					return fmt.Errorf("nickname=%q: %w", member.Nickname, ErrInvalidNickname)
				}
				return fmt.Errorf("회원 정보 수정 실패: %w", err)
			}
		}

		provider, err := s.memberRepository.FindProvider(ctx, tx, member.AuthUserID)
		if err != nil {
			return fmt.Errorf("회원 제공자 조회 실패: %w", err)
		}

		response = newProfileResponse(member, provider)
		return nil
	})
	if err != nil {
		return nil, sharedError.MaskUnexpected(err)
	}

	log.Info("회원 정보 수정 완료", "member_id", memberID)
	return response, nil
}

func (s *MemberService) IssueProfileImageUploadURL(ctx context.Context, memberID string) (*ProfileImageUploadURLResponse, error) {
	if _, err := s.findMember(ctx, s.db, memberID); err != nil {
		return nil, err
	}

	urls, err := s.storage.GenerateUploadURLs(ctx, storage.PrefixProfile, memberID, 1, s.uploadURLTTL)
	if err != nil {
		logger.FromContext(ctx).Error("프로필 이미지 업로드 URL 발급 실패", "error", err)
		return nil, sharedError.MaskUnexpected(fmt.Errorf("generate upload url: %w", err))
	}

	return &ProfileImageUploadURLResponse{URL: urls.URLs[0], ObjectName: urls.ObjectNames[0]}, nil
}

func (s *MemberService) UpdateProfileImage(ctx context.Context, memberID, objectName string) (*ProfileImageResponse, error) {
	if !storage.IsOwnedBy(objectName, storage.PrefixProfile, memberID) {
		logger.FromContext(ctx).Warn("본인 소유가 아닌 프로필 이미지", "member_id", memberID, "object_name", objectName)
		return nil, fmt.Errorf("objectName=%q: %w", objectName, ErrInvalidObjectName)
	}

	imageURL := s.storage.ObjectNameToPublicURL(objectName)
	if err := s.setImageURL(ctx, memberID, &imageURL); err != nil {
		return nil, err
	}
	return &ProfileImageResponse{ImageURL: imageURL}, nil
}

func (s *MemberService) DeleteProfileImage(ctx context.Context, memberID string) error {
	return s.setImageURL(ctx, memberID, nil)
}

func (s *MemberService) setImageURL(ctx context.Context, memberID string, imageURL *string) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.findMember(ctx, tx, memberID); err != nil {
			return err
		}
		if err := s.memberRepository.Update(ctx, tx, memberID, map[string]interface{}{"image_url": imageURL}); err != nil {
			return fmt.Errorf("프로필 이미지 수정 실패: %w", err)
		}
		return nil
	})
	return sharedError.MaskUnexpected(err)
}

func (s *MemberService) findMember(ctx context.Context, db *gorm.DB, memberID string) (*model.Member, error) {
	member, err := s.memberRepository.FindByID(ctx, db, memberID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%s: %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	return member, nil
}

// ValidateBrandInterests requires 1..max non-empty entries free of the
// storage delimiter
func ValidateBrandInterests(brandInterests []string, max int) error {
	if len(brandInterests) == 0 || len(brandInterests) > max {
		return fmt.Errorf("brandInterests count=%d: %w", len(brandInterests), ErrInvalidBrandInterests)
	}
	for _, brand := range brandInterests {
		if brand == "" {
			return fmt.Errorf("empty brand interest: %w", ErrInvalidBrandInterests)
		}
		if strings.Contains(brand, model.BrandInterestDelimiter) {
			return fmt.Errorf("brand interest %q contains %q: %w", brand, model.BrandInterestDelimiter, ErrInvalidBrandInterests)
		}
	}
	return nil
}
