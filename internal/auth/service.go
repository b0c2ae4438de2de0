package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/histolook/go-api-server/internal/alarm"
	"github.com/histolook/go-api-server/internal/archive"
	"github.com/histolook/go-api-server/internal/auth/oauth"
	"github.com/histolook/go-api-server/internal/member"
	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"github.com/histolook/go-api-server/internal/shared/token"
	"github.com/histolook/go-api-server/internal/shared/validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// adminBrandCount is how many default brands a bootstrapped admin gets
const adminBrandCount = 3

type AuthService struct {
	db                    *gorm.DB
	authUserRepository    *AuthUserRepository
	memberRepository      *member.MemberRepository
	deviceTokenRepository *alarm.DeviceTokenRepository
	interestRepository    *archive.InterestRepository
	tokenManager          token.Manager
	providers             oauth.Registry
	adminKeyHash          []byte
}

func NewAuthService(
	db *gorm.DB,
	authUserRepository *AuthUserRepository,
	memberRepository *member.MemberRepository,
	deviceTokenRepository *alarm.DeviceTokenRepository,
	interestRepository *archive.InterestRepository,
	tokenManager token.Manager,
	providers oauth.Registry,
	adminKeyHash string,
) *AuthService {
	return &AuthService{
		db:                    db,
		authUserRepository:    authUserRepository,
		memberRepository:      memberRepository,
		deviceTokenRepository: deviceTokenRepository,
		interestRepository:    interestRepository,
		tokenManager:          tokenManager,
		providers:             providers,
		adminKeyHash:          []byte(adminKeyHash),
	}
}

// InitAuth registers tokens the client obtained from a provider SDK.
// An identity seen before keeps its id and only has its tokens refreshed.
func (a *AuthService) InitAuth(ctx context.Context, request *InitAuthRequest) (*InitAuthResponse, error) {
	log := logger.FromContext(ctx)

	provider := model.Provider(request.Provider)
	if !provider.IsSocial() {
		return nil, fmt.Errorf("provider=%q: %w", request.Provider, ErrInvalidProvider)
	}
	if request.SocialAccessToken == "" || request.SocialRefreshToken == "" {
		return nil, fmt.Errorf("provider=%s: %w", provider, ErrMissingToken)
	}
	if request.ProviderID == "" {
		return nil, fmt.Errorf("provider=%s: %w", provider, ErrMissingProviderID)
	}

	authUser, _, err := a.upsertAuthUser(ctx, provider, &oauth.Profile{
		ProviderID: request.ProviderID,
		Email:      request.Email,
	}, &oauth.Token{
		AccessToken:  request.SocialAccessToken,
		RefreshToken: request.SocialRefreshToken,
	})
	if err != nil {
		log.Error("인증 정보 저장 실패", "provider", provider, "error", err)
		return nil, err
	}

	log.Info("인증 정보 저장 완료", "provider", provider, "auth_user_id", authUser.ID, "email", logger.MaskEmailPtr(request.Email))
	return &InitAuthResponse{AuthUserID: authUser.ID}, nil
}

// OAuthCallback exchanges an authorization code and links the provider identity
func (a *AuthService) OAuthCallback(ctx context.Context, provider model.Provider, code string) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	adapter, ok := a.providers.Get(provider)
	if !ok {
		return nil, fmt.Errorf("provider=%q: %w", provider, ErrInvalidProvider)
	}

	providerToken, err := adapter.ExchangeCode(ctx, code)
	if err != nil {
		if errors.Is(err, oauth.ErrCodeExchangeUnsupported) {
			return nil, fmt.Errorf("provider=%s: %w", provider, ErrInvalidProvider)
		}
		log.Warn("인가 코드 교환 실패", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: exchange code: %v", ErrInvalidSocialToken, err)
	}

	profile, err := a.fetchProfile(ctx, adapter, providerToken.AccessToken)
	if err != nil {
		return nil, err
	}

	authUser, linked, err := a.upsertAuthUser(ctx, provider, profile, providerToken)
	if err != nil {
		log.Error("인증 정보 저장 실패", "provider", provider, "error", err)
		return nil, err
	}

	log.Info("소셜 로그인 콜백 처리", "provider", provider, "auth_user_id", authUser.ID, "registered", linked != nil)
	return a.loginResponse(authUser.ID, linked)
}

// CheckNickname only looks at live members
func (a *AuthService) CheckNickname(ctx context.Context, nickname string) (*NicknameCheckResponse, error) {
	taken, err := a.memberRepository.IsNicknameTaken(ctx, a.db, nickname, "")
	if err != nil {
		return nil, fmt.Errorf("닉네임 조회 실패: %w", err)
	}
	return &NicknameCheckResponse{IsDuplicated: taken}, nil
}

// Join attaches a new USER member to an AuthUser and issues the first token pair
func (a *AuthService) Join(ctx context.Context, request *JoinRequest) (*JoinResponse, error) {
	log := logger.FromContext(ctx)

	var joined *model.Member
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		if _, err := a.authUserRepository.FindByID(ctx, tx, request.AuthUserID); err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("authUserID=%s: %w", request.AuthUserID, ErrAuthUserNotFound)
			}
			return fmt.Errorf("인증 정보 조회 실패: %w", err)
		}

		if _, err := a.memberRepository.FindByAuthUserID(ctx, tx, request.AuthUserID); err == nil {
			return fmt.Errorf("authUserID=%s: %w", request.AuthUserID, ErrMemberAlreadyJoined)
		} else if !database.IsNotFound(err) {
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if err := a.checkNicknameAvailable(ctx, tx, request.Nickname, member.ErrInvalidNickname); err != nil {
			return err
		}
		if err := member.ValidateBrandInterests(request.BrandInterests, MaxJoinBrandInterests); err != nil {
			return err
		}

		joined = model.NewMember(request.AuthUserID, request.Nickname, model.RoleUser, request.BrandInterests)
		if err := a.memberRepository.Create(ctx, tx, joined); err != nil {
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("nickname=%s: %w", request.Nickname, member.ErrInvalidNickname)
			}
			return fmt.Errorf("회원 생성 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Warn("회원가입 실패", "auth_user_id", request.AuthUserID, "error", err)
		return nil, sharedError.MaskUnexpected(err)
	}

	log.Info("회원가입 완료", "member_id", joined.ID)
	return a.joinResponse(joined)
}

// JoinAdmin bootstraps an ADMIN member behind a synthetic AuthUser
func (a *AuthService) JoinAdmin(ctx context.Context, adminKey string, request *JoinAdminRequest) (*JoinResponse, error) {
	log := logger.FromContext(ctx)

	if len(a.adminKeyHash) == 0 || bcrypt.CompareHashAndPassword(a.adminKeyHash, []byte(adminKey)) != nil {
		log.Warn("관리자 가입 실패 - invalid admin key")
		return nil, ErrInvalidAdminKey
	}

	var admin *model.Member
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		if err := a.checkNicknameAvailable(ctx, tx, request.Nickname, member.ErrNicknameConflict); err != nil {
			return err
		}

		authUser := model.NewAuthUser(model.ProviderAdmin, uuid.NewString(), nil, nil, nil)
		if err := a.authUserRepository.Create(ctx, tx, authUser); err != nil {
			return fmt.Errorf("관리자 인증 정보 생성 실패: %w", err)
		}

		admin = model.NewMember(authUser.ID, request.Nickname, model.RoleAdmin, database.DefaultBrands[:adminBrandCount])
		if err := a.memberRepository.Create(ctx, tx, admin); err != nil {
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("nickname=%s: %w", request.Nickname, member.ErrNicknameConflict)
			}
			return fmt.Errorf("관리자 생성 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Warn("관리자 가입 실패", "error", err)
		return nil, sharedError.MaskUnexpected(err)
	}

	log.Info("관리자 가입 완료", "member_id", admin.ID)
	return a.joinResponse(admin)
}

// Login resolves the provider profile behind socialAccessToken and matches it
// on (provider, providerId)
func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	provider := model.Provider(request.Provider)
	adapter, ok := a.providers.Get(provider)
	if !ok {
		return nil, fmt.Errorf("provider=%q: %w", request.Provider, ErrInvalidProvider)
	}

	profile, err := a.fetchProfile(ctx, adapter, request.SocialAccessToken)
	if err != nil {
		return nil, err
	}

	authUser, err := a.authUserRepository.FindByProviderID(ctx, a.db, provider, profile.ProviderID)
	if err != nil {
		if database.IsNotFound(err) {
			log.Warn("로그인 실패 - unknown provider identity", "provider", provider)
			return nil, fmt.Errorf("provider=%s: %w", provider, ErrInvalidSocialToken)
		}
		return nil, fmt.Errorf("인증 정보 조회 실패: %w", err)
	}

	linked, err := a.memberRepository.FindByAuthUserID(ctx, a.db, authUser.ID)
	if err != nil {
		if database.IsNotFound(err) {
			log.Info("로그인 - 가입 전 계정", "auth_user_id", authUser.ID)
			return a.loginResponse(authUser.ID, nil)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	log.Info("로그인 성공", "member_id", linked.ID)
	return a.loginResponse(authUser.ID, linked)
}

// Refresh reissues both tokens from the stored member, not from the old claims
func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		log.Warn("토큰 갱신 실패", "token", logger.MaskToken(refreshToken), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}
	if claims.TokenType != token.REFRESH {
		return nil, fmt.Errorf("token type %q: %w", claims.TokenType, ErrInvalidRefreshToken)
	}

	current, err := a.memberRepository.FindByID(ctx, a.db, claims.MemberID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("memberID=%s: %w", claims.MemberID, member.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	pair, err := a.issueTokens(current)
	if err != nil {
		return nil, err
	}

	log.Info("토큰 갱신 완료", "member_id", current.ID)
	return pair, nil
}

func (a *AuthService) Secession(ctx context.Context, memberID string, reason *string) error {
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		target, err := a.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}
		return a.withdraw(ctx, tx, target, reason)
	})
	if err != nil {
		logger.FromContext(ctx).Warn("회원 탈퇴 실패", "member_id", memberID, "error", err)
		return sharedError.MaskUnexpected(err)
	}

	logger.FromContext(ctx).Info("회원 탈퇴 완료", "member_id", memberID)
	return nil
}

// SecessionAdmin answers NotFound for both a nickname mismatch and a non-admin target
func (a *AuthService) SecessionAdmin(ctx context.Context, request *AdminSecessionRequest) error {
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		target, err := a.findMember(ctx, tx, request.MemberID)
		if err != nil {
			return err
		}
		if target.Nickname != request.Nickname || !target.IsAdmin() {
			return fmt.Errorf("memberID=%s: %w", request.MemberID, member.ErrMemberNotFound)
		}
		return a.withdraw(ctx, tx, target, nil)
	})
	if err != nil {
		logger.FromContext(ctx).Warn("관리자 탈퇴 실패", "member_id", request.MemberID, "error", err)
		return sharedError.MaskUnexpected(err)
	}

	logger.FromContext(ctx).Info("관리자 탈퇴 완료", "member_id", request.MemberID)
	return nil
}

// withdraw runs the secession cascade inside tx
func (a *AuthService) withdraw(ctx context.Context, tx *gorm.DB, target *model.Member, reason *string) error {
	if err := a.deviceTokenRepository.DeleteByMemberID(ctx, tx, target.ID); err != nil {
		return fmt.Errorf("디바이스 토큰 삭제 실패: %w", err)
	}
	if err := a.interestRepository.HardDeleteByMemberID(ctx, tx, target.ID); err != nil {
		return fmt.Errorf("관심 아카이브 삭제 실패: %w", err)
	}
	if target.AuthUserID != nil {
		if err := a.authUserRepository.Delete(ctx, tx, *target.AuthUserID); err != nil {
			return fmt.Errorf("인증 정보 삭제 실패: %w", err)
		}
	}
	if err := a.memberRepository.Withdraw(ctx, tx, target.ID, reason); err != nil {
		return fmt.Errorf("회원 탈퇴 처리 실패: %w", err)
	}
	return nil
}

func (a *AuthService) findMember(ctx context.Context, db *gorm.DB, memberID string) (*model.Member, error) {
	found, err := a.memberRepository.FindByID(ctx, db, memberID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("memberID=%s: %w", memberID, member.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	return found, nil
}

// checkNicknameAvailable rejects malformed nicknames with ErrInvalidNickname and
// taken ones with takenErr
func (a *AuthService) checkNicknameAvailable(ctx context.Context, db *gorm.DB, nickname string, takenErr error) error {
	if !validator.IsValidNickname(nickname) {
		return fmt.Errorf("nickname=%q: %w", nickname, member.ErrInvalidNickname)
	}

	taken, err := a.memberRepository.IsNicknameTaken(ctx, db, nickname, "")
	if err != nil {
		return fmt.Errorf("닉네임 조회 실패: %w", err)
	}
	if taken {
		return fmt.Errorf("nickname=%s: %w", nickname, takenErr)
	}
	return nil
}

func (a *AuthService) fetchProfile(ctx context.Context, adapter oauth.Provider, accessToken string) (*oauth.Profile, error) {
	profile, err := adapter.FetchProfile(ctx, accessToken)
	if err != nil {
		logger.FromContext(ctx).Warn("소셜 프로필 조회 실패", "provider", adapter.Name(), "token", logger.MaskToken(accessToken), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSocialToken, err)
	}
	if profile.ProviderID == "" {
		return nil, fmt.Errorf("provider=%s: %w", adapter.Name(), ErrMissingProviderID)
	}
	return profile, nil
}

// upsertAuthUser finds the identity by (provider, providerId), refreshing its
// tokens, or creates it. The live member linked to it is returned when present.
func (a *AuthService) upsertAuthUser(ctx context.Context, provider model.Provider, profile *oauth.Profile, providerToken *oauth.Token) (*model.AuthUser, *model.Member, error) {
	accessToken := optional(providerToken.AccessToken)
	refreshToken := optional(providerToken.RefreshToken)

	var (
		authUser *model.AuthUser
		linked   *model.Member
	)
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		found, err := a.authUserRepository.FindByProviderID(ctx, tx, provider, profile.ProviderID)
		switch {
		case err == nil:
			authUser = found
			if err := a.authUserRepository.UpdateTokens(ctx, tx, found.ID, accessToken, refreshToken, profile.Email); err != nil {
				return fmt.Errorf("update tokens: %w", err)
			}
		case database.IsNotFound(err):
			authUser = model.NewAuthUser(provider, profile.ProviderID, profile.Email, accessToken, refreshToken)
			if err := a.authUserRepository.Create(ctx, tx, authUser); err != nil {
				return fmt.Errorf("create auth user: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("find auth user: %w", err)
		}

		linked, err = a.memberRepository.FindByAuthUserID(ctx, tx, authUser.ID)
		if err != nil {
			linked = nil
			if !database.IsNotFound(err) {
				return fmt.Errorf("find member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSocialProviderError, err)
	}
	return authUser, linked, nil
}

func (a *AuthService) loginResponse(authUserID string, linked *model.Member) (*LoginResponse, error) {
	if linked == nil {
		return &LoginResponse{IsRegistered: false, AuthUserID: authUserID}, nil
	}

	pair, err := a.issueTokens(linked)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		IsRegistered: true,
		AuthUserID:   authUserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (a *AuthService) joinResponse(joined *model.Member) (*JoinResponse, error) {
	pair, err := a.issueTokens(joined)
	if err != nil {
		return nil, err
	}
	return &JoinResponse{
		MemberID:     joined.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (a *AuthService) issueTokens(m *model.Member) (*TokenResponse, error) {
	subject := token.Subject{
		MemberID: m.ID,
		Nickname: m.Nickname,
		Role:     string(m.Role),
	}
	if m.AuthUserID != nil {
		subject.AuthUserID = *m.AuthUserID
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(subject)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := a.tokenManager.GenerateRefreshToken(subject)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	return &TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
