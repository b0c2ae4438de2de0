package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/histolook/go-api-server/internal/config"
)

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrExpiredToken  = errors.New("token: expired token")
	ErrInvalidClaims = errors.New("token: invalid claims")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

// Subject 토큰에 담기는 회원 정보
type Subject struct {
	MemberID   string
	AuthUserID string
	Nickname   string
	Role       string
}

type Claims struct {
	MemberID   string `json:"member_id"`
	AuthUserID string `json:"auth_user_id"`
	Nickname   string `json:"nickname"`
	Role       string `json:"role"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// ToSubject returns the member fields carried by the claims
func (c *Claims) ToSubject() Subject {
	return Subject{
		MemberID:   c.MemberID,
		AuthUserID: c.AuthUserID,
		Nickname:   c.Nickname,
		Role:       c.Role,
	}
}

type Manager interface {
	GenerateAccessToken(subject Subject) (string, error)
	GenerateRefreshToken(subject Subject) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTManager struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret:        []byte(cfg.JWT.Secret),
		issuer:        cfg.App.Name,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
	}
}

func (m *JWTManager) GenerateAccessToken(subject Subject) (string, error) {
	return m.generate(subject, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(subject Subject) (string, error) {
	return m.generate(subject, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) generate(subject Subject, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := Claims{
		MemberID:   subject.MemberID,
		AuthUserID: subject.AuthUserID,
		Nickname:   subject.Nickname,
		Role:       subject.Role,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.MemberID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.MemberID == "" {
		return nil, ErrInvalidClaims
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
