package helper

import (
	"errors"
	"fmt"
	"time"

	"train_station/config"
	"train_station/constants"
	"train_station/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrWrongTokenType = errors.New("wrong token type")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func (c Claims) TokenClaim() model.TokenClaim {
	return model.TokenClaim{UserId: c.UserID, Email: c.Email, IsStaff: c.IsStaff}
}

type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(settings config.Settings) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(settings.JWTSecret),
		accessTTL:  settings.AccessTokenTTL,
		refreshTTL: settings.RefreshTokenTTL,
		now:        time.Now,
	}
}

func (t *TokenIssuer) GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return t.sign(claim, constants.TOKEN_ACCESS, t.accessTTL)
}

func (t *TokenIssuer) GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return t.sign(claim, constants.TOKEN_REFRESH, t.refreshTTL)
}

func (t *TokenIssuer) GeneratePair(claim model.TokenClaim) (model.TokenData, error) {
	access, err := t.GenerateAccessToken(claim)
	if err != nil {
		return model.TokenData{}, err
	}
	refresh, err := t.GenerateRefreshToken(claim)
	if err != nil {
		return model.TokenData{}, err
	}
	return model.TokenData{AccessToken: access, RefreshToken: refresh}, nil
}

func (t *TokenIssuer) sign(claim model.TokenClaim, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:    claim.UserId,
		Email:     claim.Email,
		IsStaff:   claim.IsStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(claim.UserId),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ParseToken validates signature and expiry. An empty tokenType accepts both kinds.
func (t *TokenIssuer) ParseToken(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	if tokenType != "" && claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
