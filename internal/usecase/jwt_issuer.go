package usecase

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// アクセストークンの有効期限
const accessTokenTTL = 15 * time.Minute

// HS256のJWTを発行する。
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    accessTokenTTL,
	}
}

func (i *JWTIssuer) Issue(userID int64, isStaff bool, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"staff": isStaff,
		"tv":    tokenVersion,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
