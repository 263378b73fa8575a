// Package jwt реализует выпуск и проверку токена сессии.
//
// Токен подписывается HS256 и хранит идентификатор пользователя (sub),
// email и идентификатор серверной сессии (sid). Сам токен кладётся в
// HttpOnly cookie, а данные сессии лежат в redis под ключом sid.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для токена с неверной подписью, истёкшего или неполного.
var ErrInvalidToken = errors.New("invalid session token")

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	GenerateToken(userID, email, sessionID string) (string, error)
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// SessionClaims данные, хранящиеся в токене сессии.
type SessionClaims struct {
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из поля sub.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// MakerImpl реализует Maker с секретным ключом и временем жизни токена.
type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// TTL время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}

// GenerateToken создаёт подписанный токен для пользователя и сессии.
func (j *MakerImpl) GenerateToken(userID, email, sessionID string) (string, error) {
	const op = "jwt.GenerateToken"
	if userID == "" || sessionID == "" {
		return "", fmt.Errorf("%s: user id and session id are required", op)
	}
	now := j.now()
	claims := SessionClaims{
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
