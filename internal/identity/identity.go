package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ShreyaKadian/InternetButFun/internal/config"
	apperrors "github.com/ShreyaKadian/InternetButFun/pkg/errors"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// Identity - проверенная личность от внешнего Auth-провайдера
type Identity struct {
	UID   string
	Email string
}

// Verifier проверяет bearer-токен внешнего провайдера. И HTTP-слой, и
// чат зависят от этого контракта; ошибка проверки никогда не должна
// превращаться в панику
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// providerClaims - структура claims токена Auth-провайдера
type providerClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	log    logger.Logger
}

func NewJWTVerifier(cfg config.AuthConfig, log logger.Logger) Verifier {
	return &jwtVerifier{
		secret: []byte(cfg.ProviderSecret),
		issuer: cfg.Issuer,
		leeway: cfg.ClockSkew,
		log:    log,
	}
}

// Verify валидирует токен и возвращает стабильный UID + email.
// Префикс "Bearer " допустим и отбрасывается: в чат токен приходит
// query-параметром вместе с префиксом
func (v *jwtVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	credential = strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))
	if credential == "" {
		return nil, fmt.Errorf("missing or invalid token: %w", apperrors.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{jwt.WithLeeway(v.leeway)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(credential, &providerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)

	if err != nil {
		// Текст ошибки уходит клиенту как диагностика (reason закрытия 4001
		// или тело 401), поэтому сохраняем его
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("invalid token: %s: %w", err.Error(), apperrors.ErrTokenExpired)
		}
		return nil, fmt.Errorf("invalid token: %s: %w", err.Error(), apperrors.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*providerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", apperrors.ErrInvalidToken)
	}

	uid := claims.UID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return nil, fmt.Errorf("token has no uid: %w", apperrors.ErrInvalidToken)
	}

	email := claims.Email
	if email == "" {
		email = "unknown"
	}

	return &Identity{UID: uid, Email: email}, nil
}
