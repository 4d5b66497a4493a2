package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/zone-cup/utils"
)

const (
	RoleAdmin = "admin"

	ClaimRole = "role"

	tokenTTL = 24 * time.Hour
)

type TokenOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthService interface {
	IssueToken(ctx context.Context, password string) (*TokenOutput, error)
	ParseToken(tokenString string) (jwt.MapClaims, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
	now          func() time.Time
	logger       *slog.Logger
}

// NewAuthService: администратор турнира один, его пароль хранится как bcrypt-хеш.
func NewAuthService(passwordHash, jwtSecret string, logger *slog.Logger) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
		logger:       loggerOrDefault(logger),
	}
}

func (s *authService) IssueToken(ctx context.Context, password string) (*TokenOutput, error) {
	if password == "" || !utils.CheckPasswordHash(password, s.passwordHash) {
		s.logger.WarnContext(ctx, "admin login failed")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(tokenTTL)
	claims := jwt.MapClaims{
		ClaimRole: RoleAdmin,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &TokenOutput{Token: signed, ExpiresAt: expiresAt}, nil
}

// ParseToken проверяет подпись и срок действия токена.
func (s *authService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("%w: token expired", ErrAuthenticationFailed)
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrAuthenticationFailed
	}
	return claims, nil
}
