package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/config"
)

// Claims 访问令牌声明，Subject 存用户邮箱
type Claims struct {
	jwt.RegisteredClaims
}

// AuthService 令牌与密码服务
type AuthService struct {
	cfg config.JWTConfig
}

// NewAuthService 创建认证服务
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword 生成 bcrypt 密码哈希
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验明文密码与哈希
func (s *AuthService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken 签发访问令牌
func (s *AuthService) GenerateToken(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", NewValidationError("email", "email is required")
	}
	now := time.Now()
	expire := time.Duration(s.cfg.ExpireMinutes) * time.Minute
	if expire <= 0 {
		expire = 15 * time.Minute
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

// ParseToken 解析并校验访问令牌
// 签名算法固定 HS256，过期或伪造一律返回 ErrUnauthorized。
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrUnauthorized
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims Claims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrUnauthorized
	}
	return &claims, nil
}
