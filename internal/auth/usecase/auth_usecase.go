package usecase

import (
	"errors"
	"fmt"
	"time"

	authdomain "redalert-backend/internal/auth/domain"
	authdto "redalert-backend/internal/auth/dto"
	"redalert-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase authenticates the admin and validates bearer tokens
type AuthUsecase interface {
	// Enabled reports whether requests must carry a token
	Enabled() bool
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	ValidateToken(tokenString string) (*authdomain.Admin, error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	config *config.Config
	now    func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{
		config: cfg,
		now:    time.Now,
	}
}

func (u *authUsecase) Enabled() bool {
	return u.config.AuthEnabled()
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if !u.Enabled() {
		return nil, errors.New("authentication is not configured")
	}
	if req.Username != u.config.AdminUsername || !CheckPasswordHash(req.Password, u.config.AdminPasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	token, err := u.generateAccessToken(req.Username)
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.config.JWTAccessExpiry.Seconds()),
		Username:    req.Username,
	}, nil
}

func (u *authUsecase) generateAccessToken(username string) (string, error) {
	now := u.now()
	claims := jwt.MapClaims{
		"sub": username,
		"exp": now.Add(u.config.JWTAccessExpiry).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Admin, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithTimeFunc(u.now))

	if err != nil || !token.Valid {
		return nil, authdomain.ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject != u.config.AdminUsername {
		return nil, authdomain.ErrInvalidToken
	}

	return &authdomain.Admin{Username: subject}, nil
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
