package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
	"github.com/voxscribe/transcription-backend/internal/requestdata"
)

type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        *types.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// SetContextFromToken verifies a bearer token and attaches the actor
	// identity to the context for downstream services.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, types.Validation("username and password are required")
	}

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, types.Internal(err)
	}
	if user == nil {
		return nil, types.PermissionDenied("invalid credentials")
	}
	if !user.IsActive {
		return nil, types.PermissionDenied("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, types.PermissionDenied("invalid credentials")
	}

	now := time.Now().UTC()
	if err := as.userRepo.StampLastLogin(ctx, nil, user.ID, now); err != nil {
		as.log.Warn("Failed to stamp last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, types.Internal(err)
	}
	return &LoginResult{AccessToken: token, User: user}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, types.PermissionDenied("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, types.PermissionDenied("malformed token subject")
	}

	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return ctx, types.Internal(err)
	}
	if user == nil || !user.IsActive {
		return ctx, types.PermissionDenied("user inactive or missing")
	}

	rd := &requestdata.RequestData{
		UserID:      user.ID,
		Role:        user.Role,
		IsActive:    user.IsActive,
		TokenString: tokenString,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// HashPassword is shared by user creation and password reset.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
