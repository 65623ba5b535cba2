package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/middleware"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type AuthService struct {
	userRepo     *repository.UserRepo
	studentRepo  *repository.StudentRepo
	educatorRepo *repository.EducatorRepo
	redis        *redis.Client
	jwt          *middleware.JWTAuth
}

func NewAuthService(
	userRepo *repository.UserRepo,
	studentRepo *repository.StudentRepo,
	educatorRepo *repository.EducatorRepo,
	redisClient *redis.Client,
	jwt *middleware.JWTAuth,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		studentRepo:  studentRepo,
		educatorRepo: educatorRepo,
		redis:        redisClient,
		jwt:          jwt,
	}
}

// Login authenticates the credentials and resolves the profile matching the
// requested user type. A valid user logging in under the wrong type is a
// Forbidden, not an Unauthorized: the distinction drives the client's guard.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.UserType != models.UserTypeStudent && req.UserType != models.UserTypeEducator {
		return nil, &ValidationError{Fields: map[string]string{"user_type": "Invalid user type"}}
	}
	if req.Email == "" || req.Password == "" {
		return nil, &ValidationError{Fields: map[string]string{"credentials": "Email and password are required"}}
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Invalid credentials"}
	}

	resp := &models.LoginResponse{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: req.UserType,
	}

	switch req.UserType {
	case models.UserTypeStudent:
		profile, err := s.studentRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &ForbiddenError{Message: "User is not a student"}
			}
			return nil, err
		}
		resp.FirstName = profile.FirstName
		resp.LastName = profile.LastName
		resp.ProfileID = profile.ID

	case models.UserTypeEducator:
		profile, err := s.educatorRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &ForbiddenError{Message: "User is not an educator"}
			}
			return nil, err
		}
		resp.FirstName = profile.FirstName
		resp.LastName = profile.LastName
		resp.ProfileID = profile.ID
	}

	tokens, err := s.issueTokens(ctx, user, resp.ProfileID)
	if err != nil {
		return nil, err
	}
	resp.Tokens = *tokens

	return resp, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	userIDStr, err := s.redis.Get(ctx, "refresh:"+refreshToken).Result()
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid or expired refresh token. Please log in again."}
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	// Delete old token (rotation)
	s.redis.Del(ctx, "refresh:"+refreshToken)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profileID, err := s.profileIDFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, profileID)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.redis.Del(ctx, "refresh:"+refreshToken).Err()
}

func (s *AuthService) profileIDFor(ctx context.Context, user *models.User) (uuid.UUID, error) {
	if user.UserType == models.UserTypeEducator {
		e, err := s.educatorRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return uuid.Nil, err
		}
		return e.ID, nil
	}
	st, err := s.studentRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return uuid.Nil, err
	}
	return st.ID, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User, profileID uuid.UUID) (*models.AuthTokens, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.UserType, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateToken(64)
	if err != nil {
		return nil, err
	}

	// Store refresh token in Redis (7 days)
	err = s.redis.Set(ctx, "refresh:"+refreshToken, user.ID.String(), 7*24*time.Hour).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    900,
	}, nil
}

func generateToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }
