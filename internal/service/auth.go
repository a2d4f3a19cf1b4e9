package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
	"github.com/unisolve/backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingField      = errors.New("required field is missing")
	ErrUserNotFound      = errors.New("user id not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrDuplicateUser     = errors.New("user id already exists")

	ErrMissingToken = errors.New("authorization token is missing")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

type AuthService struct {
	userRepository repository.UserRepository
	jwtSecret      string
	jwtExpiry      time.Duration
}

func NewAuthService(userRepository repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
	}
}

// RegisterInput carries the registration fields. Nickname and School are
// optional; nil is stored as NULL.
type RegisterInput struct {
	UserID   string
	Username string
	Email    string
	Password string
	Nickname *string
	School   *string
}

// Login verifies the password for the identifier and mints a token.
// Read-only: no login state is recorded.
func (s *AuthService) Login(userID, password string) (string, error) {
	if userID == "" || password == "" {
		return "", ErrMissingField
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		// Soft-deleted accounts have a nulled password hash
		return "", ErrIncorrectPassword
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password))
	if err != nil {
		return "", ErrIncorrectPassword
	}

	return s.GenerateToken(userID)
}

// Register creates a new account. No token is issued; the caller logs in
// separately.
func (s *AuthService) Register(in RegisterInput) error {
	if in.UserID == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return ErrMissingField
	}

	err := validation.ValidateEmail(in.Email)
	if err != nil {
		return err
	}

	exists, err := s.userRepository.Exists(in.UserID)
	if err != nil {
		return fmt.Errorf("failed to check user id: %w", err)
	}
	if exists {
		return ErrDuplicateUser
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashedBytes)

	user := &model.User{
		ID:           in.UserID,
		Username:     &in.Username,
		Email:        &in.Email,
		PasswordHash: &hash,
		Nickname:     in.Nickname,
		School:       in.School,
		CreatedAt:    time.Now(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", in.UserID)
	return nil
}

// Exists reports whether a user row carries the identifier.
func (s *AuthService) Exists(userID string) (bool, error) {
	return s.userRepository.Exists(userID)
}

// GenerateToken mints an HS256 JWT asserting the identifier for the
// configured expiry window.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// UserIDFromRequest extracts and validates the bearer token from the
// Authorization header and returns the caller's identifier. The identifier is
// untrusted input; callers needing ownership checks compare it themselves.
func (s *AuthService) UserIDFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")

	return s.VerifyToken(tokenString)
}

// VerifyToken checks the signature and expiry and returns the embedded
// identifier.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
