package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"agency/internal/models"
	"agency/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
// It issues and verifies bearer tokens and answers role questions against the
// user store. Tokens carry no role claim, so every privileged decision is a
// fresh store lookup.
type AuthService struct {
	userRepo   repositories.UserRepository
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService. An empty signing secret is a
// configuration error surfaced here, at startup, rather than on first use.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, events EventPublisher) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}
	return &AuthService{
		userRepo:   userRepo,
		events:     events,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}, nil
}

// NormalizeEmail canonicalizes an email for storage and comparison. One
// policy, applied everywhere emails enter the system.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a bcrypt-hashed password and returns a
// freshly issued token. user.Password holds the plaintext on entry and the
// hash afterwards.
func (s *AuthService) Register(user *models.User) (string, error) {
	user.Email = NormalizeEmail(user.Email)

	existing, err := s.userRepo.GetByEmail(user.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return "", fmt.Errorf("email '%s': %w", user.Email, ErrEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can win the race between the pre-check
		// and the insert; the store's unique index is the authority.
		if errors.Is(err, repositories.ErrDuplicate) {
			return "", fmt.Errorf("email '%s': %w", user.Email, ErrEmailTaken)
		}
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	publishEvent(s.events, "user.registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return s.IssueToken(user)
}

// Login authenticates a user by email and password and returns the user with
// a freshly issued token. Unknown email and wrong password both surface as
// ErrInvalidCredentials; the password check is bcrypt's constant-time compare.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a bearer token asserting the user's identity, valid for
// one day. The token intentionally carries no role claim.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenDurat).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a bearer token, returning its claims. A
// bad signature, an unexpected algorithm, or an expired token all fail here.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// IsAdmin reports whether the user behind the given email currently holds the
// admin role. Always a fresh lookup: roles can change while a token is live.
func (s *AuthService) IsAdmin(email string) (bool, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up user for role check: %w", err)
	}
	return user.IsAdmin(), nil
}
