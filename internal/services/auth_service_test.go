package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)

	_, err := services.NewAuthService(mockRepo, "", nil)
	assert.Error(t, err)

	svc, err := services.NewAuthService(mockRepo, "test_jwt_secret", nil)
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := services.NewAuthService(mockRepo, "test_jwt_secret", nil)
	assert.NoError(t, err)

	// Successful registration: email is normalized, password is hashed, a
	// token comes back.
	user := &models.User{
		FirstName: "A",
		LastName:  "B",
		Email:     " A@X.com ",
		Password:  "password123",
	}
	mockRepo.On("GetByEmail", "a@x.com").Return(nil, notFoundErr("a@x.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	token, err := authService.Register(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Email already taken: no record is created.
	mockRepo.On("GetByEmail", "a@x.com").Return(&models.User{ID: "1", Email: "a@x.com"}, nil).Once()
	_, err = authService.Register(&models.User{
		FirstName: "A",
		LastName:  "B",
		Email:     "A@x.com",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)

	// A concurrent registration can pass the pre-check and lose to the
	// store's unique index; that still surfaces as a conflict, not a store
	// failure.
	mockRepo.On("GetByEmail", "race@x.com").Return(nil, notFoundErr("race@x.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("user with email race@x.com: %w", repositories.ErrDuplicate)).Once()
	_, err = authService.Register(&models.User{
		FirstName: "A",
		LastName:  "B",
		Email:     "race@x.com",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService, err := services.NewAuthService(mockRepo, testJWTSecret, nil)
	assert.NoError(t, err)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:        "user-123",
		FirstName: "A",
		LastName:  "B",
		Email:     "a@x.com",
		Password:  string(hashedPassword),
	}

	// Successful login returns a token signed with our secret carrying the
	// identity claims but no role claim.
	mockRepo.On("GetByEmail", "a@x.com").Return(user, nil).Once()
	loggedIn, token, err := authService.Login("A@X.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-123", loggedIn.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "a@x.com", claims["email"])
	assert.NotContains(t, claims, "role")
	mockRepo.AssertExpectations(t)

	// Wrong password.
	mockRepo.On("GetByEmail", "a@x.com").Return(user, nil).Once()
	_, _, err = authService.Login("a@x.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email surfaces as the same error.
	mockRepo.On("GetByEmail", "nobody@x.com").Return(nil, notFoundErr("nobody@x.com")).Once()
	_, _, err = authService.Login("nobody@x.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService, err := services.NewAuthService(mockRepo, testJWTSecret, nil)
	assert.NoError(t, err)

	// Valid token.
	validToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"email":   "a@x.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := validToken.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "a@x.com", claims["email"])

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Token signed with a different secret: the signature does not verify.
	forgedToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"email":   "a@x.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedTokenString, _ := forgedToken.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(forgedTokenString)
	assert.Error(t, err)

	// Expired token.
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"email":   "a@x.com",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
}

func TestAuthService_IsAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := services.NewAuthService(mockRepo, "test_jwt_secret", nil)
	assert.NoError(t, err)

	mockRepo.On("GetByEmail", "admin@x.com").Return(&models.User{ID: "1", Email: "admin@x.com", Role: models.RoleAdmin}, nil).Once()
	isAdmin, err := authService.IsAdmin("admin@x.com")
	assert.NoError(t, err)
	assert.True(t, isAdmin)

	mockRepo.On("GetByEmail", "user@x.com").Return(&models.User{ID: "2", Email: "user@x.com"}, nil).Once()
	isAdmin, err = authService.IsAdmin("user@x.com")
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	// Any non-admin role value is non-privileged.
	mockRepo.On("GetByEmail", "editor@x.com").Return(&models.User{ID: "3", Email: "editor@x.com", Role: "editor"}, nil).Once()
	isAdmin, err = authService.IsAdmin("editor@x.com")
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	// A deleted user is simply not an admin; no error.
	mockRepo.On("GetByEmail", "gone@x.com").Return(nil, notFoundErr("gone@x.com")).Once()
	isAdmin, err = authService.IsAdmin("gone@x.com")
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	mockRepo.AssertExpectations(t)
}
