package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository, notifier notify.Notifier) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, notifier, zap.NewNop())
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	notifier := new(MockNotifier)
	notifier.On("Notify", notify.KindUserRegistered).Return(nil)
	authService := newAuthService(mockRepo, notifier)

	user := &models.User{Email: " Test@Example.com ", Password: "password123"}
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.Equal(t, []notify.Kind{notify.KindUserRegistered}, notifier.kinds())
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(context.Background(), &models.User{Email: "test@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	assert.Contains(t, err.Error(), "email 'test@example.com'")
	mockRepo.AssertExpectations(t)

	// Test unique index race
	mockRepo.On("GetByEmail", "race@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()
	err = authService.RegisterUser(context.Background(), &models.User{Email: "race@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CreateSuperuser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	notifier := new(MockNotifier)
	authService := newAuthService(mockRepo, notifier)

	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.IsSuperuser && u.IsStaff && u.IsActive
	})).Return(nil).Once()

	user, err := authService.CreateSuperuser(context.Background(), "admin@example.com", "supersecret")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.Empty(t, notifier.kinds())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:          "user-123",
		Email:       "test@example.com",
		Password:    string(hashedPassword),
		IsSuperuser: true,
		IsActive:    true,
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(context.Background(), "test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, true, claims["is_superuser"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(context.Background(), user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	_, err = authService.LoginUser(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Test inactive account
	inactive := *user
	inactive.IsActive = false
	mockRepo.On("GetByEmail", user.Email).Return(&inactive, nil).Once()
	_, err = authService.LoginUser(context.Background(), user.Email, "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository), nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"email":   "test@example.com",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "test@example.com", claims["email"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	otherSecret, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(otherSecret)
	assert.Error(t, err)

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
