package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"feedbackme/internal/config"
	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(repo *MockUserRepository) *authService {
	cfg := &config.Config{JWTSecret: testSecret, AccessTokenTTL: 15 * time.Minute}
	return NewAuthService(repo, cfg, testLogger()).(*authService)
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register(context.Background(), dto.RegisterRequest{
		Name:     " Test User ",
		Email:    "Test@Example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "Test User", *user.Name)
	assert.NoError(t, auth.VerifyPassword(user.PasswordHash, "password123"))
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&models.User{Email: "test@example.com"}, nil)

	user, err := authService.Register(context.Background(), dto.RegisterRequest{Name: "x", Email: "test@example.com", Password: "password123"})

	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateOnInsert(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := authService.Register(context.Background(), dto.RegisterRequest{Name: "x", Email: "race@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestRegister_MultibytePasswordTooLong(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByEmail", mock.Anything, "long@example.com").Return(nil, gorm.ErrRecordNotFound)

	// 40 runes pass binding but take 80 bytes
	_, err := authService.Register(context.Background(), dto.RegisterRequest{
		Name:     "x",
		Email:    "long@example.com",
		Password: strings.Repeat("é", 40),
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Equal(t, KindValidation, KindOf(err))
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_SuccessAndValidate(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{ID: "user-1", Email: "test@example.com", Name: strPtr("Tester"), PasswordHash: hash}
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	resp, err := authService.Login(context.Background(), dto.LoginRequest{Email: "TEST@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)

	claims, err := authService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "Tester", claims.Name)
	assert.Equal(t, "access", claims.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	hash, _ := auth.HashPassword("password123")
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&models.User{ID: "u", PasswordHash: hash}, nil)

	_, err := authService.Login(context.Background(), dto.LoginRequest{Email: "test@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := authService.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestValidateToken_Rejects(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository))

	sign := func(claims Claims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	t.Run("expired", func(t *testing.T) {
		expired := Claims{UserID: "u", Type: "access", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		_, err := authService.ValidateToken(sign(expired, jwt.SigningMethodHS256, []byte(testSecret)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		claims := Claims{UserID: "u", Type: "access", RegisteredClaims: valid}
		_, err := authService.ValidateToken(sign(claims, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx")))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong type", func(t *testing.T) {
		claims := Claims{UserID: "u", Type: "refresh", RegisteredClaims: valid}
		_, err := authService.ValidateToken(sign(claims, jwt.SigningMethodHS256, []byte(testSecret)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := authService.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)
	mockUserRepo.On("FindByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := authService.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
