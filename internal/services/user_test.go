package service_test

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-signing-key")

func TestRegister(t *testing.T) {
	ctx := context.Background()

	req := &models.RegisterRequest{
		Username: "sam",
		Email:    "sam@example.com",
		Password: "correct-horse",
	}

	t.Run("Success - First User Becomes Admin", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := service.NewUserService(userRepo, new(mockRateLimitRepo), testJWTKey, time.Hour)

		userRepo.On("UsernameExists", ctx, "sam").Return(false, nil).Once()
		userRepo.On("EmailExists", ctx, "sam@example.com").Return(false, nil).Once()
		userRepo.On("CountUsers", ctx).Return(0, nil).Once()
		userRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		user, err := svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
		userRepo.AssertExpectations(t)
	})

	t.Run("Success - Later Users Are Regular", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := service.NewUserService(userRepo, new(mockRateLimitRepo), testJWTKey, time.Hour)

		userRepo.On("UsernameExists", ctx, "sam").Return(false, nil).Once()
		userRepo.On("EmailExists", ctx, "sam@example.com").Return(false, nil).Once()
		userRepo.On("CountUsers", ctx).Return(12, nil).Once()
		userRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		user, err := svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("Failure - Username Taken", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := service.NewUserService(userRepo, new(mockRateLimitRepo), testJWTKey, time.Hour)

		userRepo.On("UsernameExists", ctx, "sam").Return(true, nil).Once()

		_, err := svc.Register(ctx, req)

		assertAppError(t, err, appErrors.ErrCodeDuplicateEntry)
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := service.NewUserService(userRepo, new(mockRateLimitRepo), testJWTKey, time.Hour)

		userRepo.On("UsernameExists", ctx, "sam").Return(false, nil).Once()
		userRepo.On("EmailExists", ctx, "sam@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, req)

		assertAppError(t, err, appErrors.ErrCodeDuplicateEntry)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           1,
		Username:     "sam",
		Email:        "sam@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	t.Run("Success - By Username", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		rateLimit := new(mockRateLimitRepo)
		svc := service.NewUserService(userRepo, rateLimit, testJWTKey, time.Hour)

		rateLimit.On("CheckLoginRateLimit", ctx, "sam").Return(true, 4, 0, nil).Once()
		userRepo.On("GetUserByLogin", ctx, "sam").Return(storedUser, nil).Once()

		result, err := svc.Login(ctx, &models.LoginRequest{Login: "sam", Password: "correct-horse"})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Token)
		assert.Positive(t, result.ExpiresIn)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		rateLimit := new(mockRateLimitRepo)
		svc := service.NewUserService(userRepo, rateLimit, testJWTKey, time.Hour)

		rateLimit.On("CheckLoginRateLimit", ctx, "sam").Return(true, 3, 0, nil).Once()
		userRepo.On("GetUserByLogin", ctx, "sam").Return(storedUser, nil).Once()

		result, err := svc.Login(ctx, &models.LoginRequest{Login: "sam", Password: "wrong"})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.Token)
		assert.Equal(t, 3, result.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		rateLimit := new(mockRateLimitRepo)
		svc := service.NewUserService(userRepo, rateLimit, testJWTKey, time.Hour)

		rateLimit.On("CheckLoginRateLimit", ctx, "sam").Return(false, 0, 42, nil).Once()

		result, err := svc.Login(ctx, &models.LoginRequest{Login: "sam", Password: "correct-horse"})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 42, result.RetryAfter)
		userRepo.AssertNotCalled(t, "GetUserByLogin", ctx, "sam")
	})
}
