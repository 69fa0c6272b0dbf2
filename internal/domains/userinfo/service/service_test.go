package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	"campus/infras/otel/mocks"
	userinfoMocks "campus/internal/domains/userinfo/mocks"
	"campus/internal/domains/userinfo/model"
	"campus/internal/domains/userinfo/model/dto"
	"campus/internal/domains/userinfo/service"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
)

func userContext(userID, email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, email)
}

func TestUserInfoService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userinfoMocks.NewMockUserInfo(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("registered profile", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.UserInfo{
				UserID:        "user-1",
				FirstName:     "Jane",
				LastName:      "Doe",
				ContactNumber: "08123456789",
				Semester:      "5",
				Email:         "jane@campus.test",
			}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetMine(userContext("user-1", "jane@campus.test"))

		assert.NoError(t, err)
		assert.True(t, res.IsRegistered)
		assert.Equal(t, "Jane", res.FirstName)
	})

	t.Run("unregistered profile yields skeleton", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.UserInfo{}, nil)

		res, err := svc.GetMine(userContext("user-2", "john@campus.test"))

		assert.NoError(t, err)
		assert.False(t, res.IsRegistered)
		assert.Equal(t, "user-2", res.UserID)
		assert.Equal(t, "john@campus.test", res.Email)
		assert.Empty(t, res.FirstName)
	})

	t.Run("missing caller identity", func(t *testing.T) {
		_, err := svc.GetMine(context.Background())

		assert.Error(t, err)
	})
}

func TestUserInfoService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userinfoMocks.NewMockUserInfo(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	req := dto.UpsertUserInfoRequest{
		FirstName:     "Jane",
		LastName:      "Doe",
		ContactNumber: "08123456789",
		Semester:      "5",
	}

	t.Run("upsert writes the full row in one statement", func(t *testing.T) {
		mockRepo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, info model.UserInfo) error {
				assert.Equal(t, "user-1", info.UserID)
				assert.Equal(t, "Jane", info.FirstName)
				assert.Equal(t, "jane@campus.test", info.Email)

				return nil
			})

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Upsert(userContext("user-1", "jane@campus.test"), req)

		assert.NoError(t, err)
		assert.True(t, res.IsRegistered)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, "jane@campus.test", res.Email)
	})

	t.Run("upsert error", func(t *testing.T) {
		mockRepo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := svc.Upsert(userContext("user-1", "jane@campus.test"), req)

		assert.Error(t, err)
	})
}
