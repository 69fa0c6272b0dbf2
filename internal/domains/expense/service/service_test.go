package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	"campus/infras/otel/mocks"
	expenseMocks "campus/internal/domains/expense/mocks"
	"campus/internal/domains/expense/model"
	"campus/internal/domains/expense/model/dto"
	"campus/internal/domains/expense/service"
	"campus/shared"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/timezone"
)

func userContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, userID+"@campus.test")
}

func TestExpenseService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := expenseMocks.NewMockExpense(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("successful creation", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(userContext("user-1"), dto.CreateExpenseRequest{
			Description: "Textbooks",
			Amount:      125.50,
			Date:        "2025-06-01",
			Category:    "Books",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, 125.50, res.Amount)
	})

	t.Run("date defaults to today", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(userContext("user-1"), dto.CreateExpenseRequest{
			Description: "Lunch",
			Amount:      8,
		})

		assert.NoError(t, err)
		assert.Equal(t, timezone.Format(timezone.Now(), constant.DateOnlyFormat), res.Date)
	})

	t.Run("invalid date format", func(t *testing.T) {
		_, err := svc.Create(userContext("user-1"), dto.CreateExpenseRequest{
			Description: "Lunch",
			Amount:      8,
			Date:        "June 1st",
		})

		assert.Error(t, err)
	})

	t.Run("missing caller identity", func(t *testing.T) {
		_, err := svc.Create(context.Background(), dto.CreateExpenseRequest{
			Description: "Lunch",
			Amount:      8,
		})

		assert.Error(t, err)
	})
}

func TestExpenseService_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := expenseMocks.NewMockExpense(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("returns newest first with the requested limit", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Expense, error) {
				assert.Equal(t, 5, params.Limit)
				assert.Equal(t, model.FieldDate, params.SortBy)
				assert.Equal(t, "DESC", params.SortDir)

				return []model.Expense{{ID: "exp-1", UserID: "user-1", Amount: 10}}, nil
			})

		res, err := svc.Recent(context.Background(), "user-1", 5)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Recent(context.Background(), "user-1", 5)

		assert.Error(t, err)
	})
}

func waitForDashboardEviction(t *testing.T, cleared <-chan string, userID string) {
	t.Helper()

	pending := map[string]bool{
		shared.BuildCacheKey(constant.CacheKeyDashboardSummary, userID) + constant.Asterix:  true,
		shared.BuildCacheKey(constant.CacheKeyDashboardCalendar, userID) + constant.Asterix: true,
	}

	timeout := time.After(time.Second)

	for len(pending) > 0 {
		select {
		case prefix := <-cleared:
			delete(pending, prefix)
		case <-timeout:
			t.Fatalf("dashboard caches were not evicted, still waiting for %v", pending)
		}
	}
}

func TestExpenseService_CreateEvictsDashboardCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := expenseMocks.NewMockExpense(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	cleared := make(chan string, 16)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prefix string) error {
			cleared <- prefix

			return nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := svc.Create(userContext("user-1"), dto.CreateExpenseRequest{
		Description: "Textbooks",
		Amount:      125.50,
		Date:        "2025-06-01",
		Category:    "Books",
	})

	assert.NoError(t, err)
	waitForDashboardEviction(t, cleared, "user-1")
}
