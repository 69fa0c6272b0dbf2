package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	"campus/infras/otel/mocks"
	gatepassMocks "campus/internal/domains/gatepass/mocks"
	"campus/internal/domains/gatepass/model"
	"campus/internal/domains/gatepass/model/dto"
	"campus/internal/domains/gatepass/service"
	"campus/shared"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	"campus/shared/failure"
)

func userContext(userID, email, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestGatePassService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := gatepassMocks.NewMockGatePass(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateGatePassRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation with return pair",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req: dto.CreateGatePassRequest{
				Destination: "City library",
				ExitDate:    "2025-05-01",
				ExitTime:    "08:00",
				ReturnDate:  "2025-05-01",
				ReturnTime:  "17:00",
				Reason:      "Research visit",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "successful creation without return pair",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req: dto.CreateGatePassRequest{
				Destination: "Home",
				ExitDate:    "2025-05-02",
				ExitTime:    "14:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "return date without return time is rejected",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req: dto.CreateGatePassRequest{
				Destination: "City library",
				ExitDate:    "2025-05-01",
				ExitTime:    "08:00",
				ReturnDate:  "2025-05-01",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "return time without return date is rejected",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req: dto.CreateGatePassRequest{
				Destination: "City library",
				ExitDate:    "2025-05-01",
				ExitTime:    "08:00",
				ReturnTime:  "17:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalid exit time format",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req: dto.CreateGatePassRequest{
				Destination: "City library",
				ExitDate:    "2025-05-01",
				ExitTime:    "8 o'clock",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing caller identity",
			ctx:  context.Background(),
			req: dto.CreateGatePassRequest{
				Destination: "City library",
				ExitDate:    "2025-05-01",
				ExitTime:    "08:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "repository error",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req: dto.CreateGatePassRequest{
				Destination: "City library",
				ExitDate:    "2025-05-01",
				ExitTime:    "08:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, "user-1", res.UserID)
				assert.Equal(t, constant.StatusPending, res.Status)
			}
		})
	}
}

func TestGatePassService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := gatepassMocks.NewMockGatePass(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	owned := model.GatePass{
		ID:          "pass-1",
		UserID:      "user-1",
		Destination: "City library",
		ExitTime:    "08:00",
		Status:      constant.StatusPending,
	}

	t.Run("owner updates destination", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Update(
			userContext("user-1", "jane@campus.test", constant.RoleUser),
			dto.UpdateGatePassRequest{Destination: "Train station"},
			"pass-1",
		)

		assert.NoError(t, err)
	})

	t.Run("half of the return pair is rejected", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		err := svc.Update(
			userContext("user-1", "jane@campus.test", constant.RoleUser),
			dto.UpdateGatePassRequest{ReturnDate: "2025-05-01"},
			"pass-1",
		)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("another user's pass resolves to not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		err := svc.Update(
			userContext("user-2", "john@campus.test", constant.RoleUser),
			dto.UpdateGatePassRequest{Destination: "Train station"},
			"pass-1",
		)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGatePassService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := gatepassMocks.NewMockGatePass(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	owned := model.GatePass{
		ID:     "pass-1",
		UserID: "user-1",
		Status: constant.StatusApproved,
	}

	t.Run("owner deletes own pass", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Delete(userContext("user-1", "jane@campus.test", constant.RoleUser), "pass-1")

		assert.NoError(t, err)
	})

	t.Run("pass not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.GatePass{}, nil)

		err := svc.Delete(userContext("user-1", "jane@campus.test", constant.RoleUser), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
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

func TestGatePassService_CreateEvictsDashboardCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := gatepassMocks.NewMockGatePass(ctrl)
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

	_, err := svc.Create(userContext("user-1", "jane@campus.test", constant.RoleUser), dto.CreateGatePassRequest{
		Destination: "City library",
		ExitDate:    "2025-05-01",
		ExitTime:    "08:00",
		Reason:      "Research visit",
	})

	assert.NoError(t, err)
	waitForDashboardEviction(t, cleared, "user-1")
}
