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
	activityMocks "campus/internal/domains/activity/mocks"
	"campus/internal/domains/activity/model"
	"campus/internal/domains/activity/model/dto"
	"campus/internal/domains/activity/service"
	"campus/shared"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	"campus/shared/failure"
	"campus/shared/timezone"
)

func date(value string) time.Time {
	t, err := timezone.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		panic(err)
	}

	return t
}

func userContext(userID, email, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestActivityService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	existing := model.ActivityReservation{
		ID:           "existing-id",
		UserID:       "other-user",
		ActivityName: "Chess club",
		ActivityDate: date("2025-04-01"),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Status:       constant.StatusApproved,
	}

	validReq := func(start, end string) dto.CreateActivityReservationRequest {
		return dto.CreateActivityReservationRequest{
			ActivityName: "Study group",
			ActivityDate: "2025-04-01",
			StartTime:    start,
			EndTime:      end,
			Description:  "Weekly session",
		}
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateActivityReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "touching windows do not conflict",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req:  validReq("09:00", "10:00"),
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.ActivityReservation{existing}, nil)

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
			name: "overlapping window is rejected",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req:  validReq("09:30", "10:30"),
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.ActivityReservation{existing}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "window containing an existing one is rejected",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req:  validReq("09:00", "12:00"),
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.ActivityReservation{existing}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:      "start time not before end time",
			ctx:       userContext("user-1", "jane@campus.test", constant.RoleUser),
			req:       validReq("10:00", "10:00"),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "invalid time format",
			ctx:       userContext("user-1", "jane@campus.test", constant.RoleUser),
			req:       validReq("9am", "10:00"),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing caller identity",
			ctx:       context.Background(),
			req:       validReq("09:00", "10:00"),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "repository error",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			req:  validReq("13:00", "14:00"),
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

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

func TestActivityService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	owned := model.ActivityReservation{
		ID:           "res-1",
		UserID:       "user-1",
		ActivityName: "Study group",
		ActivityDate: date("2025-04-01"),
		StartTime:    "09:00",
		EndTime:      "10:00",
		Status:       constant.StatusPending,
	}

	other := model.ActivityReservation{
		ID:           "res-2",
		UserID:       "other-user",
		ActivityName: "Chess club",
		ActivityDate: date("2025-04-01"),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Status:       constant.StatusApproved,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		id        string
		req       dto.UpdateActivityReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update excludes own record from overlap check",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			id:   "res-1",
			req:  dto.UpdateActivityReservationRequest{StartTime: "08:30"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.ActivityReservation{other}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "new window overlapping another reservation is rejected",
			ctx:  userContext("user-1", "jane@campus.test", constant.RoleUser),
			id:   "res-1",
			req:  dto.UpdateActivityReservationRequest{EndTime: "10:30"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.ActivityReservation{other}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "another user's reservation resolves to not found",
			ctx:  userContext("user-2", "john@campus.test", constant.RoleUser),
			id:   "res-1",
			req:  dto.UpdateActivityReservationRequest{StartTime: "08:30"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:      "empty update request",
			ctx:       userContext("user-1", "jane@campus.test", constant.RoleUser),
			id:        "res-1",
			req:       dto.UpdateActivityReservationRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(tt.ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActivityService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	owned := model.ActivityReservation{
		ID:     "res-1",
		UserID: "user-1",
		Status: constant.StatusApproved,
	}

	t.Run("owner deletes own reservation", func(t *testing.T) {
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

		err := svc.Delete(userContext("user-1", "jane@campus.test", constant.RoleUser), "res-1")

		assert.NoError(t, err)
	})

	t.Run("reservation not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.ActivityReservation{}, nil)

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

func TestActivityService_DeleteEvictsDashboardCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivity(ctrl)
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
		Get(gomock.Any(), gomock.Any()).
		Return(model.ActivityReservation{ID: "res-1", UserID: "user-1", Status: constant.StatusApproved}, nil)

	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil)

	err := svc.Delete(userContext("user-1", "jane@campus.test", constant.RoleUser), "res-1")

	assert.NoError(t, err)
	waitForDashboardEviction(t, cleared, "user-1")
}
