package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	mailerMocks "campus/infras/mailer/mocks"
	"campus/infras/otel/mocks"
	activityMocks "campus/internal/domains/activity/mocks"
	"campus/internal/domains/admin/service"
	gatepassMocks "campus/internal/domains/gatepass/mocks"
	lockerMocks "campus/internal/domains/locker/mocks"
	lockerModel "campus/internal/domains/locker/model"
	userMocks "campus/internal/domains/user/mocks"
	userModel "campus/internal/domains/user/model"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
)

type fixture struct {
	lockers    *lockerMocks.MockLocker
	activities *activityMocks.MockActivity
	gatePasses *gatepassMocks.MockGatePass
	users      *userMocks.MockUser
	mailer     *mailerMocks.MockMailer
	cache      *cacheMocks.MockRedisCache
	svc        service.Admin
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		lockers:    lockerMocks.NewMockLocker(ctrl),
		activities: activityMocks.NewMockActivity(ctrl),
		gatePasses: gatepassMocks.NewMockGatePass(ctrl),
		users:      userMocks.NewMockUser(ctrl),
		mailer:     mailerMocks.NewMockMailer(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.lockers, f.activities, f.gatePasses, f.users, f.mailer, cfg, f.cache, mocks.NewOtel())

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "admin@campus.test")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func gDtoParams() gDto.QueryParams {
	return gDto.QueryParams{Page: 1, Limit: 10, SortBy: "request_date", SortDir: "DESC"}
}

func date(value string) time.Time {
	t, err := timezone.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestAdminService_SetStatus(t *testing.T) {
	reservation := lockerModel.LockerReservation{
		ID:           "res-1",
		UserID:       "user-1",
		UserEmail:    "jane@campus.test",
		LockerNumber: "L1",
		StartDate:    date("2025-01-10"),
		EndDate:      date("2025-01-15"),
		Status:       constant.StatusPending,
	}

	t.Run("approval persists and notifies the owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		f.lockers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reservation, nil)

		f.lockers.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, constant.StatusApproved, fields["status"])

				return nil
			})

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		sent := make(chan string, 1)
		f.mailer.EXPECT().
			Send(gomock.Any(), "jane@campus.test", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, to, _, _ string) error {
				sent <- to

				return nil
			})

		err := f.svc.SetStatus(adminContext(), service.KindLocker, "res-1", constant.StatusApproved)

		assert.NoError(t, err)

		select {
		case to := <-sent:
			assert.Equal(t, "jane@campus.test", to)
		case <-time.After(time.Second):
			t.Fatal("notification was not sent")
		}
	})

	t.Run("missing record yields not found and no notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		f.lockers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(lockerModel.LockerReservation{}, nil)

		err := f.svc.SetStatus(adminContext(), service.KindLocker, "missing-id", constant.StatusApproved)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("owner email resolved from the users table when not denormalized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		withoutEmail := reservation
		withoutEmail.UserEmail = ""

		f.lockers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(withoutEmail, nil)

		f.lockers.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		f.users.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-1", Email: "jane@campus.test"}, nil)

		sent := make(chan string, 1)
		f.mailer.EXPECT().
			Send(gomock.Any(), "jane@campus.test", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, to, _, _ string) error {
				sent <- to

				return nil
			})

		err := f.svc.SetStatus(adminContext(), service.KindLocker, "res-1", constant.StatusRejected)

		assert.NoError(t, err)

		select {
		case <-sent:
		case <-time.After(time.Second):
			t.Fatal("notification was not sent")
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		err := f.svc.SetStatus(adminContext(), service.KindLocker, "res-1", "Archived")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		err := f.svc.SetStatus(adminContext(), "parking", "res-1", constant.StatusApproved)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAdminService_Delete(t *testing.T) {
	t.Run("deletes an existing request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		f.lockers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(lockerModel.LockerReservation{ID: "res-1", UserID: "user-1"}, nil)

		f.lockers.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := f.svc.Delete(adminContext(), service.KindLocker, "res-1")

		assert.NoError(t, err)
	})

	t.Run("missing record yields not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		f.lockers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(lockerModel.LockerReservation{}, nil)

		err := f.svc.Delete(adminContext(), service.KindLocker, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAdminService_ListLockers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.lockers.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	f.lockers.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]lockerModel.LockerReservation{{ID: "res-1", UserID: "user-1"}}, nil)

	res, err := f.svc.ListLockers(adminContext(), gDtoParams())

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Reservations, 1)
}
