package service

import (
	"campus/config"
	"campus/infras/mailer"
	"campus/infras/otel"
	activityModel "campus/internal/domains/activity/model"
	activityDto "campus/internal/domains/activity/model/dto"
	activityRepo "campus/internal/domains/activity/repository"
	gatepassModel "campus/internal/domains/gatepass/model"
	gatepassDto "campus/internal/domains/gatepass/model/dto"
	gatepassRepo "campus/internal/domains/gatepass/repository"
	lockerModel "campus/internal/domains/locker/model"
	lockerDto "campus/internal/domains/locker/model/dto"
	lockerRepo "campus/internal/domains/locker/repository"
	userModel "campus/internal/domains/user/model"
	userRepo "campus/internal/domains/user/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	KindLocker   = "locker"
	KindActivity = "activity"
	KindGatePass = "gatepass"
)

var kindLabels = map[string]string{
	KindLocker:   "Locker reservation",
	KindActivity: "Activity reservation",
	KindGatePass: "Gate pass",
}

type Admin interface {
	ListLockers(ctx context.Context, req gDto.QueryParams) (lockerDto.GetLockerReservationsResponse, error)
	ListActivities(ctx context.Context, req gDto.QueryParams) (activityDto.GetActivityReservationsResponse, error)
	ListGatePasses(ctx context.Context, req gDto.QueryParams) (gatepassDto.GetGatePassesResponse, error)
	SetStatus(ctx context.Context, kind, id, status string) error
	Delete(ctx context.Context, kind, id string) error
}

type serviceImpl struct {
	lockers    lockerRepo.Locker
	activities activityRepo.Activity
	gatePasses gatepassRepo.GatePass
	users      userRepo.User
	mailer     mailer.Mailer
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	lockers lockerRepo.Locker,
	activities activityRepo.Activity,
	gatePasses gatepassRepo.GatePass,
	users userRepo.User,
	mailer mailer.Mailer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Admin {
	return &serviceImpl{
		lockers:    lockers,
		activities: activities,
		gatePasses: gatePasses,
		users:      users,
		mailer:     mailer,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) ListLockers(ctx context.Context, req gDto.QueryParams) (res lockerDto.GetLockerReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListLockers")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.lockers.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to count locker reservations: %w", err)
	}

	models, err := s.lockers.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to list locker reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) ListActivities(ctx context.Context, req gDto.QueryParams) (res activityDto.GetActivityReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListActivities")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.activities.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to count activity reservations: %w", err)
	}

	models, err := s.activities.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to list activity reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) ListGatePasses(ctx context.Context, req gDto.QueryParams) (res gatepassDto.GetGatePassesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListGatePasses")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.gatePasses.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to count gate passes: %w", err)
	}

	models, err := s.gatePasses.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to list gate passes: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// SetStatus approves or rejects a request and notifies its owner by email.
// The notification is best effort: a failed send is logged, never surfaced.
func (s *serviceImpl) SetStatus(ctx context.Context, kind, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if status != constant.StatusApproved && status != constant.StatusRejected {
		return failure.BadRequestFromString(fmt.Sprintf("status must be %s or %s", constant.StatusApproved, constant.StatusRejected)) // nolint:wrapcheck
	}

	record, err := s.loadRecord(ctx, kind, id)
	if err != nil {
		return err
	}

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := map[string]any{
		"status":                 status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: adminID,
	}

	if err := s.updateRecord(ctx, kind, id, updatedFields); err != nil {
		return err
	}

	s.invalidateKindCaches(ctx, kind)
	s.notifyOwner(ctx, kind, record, status)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, kind, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err := s.loadRecord(ctx, kind, id); err != nil {
		return err
	}

	switch kind {
	case KindLocker:
		err = s.lockers.Delete(ctx, shared.FilterByID(id, lockerModel.FieldID, lockerModel.TableName))
	case KindActivity:
		err = s.activities.Delete(ctx, shared.FilterByID(id, activityModel.FieldID, activityModel.TableName))
	case KindGatePass:
		err = s.gatePasses.Delete(ctx, shared.FilterByID(id, gatepassModel.FieldID, gatepassModel.TableName))
	}

	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to delete request")

		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	s.invalidateKindCaches(ctx, kind)

	return nil
}

// ownedRecord is the slice of a request the notification path needs,
// regardless of kind.
type ownedRecord struct {
	userID    string
	userEmail string
	summary   string
}

func (s *serviceImpl) loadRecord(ctx context.Context, kind, id string) (ownedRecord, error) {
	switch kind {
	case KindLocker:
		mod, err := s.lockers.Get(ctx, shared.FilterByID(id, lockerModel.FieldID, lockerModel.TableName))
		if err != nil {
			return ownedRecord{}, fmt.Errorf("failed to get locker reservation: %w", err)
		}

		if mod.ID == constant.Empty {
			return ownedRecord{}, failure.NotFound("locker reservation not found") // nolint:wrapcheck
		}

		return ownedRecord{
			userID:    mod.UserID,
			userEmail: mod.UserEmail,
			summary: fmt.Sprintf("locker %s from %s to %s",
				mod.LockerNumber,
				timezone.Format(mod.StartDate, constant.DateOnlyFormat),
				timezone.Format(mod.EndDate, constant.DateOnlyFormat)),
		}, nil
	case KindActivity:
		mod, err := s.activities.Get(ctx, shared.FilterByID(id, activityModel.FieldID, activityModel.TableName))
		if err != nil {
			return ownedRecord{}, fmt.Errorf("failed to get activity reservation: %w", err)
		}

		if mod.ID == constant.Empty {
			return ownedRecord{}, failure.NotFound("activity reservation not found") // nolint:wrapcheck
		}

		return ownedRecord{
			userID:    mod.UserID,
			userEmail: mod.UserEmail,
			summary: fmt.Sprintf("%s on %s from %s to %s",
				mod.ActivityName,
				timezone.Format(mod.ActivityDate, constant.DateOnlyFormat),
				mod.StartTime,
				mod.EndTime),
		}, nil
	case KindGatePass:
		mod, err := s.gatePasses.Get(ctx, shared.FilterByID(id, gatepassModel.FieldID, gatepassModel.TableName))
		if err != nil {
			return ownedRecord{}, fmt.Errorf("failed to get gate pass: %w", err)
		}

		if mod.ID == constant.Empty {
			return ownedRecord{}, failure.NotFound("gate pass not found") // nolint:wrapcheck
		}

		return ownedRecord{
			userID:    mod.UserID,
			userEmail: mod.UserEmail,
			summary: fmt.Sprintf("gate pass to %s on %s at %s",
				mod.Destination,
				timezone.Format(mod.ExitDate, constant.DateOnlyFormat),
				mod.ExitTime),
		}, nil
	default:
		return ownedRecord{}, failure.BadRequestFromString("unknown request kind: " + kind) // nolint:wrapcheck
	}
}

func (s *serviceImpl) updateRecord(ctx context.Context, kind, id string, fields map[string]any) error {
	var err error

	switch kind {
	case KindLocker:
		err = s.lockers.Update(ctx, fields, shared.FilterByID(id, lockerModel.FieldID, lockerModel.TableName))
	case KindActivity:
		err = s.activities.Update(ctx, fields, shared.FilterByID(id, activityModel.FieldID, activityModel.TableName))
	case KindGatePass:
		err = s.gatePasses.Update(ctx, fields, shared.FilterByID(id, gatepassModel.FieldID, gatepassModel.TableName))
	}

	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to update request status")

		return fmt.Errorf("failed to update %s status: %w", kind, err)
	}

	return nil
}

// notifyOwner sends the status email without blocking or failing the review.
func (s *serviceImpl) notifyOwner(ctx context.Context, kind string, record ownedRecord, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		to := record.userEmail
		if to == "" {
			user, err := s.users.Get(c, shared.FilterByID(record.userID, userModel.FieldID, userModel.TableName))
			if err != nil || user.Email == "" {
				log.Error().Err(err).Str("userID", record.userID).Msg("failed to resolve owner email for notification")

				return
			}

			to = user.Email
		}

		subject := fmt.Sprintf("%s %s", kindLabels[kind], status)
		body := fmt.Sprintf(
			"<html><body><p>Your %s has been <strong>%s</strong>.</p><p>%s</p></body></html>",
			kindLabels[kind], status, record.summary,
		)

		if err := s.mailer.Send(c, to, subject, body); err != nil {
			log.Error().Err(err).Str("to", to).Str("kind", kind).Msg("failed to send status notification")
		}
	}()
}

func (s *serviceImpl) invalidateKindCaches(ctx context.Context, kind string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, kind)
		shared.InvalidateCaches(c, s.cache, "dashboard")
	}()
}
