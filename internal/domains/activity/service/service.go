package service

import (
	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/activity/model"
	"campus/internal/domains/activity/model/dto"
	"campus/internal/domains/activity/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/overlap"
	"campus/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetActivity    = "activity:get"
	cacheGetAllActivity = "activity:gets"
	cacheCountActivity  = "activity:count"
)

type Activity interface {
	Create(ctx context.Context, req dto.CreateActivityReservationRequest) (dto.ActivityReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetActivityReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ActivityReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateActivityReservationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Activity
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Activity, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Activity {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateActivityReservationRequest) (res dto.ActivityReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	reservation, err := req.ToModel(userID, userEmail)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse activity reservation request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date or time format: %v", err)) // nolint:wrapcheck
	}

	if err = validateWindow(reservation); err != nil {
		return res, err
	}

	conflicting, err := s.findConflict(ctx, reservation, "")
	if err != nil {
		return res, err
	}

	if conflicting != nil {
		return res, conflictError(*conflicting) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create activity reservation")

		return res, fmt.Errorf("failed to create activity reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllActivity)
		shared.InvalidateCaches(c, s.cache, cacheCountActivity)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetActivityReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllActivity, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for activity reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count activity reservations")

		return res, fmt.Errorf("failed to count activity reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity reservations")

		return res, fmt.Errorf("failed to get activity reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save activity reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountActivity, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count activity reservations")

		return res, fmt.Errorf("failed to count activity reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save activity reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ActivityReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetActivity, id, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for activity reservation")

		return res, nil
	}

	reservation, err := s.loadOwned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save activity reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateActivityReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateActivityReservationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}

	merged, err := req.Apply(existing)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse activity reservation update")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date or time format: %v", err)) // nolint:wrapcheck
	}

	if err = validateWindow(merged); err != nil {
		return err
	}

	conflicting, err := s.findConflict(ctx, merged, id)
	if err != nil {
		return err
	}

	if conflicting != nil {
		return conflictError(*conflicting) // nolint:wrapcheck
	}

	updatedFields := req.ToUpdatedFields(merged, userID)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update activity reservation")

		return fmt.Errorf("failed to update activity reservation: %w", err)
	}

	s.invalidateRecordCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err := s.loadOwned(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete activity reservation")

		return fmt.Errorf("failed to delete activity reservation: %w", err)
	}

	s.invalidateRecordCaches(ctx, id)

	return nil
}

// loadOwned fetches a reservation and enforces ownership. Records belonging to
// another user resolve to not-found so record ids are not probeable. Admins
// bypass the ownership check.
func (s *serviceImpl) loadOwned(ctx context.Context, id string) (model.ActivityReservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity reservation")

		return reservation, fmt.Errorf("failed to get activity reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("activity reservation not found") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && reservation.UserID != userID {
		return reservation, failure.NotFound("activity reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// findConflict returns the first active reservation on the same date whose
// clock range strictly overlaps the candidate's. The activity space is a
// single shared resource, so the date alone scopes the check.
func (s *serviceImpl) findConflict(ctx context.Context, candidate model.ActivityReservation, excludeID string) (*model.ActivityReservation, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActivityDate,
				Operator: gDto.FilterOperatorEq,
				Value:    candidate.ActivityDate,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "active_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{constant.StatusPending, constant.StatusApproved},
				Table:    model.TableName,
			},
		},
	}

	if excludeID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load active activity reservations")

		return nil, fmt.Errorf("failed to load active activity reservations: %w", err)
	}

	ranges := make([]overlap.TimeRange, len(existing))
	for i, reservation := range existing {
		ranges[i] = dto.Window(reservation)
	}

	idx := overlap.FirstTimeConflict(dto.Window(candidate), ranges)
	if idx == -1 {
		return nil, nil
	}

	return &existing[idx], nil
}

func validateWindow(reservation model.ActivityReservation) error {
	window := dto.Window(reservation)
	if !window.Start.Before(window.End) {
		return failure.BadRequestFromString("start_time must be before end_time") // nolint:wrapcheck
	}

	return nil
}

func conflictError(conflicting model.ActivityReservation) error {
	return failure.Conflict(fmt.Sprintf(
		"activity space is already booked on %s from %s to %s",
		timezone.Format(conflicting.ActivityDate, constant.DateOnlyFormat),
		conflicting.StartTime,
		conflicting.EndTime,
	))
}

func (s *serviceImpl) invalidateRecordCaches(ctx context.Context, id string) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetActivity, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllActivity)
		shared.InvalidateCaches(c, s.cache, cacheCountActivity)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()
}
