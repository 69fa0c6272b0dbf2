package service

import (
	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/locker/model"
	"campus/internal/domains/locker/model/dto"
	"campus/internal/domains/locker/repository"
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
	cacheGetLocker    = "locker:get"
	cacheGetAllLocker = "locker:gets"
	cacheCountLocker  = "locker:count"
)

type Locker interface {
	Create(ctx context.Context, req dto.CreateLockerReservationRequest) (dto.LockerReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLockerReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.LockerReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateLockerReservationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Locker
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Locker, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Locker {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLockerReservationRequest) (res dto.LockerReservationResponse, err error) {
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
		log.Error().Err(err).Msg("failed to parse locker reservation request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if reservation.EndDate.Before(reservation.StartDate) {
		return res, failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	// The read-check-insert sequence is not serialized; see DESIGN.md.
	conflicting, err := s.findConflict(ctx, reservation, "")
	if err != nil {
		return res, err
	}

	if conflicting != nil {
		return res, conflictError(*conflicting) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create locker reservation")

		return res, fmt.Errorf("failed to create locker reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllLocker)
		shared.InvalidateCaches(c, s.cache, cacheCountLocker)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLockerReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLocker, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for locker reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count locker reservations")

		return res, fmt.Errorf("failed to count locker reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get locker reservations")

		return res, fmt.Errorf("failed to get locker reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save locker reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLocker, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count locker reservations")

		return res, fmt.Errorf("failed to count locker reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save locker reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LockerReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetLocker, id, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for locker reservation")

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
			log.Error().Err(err).Msg("failed to save locker reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLockerReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateLockerReservationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}

	merged, err := req.Apply(existing)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse locker reservation update")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if merged.EndDate.Before(merged.StartDate) {
		return failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
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
		log.Error().Err(err).Msg("failed to update locker reservation")

		return fmt.Errorf("failed to update locker reservation: %w", err)
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
		log.Error().Err(err).Msg("failed to delete locker reservation")

		return fmt.Errorf("failed to delete locker reservation: %w", err)
	}

	s.invalidateRecordCaches(ctx, id)

	return nil
}

// loadOwned fetches a reservation and enforces ownership. Records belonging to
// another user resolve to not-found instead of forbidden so record ids are not
// probeable. Admins bypass the ownership check.
func (s *serviceImpl) loadOwned(ctx context.Context, id string) (model.LockerReservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get locker reservation")

		return reservation, fmt.Errorf("failed to get locker reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("locker reservation not found") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && reservation.UserID != userID {
		return reservation, failure.NotFound("locker reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// findConflict returns the first active reservation for the same locker whose
// date range overlaps the candidate's, excluding excludeID when updating.
func (s *serviceImpl) findConflict(ctx context.Context, candidate model.LockerReservation, excludeID string) (*model.LockerReservation, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLockerNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    candidate.LockerNumber,
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
		log.Error().Err(err).Msg("failed to load active locker reservations")

		return nil, fmt.Errorf("failed to load active locker reservations: %w", err)
	}

	ranges := make([]overlap.DateRange, len(existing))
	for i, reservation := range existing {
		ranges[i] = dto.Window(reservation)
	}

	idx := overlap.FirstDateConflict(dto.Window(candidate), ranges)
	if idx == -1 {
		return nil, nil
	}

	return &existing[idx], nil
}

func conflictError(conflicting model.LockerReservation) error {
	return failure.Conflict(fmt.Sprintf(
		"locker %s is already reserved from %s to %s",
		conflicting.LockerNumber,
		timezone.Format(conflicting.StartDate, constant.DateOnlyFormat),
		timezone.Format(conflicting.EndDate, constant.DateOnlyFormat),
	))
}

func (s *serviceImpl) invalidateRecordCaches(ctx context.Context, id string) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetLocker, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllLocker)
		shared.InvalidateCaches(c, s.cache, cacheCountLocker)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()
}
