package service

import (
	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/gatepass/model"
	"campus/internal/domains/gatepass/model/dto"
	"campus/internal/domains/gatepass/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGatePass    = "gatepass:get"
	cacheGetAllGatePass = "gatepass:gets"
	cacheCountGatePass  = "gatepass:count"
)

// Gate passes are not a contended resource, so there is no conflict check:
// a student may hold any number of passes at once.
type GatePass interface {
	Create(ctx context.Context, req dto.CreateGatePassRequest) (dto.GatePassResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGatePassesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.GatePassResponse, error)
	Update(ctx context.Context, req dto.UpdateGatePassRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.GatePass
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.GatePass, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) GatePass {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGatePassRequest) (res dto.GatePassResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	gatePass, err := req.ToModel(userID, userEmail)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse gate pass request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid gate pass request: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, gatePass); err != nil {
		log.Error().Err(err).Msg("failed to create gate pass")

		return res, fmt.Errorf("failed to create gate pass: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGatePass)
		shared.InvalidateCaches(c, s.cache, cacheCountGatePass)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()

	res.FromModel(gatePass)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGatePassesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGatePass, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gate passes")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gate passes")

		return res, fmt.Errorf("failed to count gate passes: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gate passes")

		return res, fmt.Errorf("failed to get gate passes: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gate passes to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGatePass, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gate passes")

		return res, fmt.Errorf("failed to count gate passes: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gate pass count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GatePassResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetGatePass, id, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gate pass")

		return res, nil
	}

	gatePass, err := s.loadOwned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(gatePass)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gate pass to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGatePassRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateGatePassRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}

	merged, err := req.Apply(existing)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse gate pass update")

		return failure.BadRequestFromString(fmt.Sprintf("invalid gate pass update: %v", err)) // nolint:wrapcheck
	}

	updatedFields := req.ToUpdatedFields(merged, userID)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update gate pass")

		return fmt.Errorf("failed to update gate pass: %w", err)
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
		log.Error().Err(err).Msg("failed to delete gate pass")

		return fmt.Errorf("failed to delete gate pass: %w", err)
	}

	s.invalidateRecordCaches(ctx, id)

	return nil
}

// loadOwned fetches a gate pass and enforces ownership. Records belonging to
// another user resolve to not-found so record ids are not probeable. Admins
// bypass the ownership check.
func (s *serviceImpl) loadOwned(ctx context.Context, id string) (model.GatePass, error) {
	gatePass, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gate pass")

		return gatePass, fmt.Errorf("failed to get gate pass: %w", err)
	}

	if gatePass.ID == constant.Empty {
		return gatePass, failure.NotFound("gate pass not found") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && gatePass.UserID != userID {
		return gatePass, failure.NotFound("gate pass not found") // nolint:wrapcheck
	}

	return gatePass, nil
}

func (s *serviceImpl) invalidateRecordCaches(ctx context.Context, id string) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetGatePass, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllGatePass)
		shared.InvalidateCaches(c, s.cache, cacheCountGatePass)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()
}
