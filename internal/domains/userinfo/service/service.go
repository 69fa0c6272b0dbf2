package service

import (
	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/userinfo/model"
	"campus/internal/domains/userinfo/model/dto"
	"campus/internal/domains/userinfo/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	"campus/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const cacheGetUserInfo = "userinfo:get"

type UserInfo interface {
	GetMine(ctx context.Context) (dto.UserInfoResponse, error)
	GetByUserID(ctx context.Context, userID string) (dto.UserInfoResponse, error)
	Upsert(ctx context.Context, req dto.UpsertUserInfoRequest) (dto.UserInfoResponse, error)
}

type serviceImpl struct {
	repo  repository.UserInfo
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.UserInfo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) UserInfo {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetMine(ctx context.Context) (res dto.UserInfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetUserInfo, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user info")

		return res, nil
	}

	info, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user info")

		return res, fmt.Errorf("failed to get user info: %w", err)
	}

	// Absent row is not an error: the profile simply has not been filled in.
	if info.UserID == constant.Empty {
		res.Skeleton(userID, userEmail)

		return res, nil
	}

	res.FromModel(info)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user info to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByUserID(ctx context.Context, userID string) (res dto.UserInfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUserID")
	defer scope.End()
	defer scope.TraceIfError(err)

	info, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user info")

		return res, fmt.Errorf("failed to get user info: %w", err)
	}

	if info.UserID == constant.Empty {
		return res, failure.NotFound("user info not found") // nolint:wrapcheck
	}

	res.FromModel(info)

	return res, nil
}

// Upsert inserts the caller's profile row or fully overwrites the existing one.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertUserInfoRequest) (res dto.UserInfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	info := req.ToModel(userID, userEmail)

	if err := s.repo.Upsert(ctx, info); err != nil {
		log.Error().Err(err).Msg("failed to upsert user info")

		return res, fmt.Errorf("failed to upsert user info: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetUserInfo, userID))
	}()

	res.FromModel(info)

	return res, nil
}
