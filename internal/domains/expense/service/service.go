package service

import (
	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/expense/model"
	"campus/internal/domains/expense/model/dto"
	"campus/internal/domains/expense/repository"
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
	cacheGetAllExpense = "expense:gets"
	cacheCountExpense  = "expense:count"
)

type Expense interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (dto.ExpenseResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetExpensesResponse, error)
	Recent(ctx context.Context, userID string, limit int) ([]dto.ExpenseResponse, error)
}

type serviceImpl struct {
	repo  repository.Expense
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Expense, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Expense {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExpenseRequest) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	expense, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse expense request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, expense); err != nil {
		log.Error().Err(err).Msg("failed to create expense")

		return res, fmt.Errorf("failed to create expense: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllExpense)
		shared.InvalidateCaches(c, s.cache, cacheCountExpense)
		shared.InvalidateDashboardCaches(c, s.cache, userID)
	}()

	res.FromModel(expense)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetExpensesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	filter := shared.FilterByOwner(userID, model.FieldUserID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExpense, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expenses")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count expenses")

		return res, fmt.Errorf("failed to count expenses: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses")

		return res, fmt.Errorf("failed to get expenses: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expenses to cache")
		}
	}()

	return res, nil
}

// Recent returns the user's latest expenses, newest first. Used by the
// dashboard summary.
func (s *serviceImpl) Recent(ctx context.Context, userID string, limit int) (res []dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Recent")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Page:    1,
		Limit:   limit,
		SortBy:  model.FieldDate,
		SortDir: "DESC",
	}

	models, err := s.repo.GetAll(ctx, params, shared.FilterByOwner(userID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent expenses")

		return nil, fmt.Errorf("failed to get recent expenses: %w", err)
	}

	res = make([]dto.ExpenseResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}
