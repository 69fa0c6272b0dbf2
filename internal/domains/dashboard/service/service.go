package service

import (
	"campus/config"
	"campus/infras/otel"
	activityModel "campus/internal/domains/activity/model"
	activityRepo "campus/internal/domains/activity/repository"
	"campus/internal/domains/dashboard/model/dto"
	expenseService "campus/internal/domains/expense/service"
	gatepassModel "campus/internal/domains/gatepass/model"
	gatepassRepo "campus/internal/domains/gatepass/repository"
	lockerModel "campus/internal/domains/locker/model"
	lockerRepo "campus/internal/domains/locker/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheSummary  = constant.CacheKeyDashboardSummary
	cacheCalendar = constant.CacheKeyDashboardCalendar

	recentExpenseCount = 5
)

type Dashboard interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	Calendar(ctx context.Context) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	lockers    lockerRepo.Locker
	activities activityRepo.Activity
	gatePasses gatepassRepo.GatePass
	expenses   expenseService.Expense
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	lockers lockerRepo.Locker,
	activities activityRepo.Activity,
	gatePasses gatepassRepo.GatePass,
	expenses expenseService.Expense,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		lockers:    lockers,
		activities: activities,
		gatePasses: gatePasses,
		expenses:   expenses,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheSummary, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dashboard summary")

		return res, nil
	}

	today := truncateToDay(timezone.Now())

	res.ActiveLockers, err = s.lockers.Count(ctx, statusFilter(
		userID, constant.StatusApproved,
		lockerModel.TableName, lockerModel.FieldUserID, lockerModel.FieldStatus,
		upcoming(lockerModel.TableName, lockerModel.FieldEndDate, today),
	))
	if err != nil {
		return res, fmt.Errorf("failed to count active locker reservations: %w", err)
	}

	res.PendingLockers, err = s.lockers.Count(ctx, statusFilter(
		userID, constant.StatusPending,
		lockerModel.TableName, lockerModel.FieldUserID, lockerModel.FieldStatus,
	))
	if err != nil {
		return res, fmt.Errorf("failed to count pending locker reservations: %w", err)
	}

	res.UpcomingActivities, err = s.activities.Count(ctx, statusFilter(
		userID, constant.StatusApproved,
		activityModel.TableName, activityModel.FieldUserID, activityModel.FieldStatus,
		upcoming(activityModel.TableName, activityModel.FieldActivityDate, today),
	))
	if err != nil {
		return res, fmt.Errorf("failed to count upcoming activity reservations: %w", err)
	}

	res.PendingActivities, err = s.activities.Count(ctx, statusFilter(
		userID, constant.StatusPending,
		activityModel.TableName, activityModel.FieldUserID, activityModel.FieldStatus,
	))
	if err != nil {
		return res, fmt.Errorf("failed to count pending activity reservations: %w", err)
	}

	res.ActiveGatePasses, err = s.gatePasses.Count(ctx, statusFilter(
		userID, constant.StatusApproved,
		gatepassModel.TableName, gatepassModel.FieldUserID, gatepassModel.FieldStatus,
		upcoming(gatepassModel.TableName, gatepassModel.FieldExitDate, today),
	))
	if err != nil {
		return res, fmt.Errorf("failed to count active gate passes: %w", err)
	}

	res.PendingGatePasses, err = s.gatePasses.Count(ctx, statusFilter(
		userID, constant.StatusPending,
		gatepassModel.TableName, gatepassModel.FieldUserID, gatepassModel.FieldStatus,
	))
	if err != nil {
		return res, fmt.Errorf("failed to count pending gate passes: %w", err)
	}

	res.RecentExpenses, err = s.expenses.Recent(ctx, userID, recentExpenseCount)
	if err != nil {
		return res, fmt.Errorf("failed to load recent expenses: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Calendar(ctx context.Context) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if userID == "" {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheCalendar, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dashboard calendar")

		return res, nil
	}

	activities, err := s.activities.GetAll(ctx, gDto.QueryParams{}, statusFilter(
		userID, constant.StatusApproved,
		activityModel.TableName, activityModel.FieldUserID, activityModel.FieldStatus,
	))
	if err != nil {
		return res, fmt.Errorf("failed to load approved activity reservations: %w", err)
	}

	gatePasses, err := s.gatePasses.GetAll(ctx, gDto.QueryParams{}, statusFilter(
		userID, constant.StatusApproved,
		gatepassModel.TableName, gatepassModel.FieldUserID, gatepassModel.FieldStatus,
	))
	if err != nil {
		return res, fmt.Errorf("failed to load approved gate passes: %w", err)
	}

	lockers, err := s.lockers.GetAll(ctx, gDto.QueryParams{}, statusFilter(
		userID, constant.StatusApproved,
		lockerModel.TableName, lockerModel.FieldUserID, lockerModel.FieldStatus,
	))
	if err != nil {
		return res, fmt.Errorf("failed to load approved locker reservations: %w", err)
	}

	res.Events = make([]dto.CalendarEvent, 0, len(activities)+len(gatePasses)+len(lockers))

	for _, activity := range activities {
		day := timezone.Format(activity.ActivityDate, constant.DateOnlyFormat)

		res.Events = append(res.Events, dto.CalendarEvent{
			ID:     "activity-" + activity.ID,
			Title:  activity.ActivityName,
			Start:  day + "T" + activity.StartTime,
			End:    day + "T" + activity.EndTime,
			AllDay: false,
			Type:   "activity",
			ExtendedProps: map[string]any{
				"status":      activity.Status,
				"description": activity.Description,
			},
		})
	}

	for _, pass := range gatePasses {
		event := dto.CalendarEvent{
			ID:     "gate-" + pass.ID,
			Title:  "Gate Pass: " + pass.Destination,
			Start:  timezone.Format(pass.ExitDate, constant.DateOnlyFormat) + "T" + pass.ExitTime,
			AllDay: false,
			Type:   "gatepass",
			ExtendedProps: map[string]any{
				"status": pass.Status,
				"reason": pass.Reason,
			},
		}

		// End stays empty when no return is planned.
		if pass.ReturnDate != nil && pass.ReturnTime != nil {
			event.End = timezone.Format(*pass.ReturnDate, constant.DateOnlyFormat) + "T" + *pass.ReturnTime
		}

		res.Events = append(res.Events, event)
	}

	for _, locker := range lockers {
		res.Events = append(res.Events, dto.CalendarEvent{
			ID:     "locker-" + locker.ID,
			Title:  "Locker " + locker.LockerNumber,
			Start:  timezone.Format(locker.StartDate, constant.DateOnlyFormat),
			End:    timezone.Format(locker.EndDate.AddDate(0, 0, 1), constant.DateOnlyFormat),
			AllDay: true,
			Type:   "locker",
			ExtendedProps: map[string]any{
				"status": locker.Status,
			},
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard calendar to cache")
		}
	}()

	return res, nil
}

func statusFilter(userID, status, table, fieldUserID, fieldStatus string, extra ...gDto.Filter) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    fieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    table,
		},
		gDto.Filter{
			Field:    fieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    table,
		},
	}

	for _, f := range extra {
		filters = append(filters, f)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func upcoming(table, field string, today time.Time) gDto.Filter {
	return gDto.Filter{
		ArgName:  "upcoming_" + field,
		Field:    field,
		Operator: gDto.FilterOperatorGreaterEq,
		Value:    today,
		Table:    table,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
