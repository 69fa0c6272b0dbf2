package expense

import (
	"campus/infras/otel"
	"campus/internal/domains/expense/model/dto"
	"campus/internal/domains/expense/service"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/validator"
	"campus/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Expense
	otel    otel.Otel
}

func New(service service.Expense, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/expenses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExpense)
		routerGroup.Get("/", handler.GetMyExpenses)
	})
}

// CreateExpense records a new expense for the caller.
// @Summary Record an expense
// @Description Record a personal expense. The date defaults to today when omitted.
// @Tags Expense
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Create Expense Request"
// @Success 201 {object} response.Data[dto.ExpenseResponse] "Expense recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/expenses [post]
// @Security BearerAuth
func (handler *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExpense")
	defer scope.End()

	req := dto.CreateExpenseRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	expense, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create expense")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Expense recorded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, expense)
}

// GetMyExpenses retrieves the caller's expenses.
// @Summary Get my expenses
// @Description Retrieve the authenticated user's expenses with pagination, newest first.
// @Tags Expense
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetExpensesResponse] "List of expenses"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/expenses [get]
// @Security BearerAuth
func (handler *Handler) GetMyExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyExpenses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	expenses, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expenses")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Expenses retrieved successfully")

	response.WithJSON(w, http.StatusOK, expenses)
}
