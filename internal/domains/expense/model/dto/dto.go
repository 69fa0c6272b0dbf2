package dto

import (
	"campus/internal/domains/expense/model"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"

	"github.com/google/uuid"
)

type CreateExpenseRequest struct {
	Description string  `json:"description" validate:"required,max=200"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Date        string  `json:"date"        validate:"omitempty"`
	Category    string  `json:"category"    validate:"omitempty,max=50"`
}

func (c *CreateExpenseRequest) ToModel(userID string) (model.Expense, error) {
	now := timezone.Now()

	date := now
	if c.Date != "" {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, c.Date)
		if err != nil {
			return model.Expense{}, err
		}

		date = parsed
	}

	return model.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: c.Description,
		Amount:      c.Amount,
		Date:        date,
		Category:    c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	gDto.Metadata
}

func (r *ExpenseResponse) FromModel(mod model.Expense) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.Description = mod.Description
	r.Amount = mod.Amount
	r.Date = timezone.Format(mod.Date, constant.DateOnlyFormat)
	r.Category = mod.Category
	r.Metadata.FromModel(mod.Metadata)
}

type GetExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetExpensesResponse) FromModels(models []model.Expense, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Expenses = make([]ExpenseResponse, len(models))
	for i, mod := range models {
		r.Expenses[i].FromModel(mod)
	}
}
