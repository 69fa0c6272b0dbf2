package model

import (
	"campus/shared/model"
	"time"
)

const (
	TableName  = "expenses"
	EntityName = "expense"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldCategory    = "category"
)

type Expense struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Description string    `db:"description"`
	Amount      float64   `db:"amount"`
	Date        time.Time `db:"date"`
	Category    string    `db:"category"`
	model.Metadata
}
