package model

import (
	"campus/shared/model"
	"time"
)

const (
	TableName  = "activity_reservations"
	EntityName = "activity reservation"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldUserEmail    = "user_email"
	FieldActivityName = "activity_name"
	FieldActivityDate = "activity_date"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldDescription  = "description"
	FieldStatus       = "status"
	FieldRequestDate  = "request_date"
)

// StartTime and EndTime are clock values in "15:04" form; the date they belong
// to lives in ActivityDate.
type ActivityReservation struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	UserEmail    string    `db:"user_email"`
	ActivityName string    `db:"activity_name"`
	ActivityDate time.Time `db:"activity_date"`
	StartTime    string    `db:"start_time"`
	EndTime      string    `db:"end_time"`
	Description  string    `db:"description"`
	Status       string    `db:"status"`
	RequestDate  time.Time `db:"request_date"`
	model.Metadata
}
