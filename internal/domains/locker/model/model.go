package model

import (
	"campus/shared/model"
	"time"
)

const (
	TableName  = "locker_reservations"
	EntityName = "locker reservation"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldUserEmail    = "user_email"
	FieldLockerNumber = "locker_number"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldPurpose      = "purpose"
	FieldStatus       = "status"
	FieldRequestDate  = "request_date"
)

type LockerReservation struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	UserEmail    string    `db:"user_email"`
	LockerNumber string    `db:"locker_number"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Purpose      string    `db:"purpose"`
	Status       string    `db:"status"`
	RequestDate  time.Time `db:"request_date"`
	model.Metadata
}
