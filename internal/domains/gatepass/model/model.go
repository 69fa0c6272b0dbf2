package model

import (
	"campus/shared/model"
	"time"
)

const (
	TableName  = "gate_passes"
	EntityName = "gate pass"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldUserEmail   = "user_email"
	FieldDestination = "destination"
	FieldExitDate    = "exit_date"
	FieldExitTime    = "exit_time"
	FieldReturnDate  = "return_date"
	FieldReturnTime  = "return_time"
	FieldReason      = "reason"
	FieldStatus      = "status"
	FieldRequestDate = "request_date"
)

// ReturnDate and ReturnTime are either both set or both nil. Clock values are
// in "15:04" form.
type GatePass struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	UserEmail   string     `db:"user_email"`
	Destination string     `db:"destination"`
	ExitDate    time.Time  `db:"exit_date"`
	ExitTime    string     `db:"exit_time"`
	ReturnDate  *time.Time `db:"return_date"`
	ReturnTime  *string    `db:"return_time"`
	Reason      string     `db:"reason"`
	Status      string     `db:"status"`
	RequestDate time.Time  `db:"request_date"`
	model.Metadata
}
