package model

import "campus/shared/model"

const (
	TableName  = "user_info"
	EntityName = "user info"

	FieldUserID        = "user_id"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldContactNumber = "contact_number"
	FieldSemester      = "semester"
	FieldEmail         = "email"
)

// UserInfo is keyed on the owning user: at most one row per user.
type UserInfo struct {
	UserID        string `db:"user_id"`
	FirstName     string `db:"first_name"`
	LastName      string `db:"last_name"`
	ContactNumber string `db:"contact_number"`
	Semester      string `db:"semester"`
	Email         string `db:"email"`
	model.Metadata
}
