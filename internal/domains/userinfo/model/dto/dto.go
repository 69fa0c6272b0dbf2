package dto

import (
	"campus/internal/domains/userinfo/model"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
)

type UpsertUserInfoRequest struct {
	FirstName     string `json:"first_name"     validate:"required,max=50"`
	LastName      string `json:"last_name"      validate:"omitempty,max=50"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
	Semester      string `json:"semester"       validate:"required,max=50"`
}

func (u *UpsertUserInfoRequest) ToModel(userID, userEmail string) model.UserInfo {
	now := timezone.Now()

	return model.UserInfo{
		UserID:        userID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		ContactNumber: u.ContactNumber,
		Semester:      u.Semester,
		Email:         userEmail,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UserInfoResponse struct {
	UserID        string `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ContactNumber string `json:"contact_number"`
	Semester      string `json:"semester"`
	Email         string `json:"email"`
	IsRegistered  bool   `json:"is_registered"`
	gDto.Metadata
}

func (r *UserInfoResponse) FromModel(mod model.UserInfo) {
	r.UserID = mod.UserID
	r.FirstName = mod.FirstName
	r.LastName = mod.LastName
	r.ContactNumber = mod.ContactNumber
	r.Semester = mod.Semester
	r.Email = mod.Email
	r.IsRegistered = true
	r.Metadata.FromModel(mod.Metadata)
}

// Skeleton fills a response for a user who has not registered their info yet.
func (r *UserInfoResponse) Skeleton(userID, userEmail string) {
	r.UserID = userID
	r.Email = userEmail
	r.IsRegistered = false
}
